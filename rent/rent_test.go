// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinimumBalance(t *testing.T) {
	tests := []struct {
		dataLen  uint64
		expected uint64
	}{
		{0, 128 * 3480 * 2},
		{1, 129 * 3480 * 2},
		{165, 293 * 3480 * 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MinimumBalance(tt.dataLen))
	}

	// monotonic in data length
	assert.True(t, MinimumBalance(100) < MinimumBalance(101))
}
