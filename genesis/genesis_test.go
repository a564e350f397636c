// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pledgechain/pledge/genesis"
	"github.com/pledgechain/pledge/lvldb"
	"github.com/pledgechain/pledge/pledge"
	"github.com/pledgechain/pledge/program/campaign"
	"github.com/pledgechain/pledge/state"
)

func TestDevnet(t *testing.T) {
	assert := assert.New(t)

	gene := genesis.NewDevnet()
	assert.False(gene.ID().IsZero())
	assert.Equal("devnet", gene.Name())
	// the ID is derived from content, so rebuilding yields the same ledger
	assert.Equal(gene.ID(), genesis.NewDevnet().ID())

	db, _ := lvldb.NewMem()
	defer db.Close()
	stater := state.NewStater(db)
	id, err := gene.Build(stater)
	assert.Nil(err)
	assert.Equal(gene.ID(), id)

	st := stater.NewState()
	for _, a := range genesis.DevAccounts() {
		balance, err := st.GetLamports(a.Pubkey)
		assert.Nil(err)
		assert.Equal(uint64(1_000_000_000_000), balance)
	}
}

func TestDevAccounts(t *testing.T) {
	accs := genesis.DevAccounts()
	assert.Len(t, accs, 10)
	for _, a := range accs {
		assert.Equal(t, pledge.BytesToPubkey(a.PrivateKey.Public().(ed25519.PublicKey)), a.Pubkey)
	}
}

func TestNewCustomNet(t *testing.T) {
	assert := assert.New(t)

	rich := genesis.DevAccounts()[0]
	seeded := genesis.DevAccounts()[2]
	doc := fmt.Sprintf(`{
		"launchTime": 1735689600,
		"extraData": "pledge custom ledger",
		"accounts": [
			{"pubkey": %q, "lamports": 5000000},
			{"pubkey": %q, "lamports": 2000000, "owner": %q, "data": "0xdeadbeef"}
		]
	}`, rich.Pubkey, seeded.Pubkey, campaign.ProgramID)

	var custom genesis.CustomGenesis
	assert.Nil(json.Unmarshal([]byte(doc), &custom))

	gene, err := genesis.NewCustomNet(&custom)
	assert.Nil(err)
	assert.Equal("customnet", gene.Name())
	assert.NotEqual(genesis.NewDevnet().ID(), gene.ID())

	db, _ := lvldb.NewMem()
	defer db.Close()
	stater := state.NewStater(db)
	_, err = gene.Build(stater)
	assert.Nil(err)

	st := stater.NewState()
	balance, err := st.GetLamports(rich.Pubkey)
	assert.Nil(err)
	assert.Equal(uint64(5_000_000), balance)
	owner, err := st.GetOwner(seeded.Pubkey)
	assert.Nil(err)
	assert.Equal(campaign.ProgramID, owner)
	data, err := st.GetData(seeded.Pubkey)
	assert.Nil(err)
	assert.Equal([]byte{0xde, 0xad, 0xbe, 0xef}, data)
}

func TestNewCustomNetInvalid(t *testing.T) {
	_, err := genesis.NewCustomNet(&genesis.CustomGenesis{})
	assert.NotNil(t, err)

	_, err = genesis.NewCustomNet(&genesis.CustomGenesis{
		ExtraData: "this extra data does not fit into the genesis header",
		Accounts:  []genesis.Account{{Pubkey: genesis.DevAccounts()[0].Pubkey, Lamports: 1}},
	})
	assert.NotNil(t, err)

	_, err = genesis.NewCustomNet(&genesis.CustomGenesis{
		Accounts: []genesis.Account{{Pubkey: genesis.DevAccounts()[0].Pubkey}},
	})
	assert.NotNil(t, err)

	_, err = genesis.NewCustomNet(&genesis.CustomGenesis{
		Accounts: []genesis.Account{{Pubkey: genesis.DevAccounts()[0].Pubkey, Lamports: 1, Data: "not hex"}},
	})
	assert.NotNil(t, err)
}

func TestCustomNetIDSensitivity(t *testing.T) {
	base := genesis.CustomGenesis{
		LaunchTime: 1735689600,
		Accounts:   []genesis.Account{{Pubkey: genesis.DevAccounts()[0].Pubkey, Lamports: 100}},
	}

	a, err := genesis.NewCustomNet(&base)
	assert.Nil(t, err)

	tweaked := base
	tweaked.ExtraData = "fork"
	b, err := genesis.NewCustomNet(&tweaked)
	assert.Nil(t, err)
	assert.NotEqual(t, a.ID(), b.ID())

	tweaked = base
	tweaked.Accounts = []genesis.Account{{Pubkey: genesis.DevAccounts()[0].Pubkey, Lamports: 101}}
	c, err := genesis.NewCustomNet(&tweaked)
	assert.Nil(t, err)
	assert.NotEqual(t, a.ID(), c.ID())
}
