// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

// EntryReader defines the interface to stream committed entries.
type EntryReader interface {
	Read() ([]*Entry, error)
}

type readEntriesFunc func() ([]*Entry, error)

func (r readEntriesFunc) Read() ([]*Entry, error) {
	return r()
}

// NewEntryReader creates a reader that streams entries committed after the
// given position. Read returns at most one entry and advances; past the
// head it returns an empty slice until a new entry is committed.
func (l *Ledger) NewEntryReader(position uint64) EntryReader {
	return readEntriesFunc(func() ([]*Entry, error) {
		if position >= l.HeadSeq() {
			return nil, nil
		}
		entry, err := l.GetEntryBySeq(position + 1)
		if err != nil {
			return nil, err
		}
		position = entry.Seq
		return []*Entry{entry}, nil
	})
}
