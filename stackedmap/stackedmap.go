// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stackedmap implements a map stacked on a read source, with
// save/restore semantics. It backs the ledger state's checkpoint and revert
// operations.
package stackedmap

// StackedMap maintains maps in a stack. Each level inherits the entries of
// the levels below it; a read source supplies entries no level holds.
type StackedMap struct {
	src         ReadFunc
	levels      levelStack
	keyRevision map[any]*revStack
}

type level struct {
	entries map[any]any
	journal []*JournalEntry
}

func newLevel() *level {
	return &level{entries: make(map[any]any)}
}

// JournalEntry is one recorded Put.
type JournalEntry struct {
	Key   any
	Value any
}

// ReadFunc resolves a key missed by every level.
type ReadFunc func(key any) (value any, exist bool, err error)

// New creates a StackedMap with src as the fallback read source.
func New(src ReadFunc) *StackedMap {
	return &StackedMap{
		src:         src,
		keyRevision: make(map[any]*revStack),
	}
}

// Depth returns the number of stacked levels.
func (sm *StackedMap) Depth() int {
	return len(sm.levels)
}

// Push adds an empty level and returns the depth before the push, which is
// the argument PopTo expects to undo everything after this point.
func (sm *StackedMap) Push() int {
	sm.levels.push(newLevel())
	return len(sm.levels) - 1
}

// Pop drops the top level, reverting every Put since the matching Push.
func (sm *StackedMap) Pop() {
	top := sm.levels.top()
	for key := range top.entries {
		revs := sm.keyRevision[key]
		revs.pop()
		if len(*revs) == 0 {
			delete(sm.keyRevision, key)
		}
	}
	sm.levels.pop()
}

// PopTo drops levels until the stack depth reaches depth.
func (sm *StackedMap) PopTo(depth int) {
	for len(sm.levels) > depth {
		sm.Pop()
	}
}

// Get returns the value for key, looking from the top level down and
// falling back to the read source.
func (sm *StackedMap) Get(key any) (any, bool, error) {
	if revs, ok := sm.keyRevision[key]; ok {
		if v, ok := sm.levels[revs.top()].entries[key]; ok {
			return v, true, nil
		}
	}
	return sm.src(key)
}

// Put writes key/value into the top level and journals the write.
// It panics when no level has been pushed.
func (sm *StackedMap) Put(key, value any) {
	top := sm.levels.top()
	top.entries[key] = value
	top.journal = append(top.journal, &JournalEntry{Key: key, Value: value})

	// track which level last wrote the key, for fast reads
	rev := len(sm.levels) - 1
	if revs, ok := sm.keyRevision[key]; ok {
		revs.push(rev)
	} else {
		sm.keyRevision[key] = &revStack{rev}
	}
}

// Journal iterates every surviving Put in order. The callback returns false
// to stop the walk.
func (sm *StackedMap) Journal(cb func(key, value any) bool) {
	for _, l := range sm.levels {
		for _, e := range l.journal {
			if !cb(e.Key, e.Value) {
				return
			}
		}
	}
}

type levelStack []*level

func (s *levelStack) push(l *level) {
	*s = append(*s, l)
}

func (s *levelStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s levelStack) top() *level {
	return s[len(s)-1]
}

type revStack []int

func (s *revStack) push(rev int) {
	*s = append(*s, rev)
}

func (s *revStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s revStack) top() int {
	return s[len(s)-1]
}
