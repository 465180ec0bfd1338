// Package ttable implements the shared transposition table: a fixed-capacity, age-aware,
// lock-striped store keyed by Zobrist hash (spec §4.8).
package ttable

import (
	"sync"
	"sync/atomic"

	"github.com/corvid-chess/corvid/pkg/board"
	"github.com/corvid-chess/corvid/pkg/eval"
)

// Bound records whether a stored score is exact or a one-sided bound produced by an alpha-beta
// cutoff.
type Bound uint8

const (
	Exact Bound = iota
	UpperBound
	LowerBound
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "Exact"
	case UpperBound:
		return "Upper"
	case LowerBound:
		return "Lower"
	default:
		return "?"
	}
}

// Entry is one stored search result.
type Entry struct {
	Key   board.ZobristHash
	Depth int
	Score eval.Score
	Bound Bound
	Best  board.Move
	Age   uint32
}

const numStripes = 64 // power of two; selected by high key bits

// Table is a fixed-capacity, lock-striped transposition table. Replacement policy: a new entry
// overwrites the stored one iff the slot is empty, the stored entry is from an older age, or the
// new remaining depth is >= the stored depth (spec §4.8).
type Table struct {
	entries []Entry
	mask    uint64
	locks   [numStripes]sync.Mutex
	age     atomic.Uint32
}

// New allocates a table sized from a byte budget; capacity is rounded down to a power of two.
func New(sizeBytes uint64) *Table {
	entrySize := uint64(40)
	n := sizeBytes / entrySize
	if n < 1 {
		n = 1
	}
	capacity := uint64(1)
	for capacity*2 <= n {
		capacity *= 2
	}
	return &Table{
		entries: make([]Entry, capacity),
		mask:    capacity - 1,
	}
}

func (t *Table) index(key board.ZobristHash) uint64 {
	return uint64(key) & t.mask
}

func (t *Table) stripe(key board.ZobristHash) *sync.Mutex {
	return &t.locks[(uint64(key)>>56)&(numStripes-1)]
}

// GrowOld bumps the global age counter, called at the start of each top-level search.
func (t *Table) GrowOld() {
	t.age.Add(1)
}

// Probe returns the stored entry for the given key, if any and the key matches (collisions are
// simply treated as a miss).
func (t *Table) Probe(key board.ZobristHash) (Entry, bool) {
	idx := t.index(key)
	m := t.stripe(key)

	m.Lock()
	e := t.entries[idx]
	m.Unlock()

	if e.Key != key {
		return Entry{}, false
	}
	return e, true
}

// Store writes an entry, applying the age/depth replacement policy.
func (t *Table) Store(key board.ZobristHash, depth int, score eval.Score, bound Bound, best board.Move) {
	idx := t.index(key)
	m := t.stripe(key)
	age := t.age.Load()

	m.Lock()
	defer m.Unlock()

	cur := t.entries[idx]
	if cur.Key != 0 && cur.Age == age && cur.Depth > depth {
		return // keep the deeper entry from the same search generation
	}
	t.entries[idx] = Entry{Key: key, Depth: depth, Score: score, Bound: bound, Best: best, Age: age}
}

// Size returns the table's capacity in bytes.
func (t *Table) Size() uint64 {
	return uint64(len(t.entries)) * 40
}

// UtilizationPermille samples a fixed number of slots and reports how many hold the current age,
// in parts per thousand.
func (t *Table) UtilizationPermille() int {
	const sample = 1000
	n := uint64(len(t.entries))
	if n < sample {
		return t.utilizationOver(0, n)
	}
	return t.utilizationOver(0, sample)
}

func (t *Table) utilizationOver(start, count uint64) int {
	age := t.age.Load()
	used := 0
	for i := uint64(0); i < count; i++ {
		if t.entries[(start+i)%uint64(len(t.entries))].Age == age {
			used++
		}
	}
	return int(1000 * used / int(count))
}
