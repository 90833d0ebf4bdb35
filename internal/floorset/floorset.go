// Package floorset holds an ordered set of floor numbers that is safe for
// concurrent use. A car drains it from one end while the scheduler inserts.
package floorset

import (
	"sync"

	"github.com/google/btree"
)

const BTREE_DEGREE = 4

type FloorSet struct {
	mu     sync.RWMutex
	floors *btree.BTreeG[int]
}

func New(floors ...int) *FloorSet {
	fs := &FloorSet{floors: btree.NewOrderedG[int](BTREE_DEGREE)}
	fs.Add(floors...)
	return fs
}

// Add inserts floors, duplicates collapse.
func (fs *FloorSet) Add(floors ...int) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, floor := range floors {
		fs.floors.ReplaceOrInsert(floor)
	}
}

// AddBetween inserts every floor strictly between from and to.
func (fs *FloorSet) AddBetween(from, to int) {
	if from > to {
		from, to = to, from
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for floor := from + 1; floor < to; floor++ {
		fs.floors.ReplaceOrInsert(floor)
	}
}

func (fs *FloorSet) Remove(floor int) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, found := fs.floors.Delete(floor)
	return found
}

func (fs *FloorSet) Has(floor int) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.floors.Has(floor)
}

func (fs *FloorSet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.floors.Len()
}

func (fs *FloorSet) Empty() bool {
	return fs.Len() == 0
}

func (fs *FloorSet) Min() (int, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.floors.Min()
}

func (fs *FloorSet) Max() (int, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.floors.Max()
}

func (fs *FloorSet) PopMin() (int, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.floors.DeleteMin()
}

func (fs *FloorSet) PopMax() (int, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.floors.DeleteMax()
}

// Higher returns the smallest floor strictly above floor.
func (fs *FloorSet) Higher(floor int) (int, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	next, found := 0, false
	fs.floors.AscendGreaterOrEqual(floor+1, func(item int) bool {
		next, found = item, true
		return false
	})
	return next, found
}

// Lower returns the largest floor strictly below floor.
func (fs *FloorSet) Lower(floor int) (int, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	next, found := 0, false
	fs.floors.DescendLessOrEqual(floor-1, func(item int) bool {
		next, found = item, true
		return false
	})
	return next, found
}

// Floors returns the members in ascending order.
func (fs *FloorSet) Floors() []int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	floors := make([]int, 0, fs.floors.Len())
	fs.floors.Ascend(func(item int) bool {
		floors = append(floors, item)
		return true
	})
	return floors
}
