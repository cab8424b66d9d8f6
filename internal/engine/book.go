package engine

import (
	"github.com/google/btree"
)

// LevelSnapshot represents an aggregated price level in the order book.
type LevelSnapshot struct {
	Price         int64
	TotalQuantity int64
	OrderCount    int
}

// bidLess orders bid levels by price descending, so Min() returns the
// best bid.
func bidLess(a, b *PriceLevel) bool {
	return a.Price > b.Price
}

// askLess orders ask levels by price ascending, so Min() returns the
// best ask.
func askLess(a, b *PriceLevel) bool {
	return a.Price < b.Price
}

// bookSide holds the price levels of one side of the book in a B-tree
// keyed by price. Iterating in tree order yields the best price first.
type bookSide struct {
	levels *btree.BTreeG[*PriceLevel]
}

func newBookSide(less btree.LessFunc[*PriceLevel]) *bookSide {
	const degree = 32
	return &bookSide{
		levels: btree.NewG[*PriceLevel](degree, less),
	}
}

// best returns the highest-priority level, or nil if the side is empty.
func (s *bookSide) best() *PriceLevel {
	lvl, ok := s.levels.Min()
	if !ok {
		return nil
	}
	return lvl
}

// get returns the level at price, or nil.
func (s *bookSide) get(price int64) *PriceLevel {
	lvl, ok := s.levels.Get(&PriceLevel{Price: price})
	if !ok {
		return nil
	}
	return lvl
}

// getOrCreate returns the level at price, inserting an empty one if none
// exists yet.
func (s *bookSide) getOrCreate(price int64) *PriceLevel {
	if lvl := s.get(price); lvl != nil {
		return lvl
	}
	lvl := NewPriceLevel(price)
	s.levels.ReplaceOrInsert(lvl)
	return lvl
}

// remove deletes the level at price. It is a no-op if none exists.
func (s *bookSide) remove(price int64) {
	s.levels.Delete(&PriceLevel{Price: price})
}

func (s *bookSide) len() int {
	return s.levels.Len()
}

// walk visits levels best price first until fn returns false.
func (s *bookSide) walk(fn func(*PriceLevel) bool) {
	s.levels.Ascend(btree.ItemIteratorG[*PriceLevel](fn))
}

// top aggregates at most n levels in priority order.
func (s *bookSide) top(n int) []LevelSnapshot {
	if n <= 0 {
		return nil
	}
	levels := make([]LevelSnapshot, 0, min(n, s.len()))
	s.walk(func(lvl *PriceLevel) bool {
		if len(levels) >= n {
			return false
		}
		levels = append(levels, LevelSnapshot{
			Price:         lvl.Price,
			TotalQuantity: lvl.TotalQuantity,
			OrderCount:    lvl.Len(),
		})
		return true
	})
	return levels
}
