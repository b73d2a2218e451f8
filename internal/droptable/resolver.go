// Package droptable implements weighted random selection from a case's item
// pool.
package droptable

import (
	"github.com/lootworks/casesim/internal/domain"
	"github.com/lootworks/casesim/internal/utils"
)

// Reveal sequence shape: items shown before and after the awarded item in
// the decorative spin strip. The award sits at index ItemsBeforeWinner.
const (
	ItemsBeforeWinner = 30
	ItemsAfterWinner  = 15
)

// Resolver draws items from case pools using an injectable random source so
// selection is deterministic and replayable under test.
type Resolver struct {
	rnd func() float64 // uniform in [0,1)
}

// NewResolver creates a Resolver backed by the default random source.
func NewResolver() *Resolver {
	return &Resolver{rnd: utils.RandomFloat}
}

// NewResolverWithRand creates a Resolver with an explicit random source.
func NewResolverWithRand(rnd func() float64) *Resolver {
	return &Resolver{rnd: rnd}
}

// Resolve draws one item from the case per the weighted distribution: a
// uniform value in [0, totalWeight) is walked down the item list in catalog
// order, subtracting each weight, and the item where the remainder reaches
// zero or below wins. Item order therefore has no effect on probability.
// A zero-weight pool (excluded by catalog validation) falls back to the
// first item deterministically.
func (r *Resolver) Resolve(c *domain.Case) domain.CatalogItem {
	remaining := r.rnd() * float64(c.TotalWeight())

	for _, item := range c.Items {
		remaining -= float64(item.Weight)
		if remaining <= 0 {
			return item
		}
	}
	return c.Items[0]
}

// RollDurability draws a durability uniformly from [1,100].
func (r *Resolver) RollDurability() int {
	return 1 + int(r.rnd()*100)
}

// RevealSequence builds the decorative spin strip around an already-resolved
// winner: 30 independent draws, the winner, then 15 more. Only the winner
// was paid for; the strip always terminates on it.
func (r *Resolver) RevealSequence(c *domain.Case, winner domain.CatalogItem) []domain.CatalogItem {
	seq := make([]domain.CatalogItem, 0, ItemsBeforeWinner+1+ItemsAfterWinner)
	for i := 0; i < ItemsBeforeWinner; i++ {
		seq = append(seq, r.Resolve(c))
	}
	seq = append(seq, winner)
	for i := 0; i < ItemsAfterWinner; i++ {
		seq = append(seq, r.Resolve(c))
	}
	return seq
}
