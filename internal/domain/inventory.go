package domain

// OwnedItem is a concrete owned instance of a CatalogItem. It is created by
// opening a case or buying from the shop, never mutated afterwards, and
// destroyed only by selling.
type OwnedItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rarity     Rarity `json:"rarity"`
	MinPrice   int    `json:"min_price"`
	MaxPrice   int    `json:"max_price"`
	Type       string `json:"type"`
	Durability int    `json:"durability"` // 1..100
	Value      Cents  `json:"value"`
}

// ItemValue computes an owned item's value from its durability:
// minPrice + (maxPrice-minPrice) * durability/100, rounded to 2 decimals.
// In cents the expression is exact: min*100 + (max-min)*durability.
func ItemValue(item CatalogItem, durability int) Cents {
	return Cents(item.MinPrice*100 + (item.MaxPrice-item.MinPrice)*durability)
}

// Inventory is the ordered collection of owned items. Order is acquisition
// order and is preserved across snapshots.
type Inventory []OwnedItem

// TotalValue sums the sell value of every item in the inventory.
func (inv Inventory) TotalValue() Cents {
	var total Cents
	for _, item := range inv {
		total += item.Value
	}
	return total
}
