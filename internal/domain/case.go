package domain

// Rarity is the ordinal desirability tier of an item, 0 (common) through
// 5 (divine). It drives the item's price band and display priority.
type Rarity int

const (
	RarityCommon    Rarity = 0
	RarityUncommon  Rarity = 1
	RarityRare      Rarity = 2
	RarityEpic      Rarity = 3
	RarityLegendary Rarity = 4
	RarityDivine    Rarity = 5
)

// MaxRarity is the highest valid rarity tier.
const MaxRarity = RarityDivine

// Name returns the display name of the rarity tier.
func (r Rarity) Name() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	case RarityDivine:
		return "Divine"
	default:
		return "Unknown"
	}
}

// CatalogItem is a possible drop within a case. MinPrice and MaxPrice are
// whole-dollar bounds; the drawn durability interpolates between them.
type CatalogItem struct {
	Name     string `json:"name"`
	Rarity   Rarity `json:"rarity"`
	MinPrice int    `json:"min_price"`
	MaxPrice int    `json:"max_price"`
	Weight   int    `json:"weight"`
	Type     string `json:"type"` // visual tag: sword, bow, potion, ...
}

// Case is a purchasable loot-box definition with a fixed price and a
// weighted item pool. Item order is catalog order; it does not affect
// selection probability, only the zero-weight fallback.
type Case struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Price Cents         `json:"price"`
	Items []CatalogItem `json:"items"`
}

// TotalWeight sums the drop weights of the case's item pool.
func (c *Case) TotalWeight() int {
	total := 0
	for _, item := range c.Items {
		total += item.Weight
	}
	return total
}
