package domain

import "math"

// ShopMarkup is the multiplier applied to an item's max price to derive its
// shop price.
const ShopMarkup = 1.5

// ShopEntry is one purchasable slot in the day's shop offer: a catalog item
// tagged with its marked-up price.
type ShopEntry struct {
	ID        string      `json:"id"`
	Item      CatalogItem `json:"item"`
	ShopPrice Cents       `json:"shop_price"`
}

// ShopOffer is the curated purchasable set for one calendar day. It is fixed
// for the whole day; only the rotation manager may regenerate it.
type ShopOffer struct {
	Day     string      `json:"day"` // calendar day the offer was generated for
	Entries []ShopEntry `json:"entries"`
}

// Entry returns the offer entry with the given id, or nil.
func (o *ShopOffer) Entry(id string) *ShopEntry {
	for i := range o.Entries {
		if o.Entries[i].ID == id {
			return &o.Entries[i]
		}
	}
	return nil
}

// ShopPrice derives the marked-up shop price for a catalog item:
// round(maxPrice * 1.5), in whole dollars.
func ShopPrice(item CatalogItem) Cents {
	return Dollars(int(math.Round(float64(item.MaxPrice) * ShopMarkup)))
}
