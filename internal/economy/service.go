// Package economy is the player ledger: the wallet balance and owned-item
// inventory, mutated only through the four commands (open a case, buy from
// the shop, sell items, claim the daily bonus). Every command either
// completes fully or leaves the ledger untouched.
package economy

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lootworks/casesim/internal/catalog"
	"github.com/lootworks/casesim/internal/daily"
	"github.com/lootworks/casesim/internal/domain"
	"github.com/lootworks/casesim/internal/droptable"
	"github.com/lootworks/casesim/internal/logger"
	"github.com/lootworks/casesim/internal/metrics"
	"github.com/lootworks/casesim/internal/shop"
	"github.com/lootworks/casesim/internal/storage"
)

// OpenResult is the outcome of opening a case: the item won, the reveal
// strip for the client animation, and the balance after the charge.
type OpenResult struct {
	Item    domain.OwnedItem     `json:"item"`
	Reveal  []domain.CatalogItem `json:"reveal"`
	Balance domain.Cents         `json:"balance"`
}

// BuyResult is the outcome of a shop purchase.
type BuyResult struct {
	Item    domain.OwnedItem `json:"item"`
	Balance domain.Cents     `json:"balance"`
}

// SellResult is the outcome of a sell command.
type SellResult struct {
	Proceeds domain.Cents `json:"proceeds"`
	Sold     int          `json:"sold"`
	Balance  domain.Cents `json:"balance"`
}

// DailyResult is the outcome of a daily claim, including the credited
// balance.
type DailyResult struct {
	Reward  domain.Cents `json:"reward"`
	Streak  int          `json:"streak"`
	Balance domain.Cents `json:"balance"`
}

// Service is the command surface of the ledger. Commands mutate state;
// the remaining methods are read-only snapshots.
type Service interface {
	OpenCase(ctx context.Context, caseID string) (*OpenResult, error)
	BuyShopItem(ctx context.Context, entryID string) (*BuyResult, error)
	SellItems(ctx context.Context, itemIDs []string) (*SellResult, error)
	ClaimDaily(ctx context.Context) (*DailyResult, error)

	Wallet(ctx context.Context) domain.Cents
	Inventory(ctx context.Context) domain.Inventory
	Cases(ctx context.Context) []domain.Case
	ShopOffer(ctx context.Context) domain.ShopOffer
	DailyStatus(ctx context.Context) domain.DailyStatus
}

type service struct {
	mu       sync.Mutex
	store    storage.Store
	catalog  *catalog.Catalog
	resolver *droptable.Resolver
	shop     *shop.Service
	daily    *daily.Service

	balance   domain.Cents
	inventory domain.Inventory
}

// NewService creates the ledger and restores wallet and inventory from the
// store. A missing or corrupt wallet snapshot falls back to the starting
// grant; a corrupt inventory snapshot falls back to empty.
func NewService(ctx context.Context, store storage.Store, cat *catalog.Catalog, resolver *droptable.Resolver, shopSvc *shop.Service, dailySvc *daily.Service, startingBalance domain.Cents) Service {
	log := logger.FromContext(ctx)

	s := &service{
		store:    store,
		catalog:  cat,
		resolver: resolver,
		shop:     shopSvc,
		daily:    dailySvc,
		balance:  startingBalance,
	}

	if v, ok, err := store.Get(ctx, storage.KeyBalance); err != nil {
		log.Warn("Failed to read balance, using starting grant", "error", err)
	} else if ok {
		balance, parseErr := domain.ParseCents(v)
		if parseErr != nil {
			log.Warn("Corrupt balance snapshot, using starting grant", "value", v)
		} else {
			s.balance = balance
		}
	}

	if v, ok, err := store.Get(ctx, storage.KeyInventory); err != nil {
		log.Warn("Failed to read inventory, starting empty", "error", err)
	} else if ok {
		var inv domain.Inventory
		if parseErr := json.Unmarshal([]byte(v), &inv); parseErr != nil {
			log.Warn("Corrupt inventory snapshot, starting empty", "error", parseErr)
		} else {
			s.inventory = inv
		}
	}

	return s
}

// OpenCase charges the case price, draws one weighted item with a rolled
// durability, and adds it to the inventory. The charge stands even when the
// drop is worth less than the price.
func (s *service) OpenCase(ctx context.Context, caseID string) (*OpenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	c, err := s.catalog.Case(caseID)
	if err != nil {
		return nil, err
	}
	if s.balance < c.Price {
		return nil, fmt.Errorf("%w: have %s, need %s", domain.ErrInsufficientFunds, s.balance.String(), c.Price.String())
	}

	winner := s.resolver.Resolve(c)
	durability := s.resolver.RollDurability()
	item := domain.OwnedItem{
		ID:         uuid.NewString(),
		Name:       winner.Name,
		Rarity:     winner.Rarity,
		MinPrice:   winner.MinPrice,
		MaxPrice:   winner.MaxPrice,
		Type:       winner.Type,
		Durability: durability,
		Value:      domain.ItemValue(winner, durability),
	}

	s.balance -= c.Price
	s.inventory = append(s.inventory, item)
	s.persist(ctx)

	metrics.CasesOpened.WithLabelValues(c.ID).Inc()
	metrics.MoneySpent.Add(float64(c.Price))
	metrics.CasePayout.WithLabelValues(item.Rarity.Name()).Add(float64(item.Value))

	log.Info("Case opened",
		"case", c.ID,
		"item", item.Name,
		"durability", item.Durability,
		"value", item.Value.String(),
		"balance", s.balance.String())

	return &OpenResult{
		Item:    item,
		Reveal:  s.resolver.RevealSequence(c, winner),
		Balance: s.balance,
	}, nil
}

// BuyShopItem charges the marked-up shop price for a current offer entry
// and adds a pristine copy (durability 100, value at max price) to the
// inventory.
func (s *service) BuyShopItem(ctx context.Context, entryID string) (*BuyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	entry, err := s.shop.Lookup(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if s.balance < entry.ShopPrice {
		return nil, fmt.Errorf("%w: have %s, need %s", domain.ErrInsufficientFunds, s.balance.String(), entry.ShopPrice.String())
	}

	item := domain.OwnedItem{
		ID:         uuid.NewString(),
		Name:       entry.Item.Name,
		Rarity:     entry.Item.Rarity,
		MinPrice:   entry.Item.MinPrice,
		MaxPrice:   entry.Item.MaxPrice,
		Type:       entry.Item.Type,
		Durability: 100,
		Value:      domain.ItemValue(entry.Item, 100),
	}

	s.balance -= entry.ShopPrice
	s.inventory = append(s.inventory, item)
	s.persist(ctx)

	metrics.ShopBuys.WithLabelValues(item.Name).Inc()
	metrics.MoneySpent.Add(float64(entry.ShopPrice))

	log.Info("Shop item bought",
		"item", item.Name,
		"price", entry.ShopPrice.String(),
		"balance", s.balance.String())

	return &BuyResult{Item: item, Balance: s.balance}, nil
}

// SellItems removes the named items from the inventory and credits their
// exact combined value. Ids not in the inventory are ignored; an empty or
// fully unknown selection is a no-op that credits nothing.
func (s *service) SellItems(ctx context.Context, itemIDs []string) (*SellResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	selected := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		selected[id] = true
	}

	var proceeds domain.Cents
	kept := s.inventory[:0]
	sold := 0
	for _, item := range s.inventory {
		if selected[item.ID] {
			proceeds += item.Value
			sold++
			continue
		}
		kept = append(kept, item)
	}

	if sold == 0 {
		return &SellResult{Balance: s.balance}, nil
	}

	s.inventory = kept
	s.balance += proceeds
	s.persist(ctx)

	metrics.ItemsSold.Add(float64(sold))
	metrics.MoneyEarned.Add(float64(proceeds))

	log.Info("Items sold",
		"count", sold,
		"proceeds", proceeds.String(),
		"balance", s.balance.String())

	return &SellResult{Proceeds: proceeds, Sold: sold, Balance: s.balance}, nil
}

// ClaimDaily awards the daily bonus and credits it to the wallet.
func (s *service) ClaimDaily(ctx context.Context) (*DailyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	result, err := s.daily.Claim(ctx)
	if err != nil {
		return nil, err
	}

	s.balance += result.Reward
	s.persistBalance(ctx)

	metrics.DailyClaims.Inc()
	metrics.MoneyEarned.Add(float64(result.Reward))

	log.Info("Daily reward credited",
		"reward", result.Reward.String(),
		"streak", result.NewStreak,
		"balance", s.balance.String())

	return &DailyResult{Reward: result.Reward, Streak: result.NewStreak, Balance: s.balance}, nil
}

// Wallet returns the current balance.
func (s *service) Wallet(ctx context.Context) domain.Cents {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Inventory returns a copy of the owned items in acquisition order.
func (s *service) Inventory(ctx context.Context) domain.Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(domain.Inventory(nil), s.inventory...)
}

// Cases lists every openable case definition.
func (s *service) Cases(ctx context.Context) []domain.Case {
	return s.catalog.Cases()
}

// ShopOffer returns today's shop offer, rotating it first if needed.
func (s *service) ShopOffer(ctx context.Context) domain.ShopOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	offer := s.shop.CurrentOffer(ctx)
	return domain.ShopOffer{
		Day:     offer.Day,
		Entries: append([]domain.ShopEntry(nil), offer.Entries...),
	}
}

// DailyStatus reports whether today's bonus is claimable and what it pays.
func (s *service) DailyStatus(ctx context.Context) domain.DailyStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daily.Status(ctx)
}

// persist is write-behind: failures are logged and the in-memory ledger
// stays authoritative for the session.
func (s *service) persist(ctx context.Context) {
	s.persistBalance(ctx)
	s.persistInventory(ctx)
}

func (s *service) persistBalance(ctx context.Context) {
	if err := s.store.Set(ctx, storage.KeyBalance, s.balance.String()); err != nil {
		logger.FromContext(ctx).Warn("Failed to persist balance", "error", err)
	}
}

func (s *service) persistInventory(ctx context.Context) {
	log := logger.FromContext(ctx)
	raw, err := json.Marshal(s.inventory)
	if err != nil {
		log.Warn("Failed to encode inventory snapshot", "error", err)
		return
	}
	if err := s.store.Set(ctx, storage.KeyInventory, string(raw)); err != nil {
		log.Warn("Failed to persist inventory", "error", err)
	}
}
