// Package shop manages the rotating daily shop: a curated slice of higher
// rarity items offered at a markup, regenerated once per calendar day.
package shop

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/lootworks/casesim/internal/catalog"
	"github.com/lootworks/casesim/internal/domain"
	"github.com/lootworks/casesim/internal/logger"
	"github.com/lootworks/casesim/internal/storage"
	"github.com/lootworks/casesim/internal/utils"
)

// MinShopRarity is the lowest rarity tier eligible for the shop pool.
const MinShopRarity = domain.RarityRare

// Service owns the current shop offer and rotates it when the calendar day
// changes. Callers serialize access (the ledger holds the command lock).
type Service struct {
	catalog *catalog.Catalog
	store   storage.Store
	clock   domain.Clock
	rnd     func() float64
	slots   int

	offer domain.ShopOffer
	// Entry ids from offers that have since rotated out. Lets Lookup tell
	// an expired entry apart from one that never existed.
	stale map[string]bool
}

// NewService creates the rotation manager and restores today's offer from
// the store when a snapshot for the current day exists.
func NewService(ctx context.Context, cat *catalog.Catalog, store storage.Store, clock domain.Clock, slots int) *Service {
	return NewServiceWithRand(ctx, cat, store, clock, slots, utils.RandomFloat)
}

// NewServiceWithRand is NewService with an injectable randomness source,
// for deterministic tests.
func NewServiceWithRand(ctx context.Context, cat *catalog.Catalog, store storage.Store, clock domain.Clock, slots int, rnd func() float64) *Service {
	s := &Service{
		catalog: cat,
		store:   store,
		clock:   clock,
		rnd:     rnd,
		slots:   slots,
		stale:   make(map[string]bool),
	}
	s.restore(ctx)
	return s
}

// CurrentOffer returns the offer for today, rotating first if the stored
// offer is from an earlier day. The returned offer is fixed for the whole
// calendar day.
func (s *Service) CurrentOffer(ctx context.Context) *domain.ShopOffer {
	today := s.clock.Today()
	if s.offer.Day != today {
		s.rotate(ctx, today)
	}
	return &s.offer
}

// Lookup resolves a purchasable entry by id, refreshing the offer first so
// a purchase against yesterday's listing fails with ErrOfferExpired rather
// than buying at a stale price.
func (s *Service) Lookup(ctx context.Context, entryID string) (*domain.ShopEntry, error) {
	offer := s.CurrentOffer(ctx)
	if entry := offer.Entry(entryID); entry != nil {
		return entry, nil
	}
	if s.stale[entryID] {
		return nil, domain.ErrOfferExpired
	}
	return nil, domain.ErrUnknownOffer
}

// rotate regenerates the offer for day: shuffle the eligible pool, take the
// first slots items, price each at the shop markup.
func (s *Service) rotate(ctx context.Context, day string) {
	log := logger.FromContext(ctx)

	for _, entry := range s.offer.Entries {
		s.stale[entry.ID] = true
	}

	pool := s.catalog.ItemsWithMinRarity(MinShopRarity)
	s.shuffle(pool)

	n := s.slots
	if n > len(pool) {
		n = len(pool)
	}

	entries := make([]domain.ShopEntry, 0, n)
	for _, item := range pool[:n] {
		entries = append(entries, domain.ShopEntry{
			ID:        uuid.NewString(),
			Item:      item,
			ShopPrice: domain.ShopPrice(item),
		})
	}

	s.offer = domain.ShopOffer{Day: day, Entries: entries}
	s.persist(ctx)

	log.Info("Shop rotated", "day", day, "entries", len(entries))
}

// shuffle is an in-place Fisher-Yates driven by the injected source.
func (s *Service) shuffle(items []domain.CatalogItem) {
	for i := len(items) - 1; i > 0; i-- {
		j := int(s.rnd() * float64(i+1))
		if j > i {
			j = i
		}
		items[i], items[j] = items[j], items[i]
	}
}

// restore loads the persisted offer. A snapshot from an earlier day is not
// reused, but its entry ids are remembered as expired.
func (s *Service) restore(ctx context.Context) {
	log := logger.FromContext(ctx)

	day, ok, err := s.store.Get(ctx, storage.KeyShopRefresh)
	if err != nil {
		log.Warn("Failed to read shop refresh day", "error", err)
		return
	}
	if !ok {
		return
	}

	raw, ok, err := s.store.Get(ctx, storage.KeyShopItems)
	if err != nil {
		log.Warn("Failed to read shop snapshot", "error", err)
		return
	}
	if !ok {
		return
	}

	var entries []domain.ShopEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warn("Corrupt shop snapshot, discarding", "error", err)
		return
	}

	if day != s.clock.Today() {
		for _, entry := range entries {
			s.stale[entry.ID] = true
		}
		return
	}

	s.offer = domain.ShopOffer{Day: day, Entries: entries}
}

// persist is write-behind: failures are logged and the in-memory offer
// stays authoritative for the session.
func (s *Service) persist(ctx context.Context) {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(s.offer.Entries)
	if err != nil {
		log.Warn("Failed to encode shop snapshot", "error", err)
		return
	}
	if err := s.store.Set(ctx, storage.KeyShopItems, string(raw)); err != nil {
		log.Warn("Failed to persist shop snapshot", "error", err)
	}
	if err := s.store.Set(ctx, storage.KeyShopRefresh, s.offer.Day); err != nil {
		log.Warn("Failed to persist shop refresh day", "error", err)
	}
}
