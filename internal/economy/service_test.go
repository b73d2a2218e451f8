package economy

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootworks/casesim/internal/catalog"
	"github.com/lootworks/casesim/internal/daily"
	"github.com/lootworks/casesim/internal/domain"
	"github.com/lootworks/casesim/internal/droptable"
	"github.com/lootworks/casesim/internal/shop"
	"github.com/lootworks/casesim/internal/storage"
)

// settableClock is a mutable test clock for crossing day boundaries.
type settableClock struct {
	day string
}

func (c *settableClock) Today() string { return c.day }

// scriptRand plays back a fixed sequence of draws, then falls through to a
// seeded source for the remainder (reveal strips consume many draws).
type scriptRand struct {
	vals []float64
	i    int
	rng  *rand.Rand
}

func newScriptRand(vals ...float64) *scriptRand {
	return &scriptRand{
		vals: vals,
		rng:  rand.New(rand.NewSource(7)), //nolint:gosec // deterministic test source
	}
}

func (s *scriptRand) next() float64 {
	if s.i < len(s.vals) {
		v := s.vals[s.i]
		s.i++
		return v
	}
	return s.rng.Float64()
}

type fixture struct {
	store *storage.MemoryStore
	clock *settableClock
	svc   Service
}

// newFixture wires a full engine against an in-memory store. Case draws
// follow the script; shop shuffles use an independent seeded source.
func newFixture(t *testing.T, store *storage.MemoryStore, script ...float64) *fixture {
	t.Helper()
	ctx := context.Background()

	cat, err := catalog.Load()
	require.NoError(t, err)

	clock := &settableClock{day: "2026-08-01"}
	resolver := droptable.NewResolverWithRand(newScriptRand(script...).next)
	shopRng := rand.New(rand.NewSource(11)) //nolint:gosec // deterministic test source
	shopSvc := shop.NewServiceWithRand(ctx, cat, store, clock, 8, shopRng.Float64)
	dailySvc := daily.NewService(ctx, store, clock, daily.ResetNone)

	return &fixture{
		store: store,
		clock: clock,
		svc:   NewService(ctx, store, cat, resolver, shopSvc, dailySvc, domain.Dollars(100)),
	}
}

func TestOpenCase(t *testing.T) {
	ctx := context.Background()

	t.Run("exact funds buy the cheapest drop and leave a zero balance", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "12.00")

		// First draw lands on the first pool entry, second fixes durability
		// at 1 + int(0.49*100) = 50.
		f := newFixture(t, store, 0.0, 0.49)

		result, err := f.svc.OpenCase(ctx, "resources")
		require.NoError(t, err)

		assert.Equal(t, "Coal", result.Item.Name)
		assert.Equal(t, 50, result.Item.Durability)
		assert.Equal(t, domain.Cents(400), result.Item.Value) // 2 + (6-2)*50/100 = 4.00
		assert.Equal(t, domain.Cents(0), result.Balance)
		assert.Equal(t, domain.Cents(0), f.svc.Wallet(ctx))

		inv := f.svc.Inventory(ctx)
		require.Len(t, inv, 1)
		assert.Equal(t, result.Item, inv[0])
	})

	t.Run("returns the reveal strip with the winner in place", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore(), 0.0, 0.49)

		result, err := f.svc.OpenCase(ctx, "resources")
		require.NoError(t, err)

		require.Len(t, result.Reveal, droptable.ItemsBeforeWinner+1+droptable.ItemsAfterWinner)
		assert.Equal(t, result.Item.Name, result.Reveal[droptable.ItemsBeforeWinner].Name)
	})

	t.Run("rejects an unknown case id untouched", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore())

		_, err := f.svc.OpenCase(ctx, "no-such-case")
		assert.ErrorIs(t, err, domain.ErrUnknownCase)
		assert.Equal(t, domain.Dollars(100), f.svc.Wallet(ctx))
	})

	t.Run("rejects a spend over the balance with no state change", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "5.00")
		f := newFixture(t, store)

		_, err := f.svc.OpenCase(ctx, "resources")
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, domain.Cents(500), f.svc.Wallet(ctx))
		assert.Empty(t, f.svc.Inventory(ctx))
	})

	t.Run("persists the balance and inventory after a successful open", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "12.00")
		f := newFixture(t, store, 0.0, 0.49)

		_, err := f.svc.OpenCase(ctx, "resources")
		require.NoError(t, err)

		balance, ok, err := store.Get(ctx, storage.KeyBalance)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "0.00", balance)

		raw, ok, err := store.Get(ctx, storage.KeyInventory)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Contains(t, raw, "Coal")
	})
}

func TestBuyShopItem(t *testing.T) {
	ctx := context.Background()

	t.Run("charges the shop price for a pristine copy", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "100000.00")
		f := newFixture(t, store)

		offer := f.svc.ShopOffer(ctx)
		require.NotEmpty(t, offer.Entries)
		entry := offer.Entries[0]

		result, err := f.svc.BuyShopItem(ctx, entry.ID)
		require.NoError(t, err)

		assert.Equal(t, entry.Item.Name, result.Item.Name)
		assert.Equal(t, 100, result.Item.Durability)
		assert.Equal(t, domain.Dollars(entry.Item.MaxPrice), result.Item.Value)
		assert.Equal(t, domain.Dollars(100000)-entry.ShopPrice, result.Balance)

		inv := f.svc.Inventory(ctx)
		require.Len(t, inv, 1)
		assert.Equal(t, result.Item, inv[0])
	})

	t.Run("rejects a purchase the wallet cannot cover", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "0.00")
		f := newFixture(t, store)

		entry := f.svc.ShopOffer(ctx).Entries[0]
		_, err := f.svc.BuyShopItem(ctx, entry.ID)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Empty(t, f.svc.Inventory(ctx))
	})

	t.Run("rejects an entry from yesterday's offer", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "100000.00")
		f := newFixture(t, store)

		staleID := f.svc.ShopOffer(ctx).Entries[0].ID
		f.clock.day = "2026-08-02"

		_, err := f.svc.BuyShopItem(ctx, staleID)
		assert.ErrorIs(t, err, domain.ErrOfferExpired)
	})

	t.Run("rejects an entry id that never existed", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore())

		_, err := f.svc.BuyShopItem(ctx, "no-such-entry")
		assert.ErrorIs(t, err, domain.ErrUnknownOffer)
	})
}

func TestSellItems(t *testing.T) {
	ctx := context.Background()

	t.Run("credits the exact combined value and removes the items", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "24.00")
		f := newFixture(t, store, 0.0, 0.49)

		first, err := f.svc.OpenCase(ctx, "resources")
		require.NoError(t, err)
		second, err := f.svc.OpenCase(ctx, "resources")
		require.NoError(t, err)
		balanceAfterOpens := second.Balance

		result, err := f.svc.SellItems(ctx, []string{first.Item.ID, second.Item.ID})
		require.NoError(t, err)

		want := first.Item.Value + second.Item.Value
		assert.Equal(t, want, result.Proceeds)
		assert.Equal(t, 2, result.Sold)
		assert.Equal(t, balanceAfterOpens+want, result.Balance)
		assert.Empty(t, f.svc.Inventory(ctx))
	})

	t.Run("keeps unselected items in acquisition order", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "36.00")
		f := newFixture(t, store, 0.0, 0.49)

		var ids []string
		for i := 0; i < 3; i++ {
			result, err := f.svc.OpenCase(ctx, "resources")
			require.NoError(t, err)
			ids = append(ids, result.Item.ID)
		}

		_, err := f.svc.SellItems(ctx, []string{ids[1]})
		require.NoError(t, err)

		inv := f.svc.Inventory(ctx)
		require.Len(t, inv, 2)
		assert.Equal(t, ids[0], inv[0].ID)
		assert.Equal(t, ids[2], inv[1].ID)
	})

	t.Run("ignores ids not in the inventory", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "12.00")
		f := newFixture(t, store, 0.0, 0.49)

		opened, err := f.svc.OpenCase(ctx, "resources")
		require.NoError(t, err)

		result, err := f.svc.SellItems(ctx, []string{"ghost", opened.Item.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Sold)
		assert.Equal(t, opened.Item.Value, result.Proceeds)
	})

	t.Run("an empty selection is a no-op", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore())

		result, err := f.svc.SellItems(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.Cents(0), result.Proceeds)
		assert.Equal(t, 0, result.Sold)
		assert.Equal(t, domain.Dollars(100), result.Balance)
	})
}

func TestClaimDaily(t *testing.T) {
	ctx := context.Background()

	t.Run("credits the reward and escalates across days", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore())

		first, err := f.svc.ClaimDaily(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.Dollars(100), first.Reward)
		assert.Equal(t, 2, first.Streak)
		assert.Equal(t, domain.Dollars(200), first.Balance)

		f.clock.day = "2026-08-02"
		second, err := f.svc.ClaimDaily(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.Dollars(200), second.Reward)
		assert.Equal(t, 3, second.Streak)
		assert.Equal(t, domain.Dollars(400), second.Balance)
	})

	t.Run("rejects a second claim the same day with no credit", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore())

		_, err := f.svc.ClaimDaily(ctx)
		require.NoError(t, err)

		_, err = f.svc.ClaimDaily(ctx)
		assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
		assert.Equal(t, domain.Dollars(200), f.svc.Wallet(ctx))
	})

	t.Run("status flips once claimed", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore())

		status := f.svc.DailyStatus(ctx)
		assert.True(t, status.Claimable)
		assert.Equal(t, domain.Dollars(100), status.NextReward)

		_, err := f.svc.ClaimDaily(ctx)
		require.NoError(t, err)

		status = f.svc.DailyStatus(ctx)
		assert.False(t, status.Claimable)
		assert.Equal(t, domain.Dollars(200), status.NextReward)
	})
}

func TestSnapshots(t *testing.T) {
	ctx := context.Background()

	t.Run("a fresh store starts with the grant and an empty inventory", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore())

		assert.Equal(t, domain.Dollars(100), f.svc.Wallet(ctx))
		assert.Empty(t, f.svc.Inventory(ctx))
	})

	t.Run("a restart restores the persisted ledger", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "12.00")
		first := newFixture(t, store, 0.0, 0.49)

		opened, err := first.svc.OpenCase(ctx, "resources")
		require.NoError(t, err)

		second := newFixture(t, store)
		assert.Equal(t, domain.Cents(0), second.svc.Wallet(ctx))

		inv := second.svc.Inventory(ctx)
		require.Len(t, inv, 1)
		assert.Equal(t, opened.Item, inv[0])
	})

	t.Run("corrupt snapshots fall back to the documented defaults", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "not-money")
		store.Seed(storage.KeyInventory, "{broken")
		f := newFixture(t, store)

		assert.Equal(t, domain.Dollars(100), f.svc.Wallet(ctx))
		assert.Empty(t, f.svc.Inventory(ctx))
	})

	t.Run("a failing store degrades to in-memory only", func(t *testing.T) {
		store := storage.NewMemoryStore()
		store.Seed(storage.KeyBalance, "12.00")
		f := newFixture(t, store, 0.0, 0.49)
		store.FailSets = true

		result, err := f.svc.OpenCase(ctx, "resources")
		require.NoError(t, err)
		assert.Equal(t, domain.Cents(0), result.Balance)
		require.Len(t, f.svc.Inventory(ctx), 1)
	})

	t.Run("lists the full case catalog", func(t *testing.T) {
		f := newFixture(t, storage.NewMemoryStore())

		cases := f.svc.Cases(ctx)
		assert.Len(t, cases, 10)
	})
}
