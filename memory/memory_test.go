package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookling/bookling"
)

func TestRegistryRegister(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	b, err := r.Register(ctx, bookling.NewBusiness{
		OwnerName:    "Ana",
		BusinessName: "Ana's Cuts",
		OwnerEmail:   "ana@x.com",
		Phone:        "555-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "anas-cuts", b.Slug)
	assert.Equal(t, "Ana", b.OwnerName)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := r.FindBySlug(ctx, "anas-cuts")
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestRegistryCollisionSuffix(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	first, err := r.Register(ctx, bookling.NewBusiness{BusinessName: "Fade Factory"})
	require.NoError(t, err)
	second, err := r.Register(ctx, bookling.NewBusiness{BusinessName: "FADE factory!!"})
	require.NoError(t, err)
	third, err := r.Register(ctx, bookling.NewBusiness{BusinessName: "fade factory"})
	require.NoError(t, err)

	assert.Equal(t, "fade-factory", first.Slug)
	assert.Equal(t, "fade-factory-2", second.Slug)
	assert.Equal(t, "fade-factory-3", third.Slug)
}

func TestRegistryOwnerNameFallback(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	b, err := r.Register(ctx, bookling.NewBusiness{OwnerName: "Bo Diddley"})
	require.NoError(t, err)
	assert.Equal(t, "bo-diddley", b.Slug)
}

func TestRegistryEmptyNamesFallBackToDefault(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	first, err := r.Register(ctx, bookling.NewBusiness{})
	require.NoError(t, err)
	second, err := r.Register(ctx, bookling.NewBusiness{BusinessName: "???"})
	require.NoError(t, err)

	assert.Equal(t, "business", first.Slug)
	assert.Equal(t, "business-2", second.Slug)
}

func TestRegistryFindBySlugNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.FindBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, bookling.ErrBusinessNotFound)
}

func TestRegistryConcurrentRegister(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	const n = 32
	slugs := make([]string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := r.Register(ctx, bookling.NewBusiness{BusinessName: "Ana's Cuts"})
			if err != nil {
				t.Error(err)
				return
			}
			slugs[i] = b.Slug
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, s := range slugs {
		assert.False(t, seen[s], "duplicate slug %q", s)
		seen[s] = true
	}
	assert.Len(t, r.All(ctx), n)
}

func TestLedgerRecord(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	before := time.Now().UTC()
	bk, err := l.Record(ctx, bookling.NewBooking{
		BusinessSlug:  "anas-cuts",
		CustomerName:  "Bo",
		CustomerEmail: "bo@x.com",
		Service:       "Haircut",
		Date:          "2024-01-01",
		Time:          "10:00",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, bk.ID)
	assert.Equal(t, "anas-cuts", bk.BusinessSlug)
	assert.Equal(t, "Bo", bk.CustomerName)
	assert.False(t, bk.CreatedAt.Before(before))
	assert.Equal(t, 1, l.Len())
}

func TestLedgerListByBusiness(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	_, err := l.Record(ctx, bookling.NewBooking{BusinessSlug: "a", CustomerName: "one"})
	require.NoError(t, err)
	_, err = l.Record(ctx, bookling.NewBooking{BusinessSlug: "b", CustomerName: "two"})
	require.NoError(t, err)
	_, err = l.Record(ctx, bookling.NewBooking{BusinessSlug: "a", CustomerName: "three"})
	require.NoError(t, err)

	got, err := l.ListByBusiness(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].CustomerName)
	assert.Equal(t, "three", got[1].CustomerName)

	none, err := l.ListByBusiness(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, none)
}
