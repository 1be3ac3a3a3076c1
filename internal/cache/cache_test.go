package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jordan/vibe-jobs/internal/db"
)

func testCache(t *testing.T) (*CompanyCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := New(mr.Addr(), "", 0, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestNew_UnreachableRedis(t *testing.T) {
	_, err := New("127.0.0.1:1", "", 0, zap.NewNop())
	assert.Error(t, err)
}

func TestCompanyCache_SetAndGet(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()
	id := uuid.New()
	company := &db.Company{ID: uuid.New(), IdentityID: id, Name: "Vibe Labs"}

	c.Set(ctx, id, company)

	got, ok := c.Get(ctx, id)
	require.True(t, ok)
	assert.Equal(t, company.ID, got.ID)
	assert.Equal(t, "Vibe Labs", got.Name)
}

func TestCompanyCache_MissOnUnknownIdentity(t *testing.T) {
	c, _ := testCache(t)

	got, ok := c.Get(context.Background(), uuid.New())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCompanyCache_SetNilIsNoop(t *testing.T) {
	c, mr := testCache(t)
	id := uuid.New()

	c.Set(context.Background(), id, nil)

	assert.False(t, mr.Exists(companyKey(id)))
}

func TestCompanyCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := testCache(t)
	id := uuid.New()

	require.NoError(t, mr.Set(companyKey(id), "{not json"))

	_, ok := c.Get(context.Background(), id)
	assert.False(t, ok)
}

func TestCompanyCache_EmptyEnvelopeIsMiss(t *testing.T) {
	c, mr := testCache(t)
	id := uuid.New()

	require.NoError(t, mr.Set(companyKey(id), `{"company":null,"cached_at":"2026-01-01T00:00:00Z"}`))

	_, ok := c.Get(context.Background(), id)
	assert.False(t, ok)
}

// The freshness stamp is checked against the entry itself, so an entry
// surviving past the TTL (no eviction) still reads as a miss at exactly
// five minutes and as a hit just before.
func TestCompanyCache_FreshnessStamp(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()
	id := uuid.New()

	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	c.Set(ctx, id, &db.Company{IdentityID: id, Name: "Vibe Labs"})

	c.now = func() time.Time { return base.Add(CompanyCacheTTL - time.Second) }
	_, ok := c.Get(ctx, id)
	assert.True(t, ok, "entry just inside the window is fresh")

	c.now = func() time.Time { return base.Add(CompanyCacheTTL) }
	_, ok = c.Get(ctx, id)
	assert.False(t, ok, "entry aged exactly to the TTL is stale")
}

func TestCompanyCache_KeyExpiry(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()
	id := uuid.New()

	c.Set(ctx, id, &db.Company{IdentityID: id, Name: "Vibe Labs"})
	require.True(t, mr.Exists(companyKey(id)))

	mr.FastForward(CompanyCacheTTL + time.Second)

	_, ok := c.Get(ctx, id)
	assert.False(t, ok)
}

func TestCompanyCache_Delete(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()
	id := uuid.New()

	c.Set(ctx, id, &db.Company{IdentityID: id, Name: "Vibe Labs"})
	c.Delete(ctx, id)

	_, ok := c.Get(ctx, id)
	assert.False(t, ok)

	// deleting a missing entry is a no-op
	c.Delete(ctx, uuid.New())
}

func TestCompanyCache_Clear(t *testing.T) {
	c, mr := testCache(t)
	ctx := context.Background()

	first, second := uuid.New(), uuid.New()
	c.Set(ctx, first, &db.Company{IdentityID: first, Name: "Vibe Labs"})
	c.Set(ctx, second, &db.Company{IdentityID: second, Name: "Prompt Foundry"})
	require.NoError(t, mr.Set("unrelated:key", "kept"))

	c.Clear(ctx)

	_, ok := c.Get(ctx, first)
	assert.False(t, ok)
	_, ok = c.Get(ctx, second)
	assert.False(t, ok)
	assert.True(t, mr.Exists("unrelated:key"), "clear only touches company keys")
}
