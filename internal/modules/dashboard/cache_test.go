package dashboard

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/foliotracker/folio/internal/modules/analytics"
)

func newTestCache(t *testing.T, ttl time.Duration) (*SnapshotCache, *sql.DB) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	_, err = db.Exec(`
		CREATE TABLE dashboard_snapshots (
			user_id TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
	`)
	require.NoError(t, err)

	log := zerolog.New(nil).Level(zerolog.Disabled)
	return NewSnapshotCache(db, ttl, log), db
}

func testPayload() *Payload {
	return &Payload{
		Summary: &analytics.PortfolioSummary{
			TotalValue:       1200,
			TotalInvested:    1000,
			TotalGain:        200,
			TotalGainPercent: 20,
		},
		Holdings:  []analytics.InvestmentValuation{},
		Analytics: &analytics.PortfolioAnalytics{TotalValue: 1200},
		Currency:  "USD",
	}
}

func TestSnapshotCache_StoreAndGet(t *testing.T) {
	cache, db := newTestCache(t, time.Minute)
	defer db.Close()

	require.NoError(t, cache.Store("user-1", testPayload()))

	got, err := cache.GetIfFresh("user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1200.0, got.Summary.TotalValue)
	assert.Equal(t, "USD", got.Currency)
}

func TestSnapshotCache_MissReturnsNil(t *testing.T) {
	cache, db := newTestCache(t, time.Minute)
	defer db.Close()

	got, err := cache.GetIfFresh("user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotCache_ExpiredIsMiss(t *testing.T) {
	cache, db := newTestCache(t, -time.Minute)
	defer db.Close()

	require.NoError(t, cache.Store("user-1", testPayload()))

	got, err := cache.GetIfFresh("user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotCache_InvalidateDropsSnapshot(t *testing.T) {
	cache, db := newTestCache(t, time.Minute)
	defer db.Close()

	require.NoError(t, cache.Store("user-1", testPayload()))
	require.NoError(t, cache.Invalidate("user-1"))

	got, err := cache.GetIfFresh("user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotCache_StoreReplacesExisting(t *testing.T) {
	cache, db := newTestCache(t, time.Minute)
	defer db.Close()

	require.NoError(t, cache.Store("user-1", testPayload()))

	updated := testPayload()
	updated.Currency = "EUR"
	require.NoError(t, cache.Store("user-1", updated))

	got, err := cache.GetIfFresh("user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "EUR", got.Currency)
}

func TestSnapshotCache_PurgeExpired(t *testing.T) {
	cache, db := newTestCache(t, -time.Minute)
	defer db.Close()

	require.NoError(t, cache.Store("user-1", testPayload()))
	require.NoError(t, cache.Store("user-2", testPayload()))

	purged, err := cache.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM dashboard_snapshots`).Scan(&count))
	assert.Equal(t, 0, count)
}
