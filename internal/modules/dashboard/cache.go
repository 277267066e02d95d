// Package dashboard composes the combined dashboard payload and caches it
// per user. The cache replaces the old implicit global dashboard store: it
// is keyed by user, has a short TTL, and every mutation path invalidates it
// explicitly so the next read recomputes from the record store.
package dashboard

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotCache stores msgpack-encoded dashboard payloads with expiration
// timestamps in the cache database. Everything here is recomputable; losing
// the cache only costs a recompute.
type SnapshotCache struct {
	db  *sql.DB
	ttl time.Duration
	log zerolog.Logger
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache(db *sql.DB, ttl time.Duration, log zerolog.Logger) *SnapshotCache {
	return &SnapshotCache{
		db:  db,
		ttl: ttl,
		log: log.With().Str("repo", "snapshot_cache").Logger(),
	}
}

// Store saves a user's payload with expiration = now + ttl.
func (c *SnapshotCache) Store(userID string, payload *Payload) error {
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	expiresAt := time.Now().Add(c.ttl).Unix()

	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO dashboard_snapshots (user_id, data, expires_at) VALUES (?, ?, ?)`,
		userID, data, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// GetIfFresh returns the cached payload only if it has not expired.
// Returns nil, nil on a miss.
func (c *SnapshotCache) GetIfFresh(userID string) (*Payload, error) {
	var data []byte
	err := c.db.QueryRow(
		`SELECT data FROM dashboard_snapshots WHERE user_id = ? AND expires_at > ?`,
		userID, time.Now().Unix(),
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var payload Payload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		// A corrupt blob is just a cache miss
		c.log.Warn().Err(err).Str("user_id", userID).Msg("Dropping undecodable snapshot")
		_ = c.Invalidate(userID)
		return nil, nil
	}
	return &payload, nil
}

// Invalidate drops a user's cached snapshot. Called after every mutation.
func (c *SnapshotCache) Invalidate(userID string) error {
	if _, err := c.db.Exec(`DELETE FROM dashboard_snapshots WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to invalidate snapshot: %w", err)
	}
	return nil
}

// PurgeExpired removes expired snapshots. Run by the maintenance job.
func (c *SnapshotCache) PurgeExpired() (int64, error) {
	res, err := c.db.Exec(`DELETE FROM dashboard_snapshots WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge snapshots: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
