package eventstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Store wraps the game_events table.
type Store struct {
	db *bun.DB
}

// NewStore creates a store on an existing connection.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Insert records one decoded event. Re-indexing the same log is a no-op;
// (tx_hash, log_index) uniquely identifies a log on-chain.
func (s *Store) Insert(ctx context.Context, event *GameEventDao) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.UserAddress = strings.ToLower(event.UserAddress)
	event.Contract = strings.ToLower(event.Contract)

	_, err := s.db.NewInsert().
		Model(event).
		On("CONFLICT (tx_hash, log_index) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// History returns a user's events, newest first.
func (s *Store) History(ctx context.Context, userAddress string, limit, offset int) ([]GameEventDao, error) {
	var events []GameEventDao
	err := s.db.NewSelect().
		Model(&events).
		Where("user_address = ?", strings.ToLower(userAddress)).
		OrderExpr("block_number DESC, log_index DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return events, nil
}

// LeaderboardEntry aggregates one user's activity. TotalAmount is a wei-scale
// numeric rendered as a string.
type LeaderboardEntry struct {
	UserAddress string `json:"user_address" bun:"user_address"`
	Events      int64  `json:"events" bun:"events"`
	TotalAmount string `json:"total_amount" bun:"total_amount"`
}

// Leaderboard ranks users by summed amount over the given event types.
func (s *Store) Leaderboard(ctx context.Context, eventTypes []string, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	query := s.db.NewSelect().
		Model((*GameEventDao)(nil)).
		ColumnExpr("user_address").
		ColumnExpr("COUNT(*) AS events").
		ColumnExpr("COALESCE(SUM(amount), 0)::TEXT AS total_amount").
		GroupExpr("user_address").
		OrderExpr("SUM(amount) DESC").
		Limit(limit)
	if len(eventTypes) > 0 {
		query = query.Where("event_type IN (?)", bun.In(eventTypes))
	}
	if err := query.Scan(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	return entries, nil
}

// TypeCount is an event count per event type.
type TypeCount struct {
	EventType string `json:"event_type" bun:"event_type"`
	Count     int64  `json:"count" bun:"count"`
}

// Stats is an aggregate view over everything indexed so far.
type Stats struct {
	TotalEvents int64       `json:"total_events"`
	UniqueUsers int64       `json:"unique_users"`
	ByType      []TypeCount `json:"by_type"`
}

// Stats aggregates indexed event counts.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	total, err := s.db.NewSelect().Model((*GameEventDao)(nil)).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	stats.TotalEvents = int64(total)

	err = s.db.NewSelect().
		Model((*GameEventDao)(nil)).
		ColumnExpr("COUNT(DISTINCT user_address)").
		Scan(ctx, &stats.UniqueUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	err = s.db.NewSelect().
		Model((*GameEventDao)(nil)).
		ColumnExpr("event_type").
		ColumnExpr("COUNT(*) AS count").
		GroupExpr("event_type").
		OrderExpr("count DESC").
		Scan(ctx, &stats.ByType)
	if err != nil {
		return nil, fmt.Errorf("failed to count by type: %w", err)
	}

	return stats, nil
}

// LastIndexedBlock returns the highest block seen, or 0 on an empty table.
// The watcher resumes from here across restarts.
func (s *Store) LastIndexedBlock(ctx context.Context) (uint64, error) {
	var block uint64
	err := s.db.NewSelect().
		Model((*GameEventDao)(nil)).
		ColumnExpr("COALESCE(MAX(block_number), 0)").
		Scan(ctx, &block)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to query last indexed block: %w", err)
	}
	return block, nil
}
