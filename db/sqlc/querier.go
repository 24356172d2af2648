package sqlc

import (
	"context"
	"database/sql"

	"github.com/sqlc-dev/pqtype"
)

// Querier is the query surface the api layer depends on. Keeping it
// an interface lets the handlers run against sqlmock in tests.
type Querier interface {
	AnalyticsIncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error
	AnalyticsIncrementSoloGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error
	AnalyticsIncrementGamesCompletedCount(ctx context.Context, serverIp pqtype.Inet) error

	AnalyticsGetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	AnalyticsGetSoloGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	AnalyticsGetGamesCompletedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
}

type Queries struct {
	db *sql.DB
}

var _ Querier = (*Queries)(nil)

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const analyticsIncrementGamesCreatedCount = `
INSERT INTO game_server_analytics (server_ip, games_created)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET games_created = game_server_analytics.games_created + 1
`

func (q *Queries) AnalyticsIncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, analyticsIncrementGamesCreatedCount, serverIp)
	return err
}

const analyticsIncrementSoloGamesCreatedCount = `
INSERT INTO game_server_analytics (server_ip, solo_games_created)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET solo_games_created = game_server_analytics.solo_games_created + 1
`

func (q *Queries) AnalyticsIncrementSoloGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, analyticsIncrementSoloGamesCreatedCount, serverIp)
	return err
}

const analyticsIncrementGamesCompletedCount = `
INSERT INTO game_server_analytics (server_ip, games_completed)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET games_completed = game_server_analytics.games_completed + 1
`

func (q *Queries) AnalyticsIncrementGamesCompletedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, analyticsIncrementGamesCompletedCount, serverIp)
	return err
}

const analyticsGetGamesCreatedCount = `
SELECT games_created FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) AnalyticsGetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, analyticsGetGamesCreatedCount, serverIp).Scan(&count)
	return count, err
}

const analyticsGetSoloGamesCreatedCount = `
SELECT solo_games_created FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) AnalyticsGetSoloGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, analyticsGetSoloGamesCreatedCount, serverIp).Scan(&count)
	return count, err
}

const analyticsGetGamesCompletedCount = `
SELECT games_completed FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) AnalyticsGetGamesCompletedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, analyticsGetGamesCompletedCount, serverIp).Scan(&count)
	return count, err
}
