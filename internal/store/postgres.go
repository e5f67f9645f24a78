package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/snapkit/internal/designer"
)

const schema = `
CREATE TABLE IF NOT EXISTS ruler_guides (
	workspace_id TEXT NOT NULL,
	id           TEXT NOT NULL,
	start_x      DOUBLE PRECISION NOT NULL,
	start_y      DOUBLE PRECISION NOT NULL,
	end_x        DOUBLE PRECISION NOT NULL,
	end_y        DOUBLE PRECISION NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (workspace_id, id)
)`

type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects, pings and ensures the guide table exists.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate ruler_guides: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) List(ctx context.Context, workspaceID string) ([]designer.Guide, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, start_x, start_y, end_x, end_y
		FROM ruler_guides
		WHERE workspace_id = $1
		ORDER BY created_at, id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	defer rows.Close()

	var guides []designer.Guide
	for rows.Next() {
		var g designer.Guide
		if err := rows.Scan(&g.ID, &g.Start.X, &g.Start.Y, &g.End.X, &g.End.Y); err != nil {
			return nil, fmt.Errorf("scan guide: %w", err)
		}
		guides = append(guides, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	return guides, nil
}

func (p *Postgres) Save(ctx context.Context, workspaceID string, g designer.Guide) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO ruler_guides (workspace_id, id, start_x, start_y, end_x, end_y)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (workspace_id, id) DO UPDATE
		SET start_x = EXCLUDED.start_x, start_y = EXCLUDED.start_y,
		    end_x = EXCLUDED.end_x, end_y = EXCLUDED.end_y`,
		workspaceID, g.ID, g.Start.X, g.Start.Y, g.End.X, g.End.Y)
	if err != nil {
		return fmt.Errorf("save guide: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, workspaceID, guideID string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM ruler_guides WHERE workspace_id = $1 AND id = $2`, workspaceID, guideID)
	if err != nil {
		return fmt.Errorf("delete guide: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}
