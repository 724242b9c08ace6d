// Package postgres persists distribution snapshots. Persistence is an
// external serialization concern; the core only supplies the
// outcome/probability pairs.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"godrv/domain/core"
	"godrv/domain/randvar"
)

const schema = `
CREATE TABLE IF NOT EXISTS distribution_snapshots (
	distribution_id TEXT NOT NULL,
	name            TEXT NOT NULL,
	outcome         DOUBLE PRECISION NOT NULL,
	probability     DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (distribution_id, outcome)
)`

// SnapshotRepository stores outcome/probability rows keyed by
// distribution ID.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a repository over an open connection.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Connect opens a Postgres connection and ensures the schema exists.
func Connect(ctx context.Context, databaseURL string) (*SnapshotRepository, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	repo := NewSnapshotRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// EnsureSchema creates the snapshot table if missing.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot for a distribution.
func (r *SnapshotRepository) Save(ctx context.Context, id core.DistributionID, name string, v *randvar.Variable) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM distribution_snapshots WHERE distribution_id = $1`, id.String()); err != nil {
		return fmt.Errorf("clear snapshot %s: %w", id, err)
	}
	for _, pt := range v.Snapshot() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO distribution_snapshots (distribution_id, name, outcome, probability) VALUES ($1, $2, $3, $4)`,
			id.String(), name, pt.Outcome, pt.Probability,
		); err != nil {
			return fmt.Errorf("insert snapshot row for %s: %w", id, err)
		}
	}
	return tx.Commit()
}

type snapshotRow struct {
	Outcome     float64 `db:"outcome"`
	Probability float64 `db:"probability"`
}

// Load reconstructs a variable from its stored snapshot.
func (r *SnapshotRepository) Load(ctx context.Context, id core.DistributionID) (*randvar.Variable, error) {
	var rows []snapshotRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT outcome, probability FROM distribution_snapshots WHERE distribution_id = $1 ORDER BY outcome`,
		id.String())
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("snapshot %s not found", id)
	}
	outcomes := make([]float64, len(rows))
	probs := make([]float64, len(rows))
	for i, row := range rows {
		outcomes[i] = row.Outcome
		probs[i] = row.Probability
	}
	return randvar.New(outcomes, probs)
}

// Delete removes a stored snapshot.
func (r *SnapshotRepository) Delete(ctx context.Context, id core.DistributionID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM distribution_snapshots WHERE distribution_id = $1`, id.String())
	return err
}

// Close releases the underlying connection.
func (r *SnapshotRepository) Close() error { return r.db.Close() }
