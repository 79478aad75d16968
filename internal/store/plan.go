// Package store persists the plan snapshot in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/planifica/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// FileName is the database file name inside the data directory.
const FileName = "planifica.db"

// Store is a SQLite-backed plan snapshot. It satisfies planner.Persister.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening plan db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the stored plan, or nil when no plan has been saved.
func (s *Store) Load(ctx context.Context) (*model.PlanState, error) {
	var st model.PlanState
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `SELECT plan_id, per_period_target, total_target, period_count, updated_at
		FROM plan WHERE id = 1`).Scan(&st.PlanID, &st.PerPeriodTarget, &st.TotalTarget, &st.PeriodCount, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	st.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	rows, err := s.db.QueryContext(ctx, `SELECT p.idx, p.saved_amount,
		e.name, e.content_ref, e.media_type, e.size_bytes, e.attached_at
		FROM periods p LEFT JOIN evidence e ON e.period_idx = p.idx
		ORDER BY p.idx`)
	if err != nil {
		return nil, fmt.Errorf("reading periods: %w", err)
	}
	defer func() { _ = rows.Close() }()

	st.Periods = make([]model.Period, 0, st.PeriodCount)
	for rows.Next() {
		var p model.Period
		var name, ref, mediaType, attachedAt sql.NullString
		var size sql.NullInt64
		if err := rows.Scan(&p.Index, &p.SavedAmount, &name, &ref, &mediaType, &size, &attachedAt); err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}
		if ref.Valid {
			ev := &model.Evidence{
				Name:      name.String,
				Ref:       ref.String,
				MediaType: mediaType.String,
				SizeBytes: size.Int64,
			}
			if attachedAt.Valid && attachedAt.String != "" {
				ev.AttachedAt, _ = time.Parse(time.RFC3339, attachedAt.String)
			}
			p.Evidence = ev
		}
		st.Periods = append(st.Periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading periods: %w", err)
	}

	if len(st.Periods) != st.PeriodCount {
		slog.Warn("stored period count mismatch", "period_count", st.PeriodCount, "rows", len(st.Periods))
		st.PeriodCount = len(st.Periods)
	}
	return &st, nil
}

// Save replaces the stored plan with st in one transaction. An empty plan
// clears the store.
func (s *Store) Save(ctx context.Context, st model.PlanState) error {
	if st.IsEmpty() {
		return s.Clear(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	updatedAt := st.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO plan (id, plan_id, per_period_target, total_target, period_count, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			plan_id = excluded.plan_id,
			per_period_target = excluded.per_period_target,
			total_target = excluded.total_target,
			period_count = excluded.period_count,
			updated_at = excluded.updated_at`,
		st.PlanID, st.PerPeriodTarget.String(), st.TotalTarget.String(), len(st.Periods),
		updatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving plan row: %w", err)
	}

	// Evidence rows cascade with their periods.
	if _, err = tx.ExecContext(ctx, "DELETE FROM periods"); err != nil {
		return fmt.Errorf("clearing periods: %w", err)
	}

	periodStmt, err := tx.PrepareContext(ctx, "INSERT INTO periods (idx, saved_amount) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing period insert: %w", err)
	}
	defer func() { _ = periodStmt.Close() }()

	evidenceStmt, err := tx.PrepareContext(ctx, `INSERT INTO evidence
		(period_idx, name, content_ref, media_type, size_bytes, attached_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing evidence insert: %w", err)
	}
	defer func() { _ = evidenceStmt.Close() }()

	for _, p := range st.Periods {
		if _, err = periodStmt.ExecContext(ctx, p.Index, p.SavedAmount.String()); err != nil {
			return fmt.Errorf("saving period %d: %w", p.Index, err)
		}
		if p.Evidence == nil {
			continue
		}
		attachedAt := ""
		if !p.Evidence.AttachedAt.IsZero() {
			attachedAt = p.Evidence.AttachedAt.UTC().Format(time.RFC3339)
		}
		_, err = evidenceStmt.ExecContext(ctx, p.Index, p.Evidence.Name, p.Evidence.Ref,
			p.Evidence.MediaType, p.Evidence.SizeBytes, attachedAt)
		if err != nil {
			return fmt.Errorf("saving evidence for period %d: %w", p.Index, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	slog.Debug("plan saved", "periods", len(st.Periods))
	return nil
}

// Clear removes the stored plan.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{"DELETE FROM evidence", "DELETE FROM periods", "DELETE FROM plan"} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clearing plan: %w", err)
		}
	}
	return tx.Commit()
}

// EvidenceCount returns the number of periods with evidence attached.
func (s *Store) EvidenceCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM evidence").Scan(&count)
	return count, err
}
