package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/bojcoach/internal/solvedac"
)

// snapshotRepo implements SnapshotRepo on raw SQL. Profile data is
// stored as a JSON blob so schema changes don't need a migration.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	if snap.Sequence == 0 {
		seqNum, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = seqNum
	}

	data, err := json.Marshal(snap.User)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (sequence, handle, taken_at, data) VALUES (?, ?, ?, ?)`,
		snap.Sequence, snap.Handle, snap.TakenAt.UTC(), string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, handle string) (*Snapshot, error) {
	var (
		snap Snapshot
		data string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, handle, taken_at, data FROM snapshots
		 WHERE handle = ? ORDER BY sequence DESC LIMIT 1`,
		handle,
	).Scan(&snap.ID, &snap.Sequence, &snap.Handle, &snap.TakenAt, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}

	var u solvedac.User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	snap.User = u
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, handle string, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE handle = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE handle = ? ORDER BY sequence DESC LIMIT ?
		)`,
		handle, handle, keep,
	)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
