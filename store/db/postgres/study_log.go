package postgres

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/kioku-app/kioku/store"
)

func (d *DB) CreateStudyLog(ctx context.Context, create *store.StudyLog) (*store.StudyLog, error) {
	stmt := `INSERT INTO study_log (vocab_id, known, studied_at_ts) VALUES (` + placeholders(3) + `) RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, create.VocabID, create.Known, create.StudiedAtTs).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create study log")
	}
	return create, nil
}

func (d *DB) ListStudyLogs(ctx context.Context, find *store.FindStudyLog) ([]*store.StudyLog, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.VocabID; v != nil {
		where, args = append(where, "vocab_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.FromTs; v != nil {
		where, args = append(where, "studied_at_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Known; v != nil {
		where, args = append(where, "known = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, vocab_id, known, studied_at_ts FROM study_log WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY studied_at_ts ASC, id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query study logs")
	}
	defer rows.Close()

	list := make([]*store.StudyLog, 0)
	for rows.Next() {
		var entry store.StudyLog
		if err := rows.Scan(&entry.ID, &entry.VocabID, &entry.Known, &entry.StudiedAtTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan study log")
		}
		list = append(list, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate study logs")
	}
	return list, nil
}

func (d *DB) ListFirstSuccessTimestamps(ctx context.Context) ([]int64, error) {
	query := `SELECT MIN(studied_at_ts) FROM study_log WHERE known = TRUE GROUP BY vocab_id`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query first success timestamps")
	}
	defer rows.Close()

	list := make([]int64, 0)
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, errors.Wrap(err, "failed to scan first success timestamp")
		}
		list = append(list, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate first success timestamps")
	}
	return list, nil
}
