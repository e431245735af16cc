package postgres

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/kioku-app/kioku/store"
)

func (d *DB) CreateVocabulary(ctx context.Context, create *store.Vocabulary) (*store.Vocabulary, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt := `INSERT INTO vocabulary (uid, created_ts) VALUES (` + placeholders(2) + `) RETURNING id`
	if err := tx.QueryRowContext(ctx, stmt, create.UID, create.CreatedTs).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create vocabulary")
	}

	// Seed the default review state: due immediately, not yet learned.
	stmt = `INSERT INTO review_state (vocab_id, interval_days, ease_factor, reps, next_review_ts, updated_ts)
		VALUES (` + placeholders(6) + `)`
	if _, err := tx.ExecContext(ctx, stmt, create.ID, 0, 2.5, 0, create.CreatedTs, create.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to seed review state")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}
	return create, nil
}

func (d *DB) ListVocabulary(ctx context.Context, find *store.FindVocabulary) ([]*store.Vocabulary, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, created_ts FROM vocabulary WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id ASC`
	if find.Limit != nil {
		query += " LIMIT " + placeholder(len(args)+1)
		args = append(args, *find.Limit)
		if find.Offset != nil {
			query += " OFFSET " + placeholder(len(args)+1)
			args = append(args, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query vocabulary")
	}
	defer rows.Close()

	list := make([]*store.Vocabulary, 0)
	for rows.Next() {
		var vocab store.Vocabulary
		if err := rows.Scan(&vocab.ID, &vocab.UID, &vocab.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan vocabulary")
		}
		list = append(list, &vocab)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate vocabulary")
	}
	return list, nil
}

func (d *DB) CountVocabulary(ctx context.Context) (int, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vocabulary`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count vocabulary")
	}
	return count, nil
}

func (d *DB) DeleteVocabulary(ctx context.Context, delete *store.DeleteVocabulary) error {
	stmt := `DELETE FROM vocabulary WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete vocabulary")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.New("vocabulary not found")
	}
	return nil
}
