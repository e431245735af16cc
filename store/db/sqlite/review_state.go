package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/kioku-app/kioku/store"
)

func reviewStateConditions(find *store.FindReviewState, args []any) ([]string, []any) {
	where := []string{"1 = 1"}

	if v := find.ID; v != nil {
		where, args = append(where, "review_state.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.VocabID; v != nil {
		where, args = append(where, "review_state.vocab_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.VocabUID; v != nil {
		where, args = append(where, "vocabulary.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.NextReviewBefore; v != nil {
		where, args = append(where, "review_state.next_review_ts <= "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.NextReviewAfter; v != nil {
		where, args = append(where, "review_state.next_review_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.MinReps; v != nil {
		where, args = append(where, "review_state.reps >= "+placeholder(len(args)+1)), append(args, *v)
	}

	return where, args
}

func (d *DB) ListReviewStates(ctx context.Context, find *store.FindReviewState) ([]*store.ReviewState, error) {
	where, args := reviewStateConditions(find, []any{})

	query := `
		SELECT
			review_state.id, review_state.vocab_id, vocabulary.uid,
			review_state.interval_days, review_state.ease_factor, review_state.reps,
			review_state.next_review_ts, review_state.updated_ts
		FROM review_state
		JOIN vocabulary ON vocabulary.id = review_state.vocab_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY review_state.next_review_ts ASC, review_state.vocab_id ASC`

	if find.Limit != nil {
		query += " LIMIT " + placeholder(len(args)+1)
		args = append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query review states")
	}
	defer rows.Close()

	list := make([]*store.ReviewState, 0)
	for rows.Next() {
		var state store.ReviewState
		if err := rows.Scan(
			&state.ID,
			&state.VocabID,
			&state.VocabUID,
			&state.IntervalDays,
			&state.EaseFactor,
			&state.Reps,
			&state.NextReviewTs,
			&state.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan review state")
		}
		list = append(list, &state)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate review states")
	}
	return list, nil
}

func (d *DB) CountReviewStates(ctx context.Context, find *store.FindReviewState) (int, error) {
	where, args := reviewStateConditions(find, []any{})

	query := `
		SELECT COUNT(*)
		FROM review_state
		JOIN vocabulary ON vocabulary.id = review_state.vocab_id
		WHERE ` + strings.Join(where, " AND ")

	var count int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count review states")
	}
	return count, nil
}

func (d *DB) UpdateReviewState(ctx context.Context, update *store.UpdateReviewState) error {
	set, args := []string{}, []any{}

	if v := update.IntervalDays; v != nil {
		set, args = append(set, "interval_days = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.EaseFactor; v != nil {
		set, args = append(set, "ease_factor = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Reps; v != nil {
		set, args = append(set, "reps = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.NextReviewTs; v != nil {
		set, args = append(set, "next_review_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.VocabID)
	stmt := `UPDATE review_state SET ` + strings.Join(set, ", ") + ` WHERE vocab_id = ` + placeholder(len(args))
	result, err := d.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update review state")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.New("review state not found")
	}
	return nil
}
