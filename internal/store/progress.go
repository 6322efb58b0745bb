package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type progressRepo struct {
	db  *sql.DB
	now func() time.Time
}

var progressSelect = []string{
	"key", "seed", "run_id", "section_index", "trait_index", "question_index",
	"scores", "bank_version", "complete", "created_at", "updated_at",
}

func (r *progressRepo) Save(ctx context.Context, rec *ProgressRecord) error {
	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	now := r.now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	query, args := builder().Insert(progressTable.Name).
		Columns(progressSelect...).
		Values(rec.Key, rec.Seed, rec.RunID, rec.SectionIndex, rec.TraitIndex, rec.QuestionIndex,
			string(scores), rec.BankVersion, rec.Complete, rec.CreatedAt, rec.UpdatedAt).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, c := range progressSelect {
					if c == "key" || c == "created_at" {
						continue
					}
					u.SetExcluded(c)
				}
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Load(ctx context.Context, key string) (*ProgressRecord, error) {
	query, args := builder().Select(progressSelect...).
		From(entsql.Table(progressTable.Name)).
		Where(entsql.EQ("key", key)).
		Query()
	rec, err := scanProgress(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return rec, nil
}

func (r *progressRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(progressTable.Name).
		Where(entsql.EQ("key", key)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

func (r *progressRepo) List(ctx context.Context) ([]ProgressRecord, error) {
	query, args := builder().Select(progressSelect...).
		From(entsql.Table(progressTable.Name)).
		OrderBy(entsql.Desc("updated_at")).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []ProgressRecord
	for rows.Next() {
		rec, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("list progress: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(s scanner) (*ProgressRecord, error) {
	var (
		rec    ProgressRecord
		scores string
	)
	err := s.Scan(&rec.Key, &rec.Seed, &rec.RunID, &rec.SectionIndex, &rec.TraitIndex, &rec.QuestionIndex,
		&scores, &rec.BankVersion, &rec.Complete, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
		return nil, fmt.Errorf("unmarshal scores for %s: %w", rec.Key, err)
	}
	return &rec, nil
}
