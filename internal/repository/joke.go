// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"codeberg.org/oliverandrich/jokebox/internal/models"
)

const jokeSelect = `SELECT j.id, j.joke_text, j.category, j.created_at, j.likes, j.user_id, u.username AS author
FROM jokes j LEFT JOIN users u ON u.id = j.user_id`

// JokeFilter narrows joke queries. Zero values match everything.
type JokeFilter struct {
	Category string
	UserID   int64
}

func (f JokeFilter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.Category != "" {
		clauses = append(clauses, "j.category = ?")
		args = append(args, f.Category)
	}
	if f.UserID != 0 {
		clauses = append(clauses, "j.user_id = ?")
		args = append(args, f.UserID)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// CreateJoke inserts a joke and fills in its ID and creation time.
func (r *Repository) CreateJoke(ctx context.Context, joke *models.Joke) error {
	if joke.CreatedAt.IsZero() {
		joke.CreatedAt = time.Now().UTC()
	}

	result, err := r.q.ExecContext(ctx,
		`INSERT INTO jokes (joke_text, category, created_at, likes, user_id) VALUES (?, ?, ?, ?, ?)`,
		joke.Text, joke.Category, joke.CreatedAt, joke.Likes, joke.UserID)
	if err != nil {
		return wrapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	joke.ID = id
	return nil
}

// GetJokeByID retrieves a joke with its author name.
func (r *Repository) GetJokeByID(ctx context.Context, id int64) (*models.Joke, error) {
	var joke models.Joke
	if err := r.q.GetContext(ctx, &joke, jokeSelect+` WHERE j.id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &joke, nil
}

// DeleteJoke permanently removes a joke.
func (r *Repository) DeleteJoke(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM jokes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// IncrementLikes adds one like in a single statement.
func (r *Repository) IncrementLikes(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE jokes SET likes = likes + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// CountJokes returns the number of jokes matching the filter.
func (r *Repository) CountJokes(ctx context.Context, filter JokeFilter) (int64, error) {
	where, args := filter.where()
	var count int64
	err := r.q.GetContext(ctx, &count, `SELECT COUNT(*) FROM jokes j`+where, args...)
	return count, err
}

// ListJokes returns matching jokes, newest first.
func (r *Repository) ListJokes(ctx context.Context, filter JokeFilter, limit, offset int) ([]models.Joke, error) {
	where, args := filter.where()
	args = append(args, limit, offset)

	jokes := []models.Joke{}
	err := r.q.SelectContext(ctx, &jokes,
		jokeSelect+where+` ORDER BY j.created_at DESC, j.id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	return jokes, nil
}

// PickJoke returns the matching joke at offset in a stable id order.
func (r *Repository) PickJoke(ctx context.Context, filter JokeFilter, offset int) (*models.Joke, error) {
	where, args := filter.where()
	args = append(args, offset)

	var joke models.Joke
	if err := r.q.GetContext(ctx, &joke, jokeSelect+where+` ORDER BY j.id LIMIT 1 OFFSET ?`, args...); err != nil {
		return nil, wrapError(err)
	}
	return &joke, nil
}

// SampleJokes returns up to n jokes in random order.
func (r *Repository) SampleJokes(ctx context.Context, n int) ([]models.Joke, error) {
	jokes := []models.Joke{}
	if err := r.q.SelectContext(ctx, &jokes, jokeSelect+` ORDER BY RANDOM() LIMIT ?`, n); err != nil {
		return nil, err
	}
	return jokes, nil
}

// ListCategories returns each distinct stored category with its joke count.
func (r *Repository) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {
	counts := []models.CategoryCount{}
	err := r.q.SelectContext(ctx, &counts,
		`SELECT category, COUNT(*) AS count FROM jokes GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// SumLikesByUser returns the total likes across a user's jokes.
func (r *Repository) SumLikesByUser(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.q.GetContext(ctx, &total, `SELECT COALESCE(SUM(likes), 0) FROM jokes WHERE user_id = ?`, userID)
	return total, err
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
