// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package jokes

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/repository"
)

type seedJoke struct {
	category string
	text     string
}

var seedJokes = []seedJoke{
	{models.CategoryProgramming, "Why do programmers prefer dark mode? Because light attracts bugs!"},
	{models.CategoryDad, "I'm reading a book on anti-gravity. It's impossible to put down!"},
	{models.CategoryPunny, "I don't trust stairs. They're always up to something."},
	{models.CategoryKnockKnock, "Knock knock. Who's there? Lettuce. Lettuce who? Lettuce in, it's cold out here!"},
	{models.CategoryGeneral, "Why don't skeletons fight each other? They don't have the guts!"},
}

// Bootstrap seeds an empty store with the admin account and example jokes.
// A store that already holds jokes is left alone.
func (s *Service) Bootstrap(ctx context.Context) error {
	var seeded bool
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		count, err := tx.CountJokes(ctx, repository.JokeFilter{})
		if err != nil {
			return fmt.Errorf("failed to count jokes: %w", err)
		}
		if count > 0 {
			return nil
		}

		admin, err := s.accounts.WithRepository(tx).EnsureAdmin(ctx)
		if err != nil {
			return err
		}

		for _, seed := range seedJokes {
			joke := &models.Joke{Text: seed.text, Category: seed.category, UserID: admin.ID}
			if err := tx.CreateJoke(ctx, joke); err != nil {
				return fmt.Errorf("failed to seed joke: %w", err)
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	if seeded {
		slog.Info("bootstrap_seeded", "jokes", len(seedJokes))
	}
	return nil
}
