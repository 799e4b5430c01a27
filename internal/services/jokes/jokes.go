// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package jokes implements joke selection, listing and mutation.
package jokes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"codeberg.org/oliverandrich/jokebox/internal/auth"
	"codeberg.org/oliverandrich/jokebox/internal/config"
	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/repository"
	authsvc "codeberg.org/oliverandrich/jokebox/internal/services/auth"
)

var (
	// ErrNoJokes is returned when no joke matches a random pick.
	ErrNoJokes = errors.New("no jokes found")
	// ErrForbidden is returned when a user deletes a joke they may not delete.
	ErrForbidden = errors.New("not allowed to modify this joke")
	// ErrAdminMissing is returned when an API submission has no admin to attribute it to.
	ErrAdminMissing = errors.New("admin account missing")
	// ErrNotFound aliases the repository error so callers need only this package.
	ErrNotFound = repository.ErrNotFound
)

// SampleSize is the number of jokes shown on the home page.
const SampleSize = 6

// Service holds the joke operations shared by the web pages and the JSON API.
type Service struct {
	repo     *repository.Repository
	accounts *authsvc.Service
	intn     func(n int) int
	pageSize int
}

// Option configures a Service.
type Option func(*Service)

// WithRandom replaces the source of randomness. intn must return a value in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(s *Service) {
		s.intn = intn
	}
}

// WithPageSize sets the default page size for listings.
func WithPageSize(n int) Option {
	return func(s *Service) {
		s.pageSize = n
	}
}

// NewService creates a joke service backed by repo.
func NewService(repo *repository.Repository, accounts *authsvc.Service, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		accounts: accounts,
		intn:     rand.IntN,
		pageSize: config.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Random returns a uniformly chosen joke from category. Without a category
// it first picks a category uniformly, then a joke within it.
func (s *Service) Random(ctx context.Context, category string) (*models.Joke, error) {
	if category != "" {
		return s.pickIn(ctx, category)
	}

	counts, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(counts) == 0 {
		return nil, ErrNoJokes
	}
	chosen := counts[s.intn(len(counts))]
	return s.pick(ctx, repository.JokeFilter{Category: chosen.Category}, chosen.Count)
}

func (s *Service) pickIn(ctx context.Context, category string) (*models.Joke, error) {
	filter := repository.JokeFilter{Category: category}
	count, err := s.repo.CountJokes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count jokes: %w", err)
	}
	return s.pick(ctx, filter, count)
}

func (s *Service) pick(ctx context.Context, filter repository.JokeFilter, count int64) (*models.Joke, error) {
	if count == 0 {
		return nil, ErrNoJokes
	}
	joke, err := s.repo.PickJoke(ctx, filter, s.intn(int(count)))
	if errors.Is(err, repository.ErrNotFound) {
		// deleted between count and pick
		return nil, ErrNoJokes
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick joke: %w", err)
	}
	return joke, nil
}

// ListParams selects one page of a newest-first listing.
type ListParams struct {
	Category string
	OwnerID  int64
	Page     int
	PerPage  int
}

func (s *Service) normalize(p ListParams) ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = s.pageSize
	}
	if p.PerPage > config.MaxPageSize {
		p.PerPage = config.MaxPageSize
	}
	return p
}

// List returns one page of jokes. Pages past the end are empty but carry the total.
func (s *Service) List(ctx context.Context, params ListParams) (*models.Page, error) {
	params = s.normalize(params)
	filter := repository.JokeFilter{Category: params.Category, UserID: params.OwnerID}

	total, err := s.repo.CountJokes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count jokes: %w", err)
	}

	page := &models.Page{
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	offset := models.Offset(params.Page, params.PerPage)
	if int64(offset) >= total {
		return page, nil
	}

	page.Items, err = s.repo.ListJokes(ctx, filter, params.PerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list jokes: %w", err)
	}
	return page, nil
}

// Categories returns the stored categories with their joke counts.
func (s *Service) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	return s.repo.ListCategories(ctx)
}

// Sample returns up to n random jokes.
func (s *Service) Sample(ctx context.Context, n int) ([]models.Joke, error) {
	return s.repo.SampleJokes(ctx, n)
}

// Get returns a single joke by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Joke, error) {
	return s.repo.GetJokeByID(ctx, id)
}

// Create stores a joke owned by userID and returns it with its author.
func (s *Service) Create(ctx context.Context, userID int64, text, category string) (*models.Joke, error) {
	joke := &models.Joke{Text: text, Category: category, UserID: userID}
	if err := s.repo.CreateJoke(ctx, joke); err != nil {
		return nil, fmt.Errorf("failed to create joke: %w", err)
	}

	slog.Info("joke_created", "joke_id", joke.ID, "user_id", userID, "category", category)

	return s.repo.GetJokeByID(ctx, joke.ID)
}

// CreateFromAPI stores a joke attributed to the admin account.
func (s *Service) CreateFromAPI(ctx context.Context, text, category string) (*models.Joke, error) {
	admin, err := s.accounts.Admin(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAdminMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return s.Create(ctx, admin.ID, text, category)
}

// Delete removes a joke if user owns it or is an admin.
func (s *Service) Delete(ctx context.Context, user *models.User, id int64) error {
	joke, err := s.repo.GetJokeByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanDelete(user, joke) {
		return ErrForbidden
	}
	if err := s.repo.DeleteJoke(ctx, id); err != nil {
		return err
	}

	slog.Info("joke_deleted", "joke_id", id, "user_id", user.ID)
	return nil
}

// Like adds one like and returns the updated joke.
func (s *Service) Like(ctx context.Context, id int64) (*models.Joke, error) {
	if err := s.repo.IncrementLikes(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetJokeByID(ctx, id)
}

// Dashboard summarises a user's own jokes.
type Dashboard struct {
	Jokes      []models.Joke
	TotalLikes int64
}

// Dashboard returns all of a user's jokes, newest first, with their total likes.
func (s *Service) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	jokes, err := s.repo.ListJokes(ctx, repository.JokeFilter{UserID: userID}, -1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list jokes: %w", err)
	}
	likes, err := s.repo.SumLikesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum likes: %w", err)
	}
	return &Dashboard{Jokes: jokes, TotalLikes: likes}, nil
}

// Profile returns the public projection of a user.
func (s *Service) Profile(ctx context.Context, user *models.User) (models.UserView, error) {
	count, err := s.repo.CountUserJokes(ctx, user.ID)
	if err != nil {
		return models.UserView{}, fmt.Errorf("failed to count jokes: %w", err)
	}
	return user.View(count), nil
}
