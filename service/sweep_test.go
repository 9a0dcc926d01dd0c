package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"cinema_booking/logger"
	"cinema_booking/model"
	"cinema_booking/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteReleased(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := *date("2025-03-10")
	due := f.seedMovie(t, model.MovieComingSoon, "2025-03-10", "2025-04-10")
	late := f.seedMovie(t, model.MovieComingSoon, "2025-02-01", "2025-04-10")
	future := f.seedMovie(t, model.MovieComingSoon, "2025-03-11", "2025-04-10")
	hidden := f.seedMovie(t, model.MovieHidden, "2025-03-01", "2025-04-10")

	res, err := f.sweep.PromoteReleased(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Matched: 2, Changed: 2}, res)
	assert.Equal(t, model.MovieNowShowing, f.movieStatus(t, due.ID))
	assert.Equal(t, model.MovieNowShowing, f.movieStatus(t, late.ID))
	assert.Equal(t, model.MovieComingSoon, f.movieStatus(t, future.ID))
	assert.Equal(t, model.MovieHidden, f.movieStatus(t, hidden.ID))

	res, err = f.sweep.PromoteReleased(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{}, res)
}

func TestEndShowings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := *date("2025-03-10")
	over := f.seedMovie(t, model.MovieNowShowing, "2025-02-01", "2025-03-09")
	lastDay := f.seedMovie(t, model.MovieNowShowing, "2025-02-01", "2025-03-10")

	res, err := f.sweep.EndShowings(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Changed)
	assert.Equal(t, model.MovieEnded, f.movieStatus(t, over.ID))
	assert.Equal(t, model.MovieNowShowing, f.movieStatus(t, lastDay.ID))
}

func TestSweepSkipsMoviesChangedMeanwhile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := *date("2025-03-10")
	m := f.seedMovie(t, model.MovieComingSoon, "2025-03-01", "2025-04-01")

	changed, err := f.movies.StartShowing(ctx, m.ID, today)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NoError(t, f.movies.Hide(ctx, m.ID))

	changed, err = f.movies.StartShowing(ctx, m.ID, today)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, model.MovieHidden, f.movieStatus(t, m.ID))

	require.NoError(t, f.movies.SoftDelete(ctx, m.ID))
	var res SweepResult
	changed, err = f.movies.EndShowing(ctx, m.ID, today)
	res.record(changed, err)
	assert.Equal(t, SweepResult{Skipped: 1}, res)
}

// brokenMovieStore fails every movie save for one id.
type brokenMovieStore struct {
	repository.Store
	brokenID uint
}

func (s *brokenMovieStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repository.Store) error {
		return fn(&brokenMovieStore{Store: tx, brokenID: s.brokenID})
	})
}

func (s *brokenMovieStore) Movies() repository.MovieRepository {
	return &brokenMovies{MovieRepository: s.Store.Movies(), brokenID: s.brokenID}
}

type brokenMovies struct {
	repository.MovieRepository
	brokenID uint
}

func (r *brokenMovies) Save(ctx context.Context, m *model.Movie) error {
	if m.ID == r.brokenID {
		return errors.New("disk I/O error")
	}
	return r.MovieRepository.Save(ctx, m)
}

func TestSweepContinuesPastFailedMovie(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := *date("2025-03-10")
	first := f.seedMovie(t, model.MovieComingSoon, "2025-03-01", "2025-04-01")
	broken := f.seedMovie(t, model.MovieComingSoon, "2025-03-02", "2025-04-01")
	last := f.seedMovie(t, model.MovieComingSoon, "2025-03-03", "2025-04-01")

	store := &brokenMovieStore{Store: f.store, brokenID: broken.ID}
	movies := NewMovieService(Deps{Store: store, Clock: f.clock, Events: f.events})
	var logs bytes.Buffer
	sweep := NewMovieSweep(store, movies, logger.NewWriter(&logs))

	res, err := sweep.PromoteReleased(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Matched: 3, Changed: 2, Failed: 1}, res)
	assert.Equal(t, model.MovieNowShowing, f.movieStatus(t, first.ID))
	assert.Equal(t, model.MovieComingSoon, f.movieStatus(t, broken.ID))
	assert.Equal(t, model.MovieNowShowing, f.movieStatus(t, last.ID))
	assert.Contains(t, logs.String(), fmt.Sprintf("movie %d: save movie: disk I/O error", broken.ID))
}
