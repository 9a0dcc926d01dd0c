package service

import (
	"context"
	"fmt"

	"cinema_booking/apperror"
	"cinema_booking/events"
	"cinema_booking/model"
	"cinema_booking/repository"
	"cinema_booking/utils"

	"github.com/jinzhu/copier"
)

const defaultEndingSoonDays = 7

type MovieService struct {
	base
	EndingSoonDays int
}

func NewMovieService(d Deps) *MovieService {
	return &MovieService{base: newBase(d), EndingSoonDays: defaultEndingSoonDays}
}

func (s *MovieService) CreateDraft(ctx context.Context, p model.MoviePatch) (uint, error) {
	m := &model.Movie{Status: model.MovieDraft}
	m.ApplyPatch(p)
	if err := m.ValidateRuntime(); err != nil {
		return 0, err
	}
	if err := m.ValidateDateRange(); err != nil {
		return 0, err
	}
	if err := s.store.Movies().Create(ctx, m); err != nil {
		return 0, persistErr(err, "movie")
	}
	return m.ID, nil
}

// mutate loads a live movie under lock, applies fn and saves it in one transaction.
func (s *MovieService) mutate(ctx context.Context, id uint, source string, fn func(tx repository.Store, m *model.Movie) error) (*model.Movie, error) {
	var (
		saved *model.Movie
		from  model.MovieStatus
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		m, err := loadLive(ctx, tx.Movies().FindByID, events.EntityMovie, id)
		if err != nil {
			return err
		}
		from = m.Status
		if err := fn(tx, m); err != nil {
			return err
		}
		if err := tx.Movies().Save(ctx, m); err != nil {
			return persistErr(err, "movie")
		}
		saved = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, source, transition{events.EntityMovie, id, string(from), string(saved.Status)})
	return saved, nil
}

func (s *MovieService) SaveDraft(ctx context.Context, id uint, p model.MoviePatch) error {
	_, err := s.mutate(ctx, id, SourceAdmin, func(_ repository.Store, m *model.Movie) error {
		if m.Status != model.MovieDraft {
			return apperror.Conflictf("movie %d: only a DRAFT movie can be saved as draft (status %s)", id, m.Status)
		}
		m.ApplyPatch(p)
		if err := m.ValidateRuntime(); err != nil {
			return err
		}
		return m.ValidateDateRange()
	})
	return err
}

// Complete applies the final fields, validates the whole movie and publishes it as COMING_SOON.
func (s *MovieService) Complete(ctx context.Context, id uint, p model.MoviePatch) error {
	_, err := s.mutate(ctx, id, SourceAdmin, func(tx repository.Store, m *model.Movie) error {
		if m.Status != model.MovieDraft {
			return apperror.Conflictf("movie %d: only a DRAFT movie can be completed (status %s)", id, m.Status)
		}
		m.ApplyPatch(p)
		if err := m.Complete(); err != nil {
			return err
		}
		if m.Slug == nil {
			slug, err := uniqueSlug(ctx, m.TitleOrEmpty(), tx.Movies().ExistsBySlug)
			if err != nil {
				return fmt.Errorf("generate slug: %w", err)
			}
			m.Slug = &slug
		}
		return nil
	})
	return err
}

func (s *MovieService) Update(ctx context.Context, id uint, p model.MoviePatch) error {
	_, err := s.mutate(ctx, id, SourceAdmin, func(_ repository.Store, m *model.Movie) error {
		m.ApplyPatch(p)
		if err := m.ValidateRuntime(); err != nil {
			return err
		}
		return m.ValidateDateRange()
	})
	return err
}

func (s *MovieService) Hide(ctx context.Context, id uint) error {
	_, err := s.mutate(ctx, id, SourceAdmin, func(_ repository.Store, m *model.Movie) error {
		return m.Hide()
	})
	return err
}

func (s *MovieService) Unhide(ctx context.Context, id uint) error {
	today := s.today()
	_, err := s.mutate(ctx, id, SourceAdmin, func(_ repository.Store, m *model.Movie) error {
		return m.Unhide(today)
	})
	return err
}

// SoftDelete is idempotent. Only an unknown id fails.
func (s *MovieService) SoftDelete(ctx context.Context, id uint) error {
	var from model.MovieStatus
	changed := false
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		m, err := load(ctx, tx.Movies().FindByID, events.EntityMovie, id)
		if err != nil {
			return err
		}
		from = m.Status
		if changed = m.SoftDelete(); !changed {
			return nil
		}
		return persistErr(tx.Movies().Save(ctx, m), "movie")
	})
	if err != nil {
		return err
	}
	if changed {
		s.publish(ctx, SourceAdmin, transition{events.EntityMovie, id, string(from), string(model.MovieDeleted)})
	}
	return nil
}

// StartShowing promotes a COMING_SOON movie whose release date has come. It re-checks
// both conditions under the row lock and reports false when the movie no longer qualifies.
func (s *MovieService) StartShowing(ctx context.Context, id uint, today utils.CustomDate) (bool, error) {
	changed := false
	_, err := s.mutate(ctx, id, SourceSweep, func(_ repository.Store, m *model.Movie) error {
		if m.Status != model.MovieComingSoon || m.ReleaseDate == nil || m.ReleaseDate.After(today) {
			return nil
		}
		changed = true
		return m.StartShowing()
	})
	return changed, err
}

// EndShowing ends a NOW_SHOWING movie whose end date has passed.
func (s *MovieService) EndShowing(ctx context.Context, id uint, today utils.CustomDate) (bool, error) {
	changed := false
	_, err := s.mutate(ctx, id, SourceSweep, func(_ repository.Store, m *model.Movie) error {
		if m.Status != model.MovieNowShowing || m.EndDate == nil || !m.EndDate.Before(today) {
			return nil
		}
		changed = true
		return m.EndShowing()
	})
	return changed, err
}

func (s *MovieService) GetDetail(ctx context.Context, id uint) (*model.Movie, error) {
	return loadLive(ctx, s.store.Movies().FindByID, events.EntityMovie, id)
}

// ListByStatuses accepts raw status names. An empty list means every non-deleted movie.
func (s *MovieService) ListByStatuses(ctx context.Context, statuses []string, page model.Pagination) (*model.ResponseCustom, error) {
	parsed, err := model.ParseMovieStatuses(statuses)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.store.Movies().FindByStatuses(ctx, parsed, page)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	summaries := make([]model.MovieSummary, 0, len(rows))
	if err := copier.Copy(&summaries, &rows); err != nil {
		return nil, fmt.Errorf("map movies: %w", err)
	}
	return &model.ResponseCustom{Rows: summaries, Limit: page.Limit, Page: page.Page, TotalCount: total}, nil
}

func (s *MovieService) Stats(ctx context.Context) (*model.MovieStats, error) {
	counts, err := s.store.Movies().CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}
	stats := &model.MovieStats{ByStatus: map[model.MovieStatus]int64{}, EndingSoonDays: s.EndingSoonDays}
	for _, status := range model.MovieStatuses {
		stats.ByStatus[status] = counts[status]
		if status != model.MovieDeleted {
			stats.Total += counts[status]
		}
	}
	today := s.today()
	stats.EndingSoon, err = s.store.Movies().CountNowShowingEndingBetween(ctx, today, today.AddDays(s.EndingSoonDays))
	if err != nil {
		return nil, fmt.Errorf("count movies ending soon: %w", err)
	}
	return stats, nil
}
