package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema_booking/apperror"
	"cinema_booking/constants"
	"cinema_booking/events"
	"cinema_booking/model"
	"cinema_booking/repository"
	"cinema_booking/utils"
)

type ScheduleService struct {
	base
}

func NewScheduleService(d Deps) *ScheduleService {
	return &ScheduleService{base: newBase(d)}
}

// resolveMovie returns nil for a nil reference and NotFound for a missing or deleted movie.
func resolveMovie(ctx context.Context, tx repository.Store, id *uint) (*model.Movie, error) {
	if id == nil {
		return nil, nil
	}
	return loadLive(ctx, tx.Movies().FindByID, events.EntityMovie, *id)
}

func resolveScreen(ctx context.Context, tx repository.Store, id *uint) (*model.Screen, error) {
	if id == nil {
		return nil, nil
	}
	return loadLive(ctx, tx.Screens().FindByID, events.EntityScreen, *id)
}

// CreateDraft accepts any subset of the fields. endAt is derived when movie and startAt are known.
func (s *ScheduleService) CreateDraft(ctx context.Context, in model.ScheduleInput) (uint, error) {
	var id uint
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		movie, err := resolveMovie(ctx, tx, in.MovieID)
		if err != nil {
			return err
		}
		if _, err := resolveScreen(ctx, tx, in.ScreenID); err != nil {
			return err
		}
		sc := &model.Schedule{Status: model.ScheduleDraft}
		sc.ApplyInput(in)
		sc.RecomputeEndAt(movie)
		if err := tx.Schedules().Create(ctx, sc); err != nil {
			return persistErr(err, "schedule")
		}
		id = sc.ID
		return nil
	})
	return id, err
}

func (s *ScheduleService) mutate(ctx context.Context, id uint, source string, fn func(tx repository.Store, sc *model.Schedule) error) error {
	var from, to model.ScheduleStatus
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		sc, err := loadLive(ctx, tx.Schedules().FindByID, events.EntitySchedule, id)
		if err != nil {
			return err
		}
		from = sc.Status
		if err := fn(tx, sc); err != nil {
			return err
		}
		to = sc.Status
		return persistErr(tx.Schedules().Save(ctx, sc), "schedule")
	})
	if err != nil {
		return err
	}
	s.publish(ctx, source, transition{events.EntitySchedule, id, string(from), string(to)})
	return nil
}

// applyAndDerive writes the input and recomputes endAt from the referenced movie.
func applyAndDerive(ctx context.Context, tx repository.Store, sc *model.Schedule, in model.ScheduleInput) (*model.Movie, error) {
	sc.ApplyInput(in)
	movie, err := resolveMovie(ctx, tx, sc.MovieID)
	if err != nil {
		return nil, err
	}
	if _, err := resolveScreen(ctx, tx, sc.ScreenID); err != nil {
		return nil, err
	}
	sc.RecomputeEndAt(movie)
	return movie, nil
}

func (s *ScheduleService) SaveDraft(ctx context.Context, id uint, in model.ScheduleInput) error {
	return s.mutate(ctx, id, SourceAdmin, func(tx repository.Store, sc *model.Schedule) error {
		if sc.Status != model.ScheduleDraft {
			return apperror.Conflictf("schedule %d: only a DRAFT schedule can be saved as draft (status %s)", id, sc.Status)
		}
		_, err := applyAndDerive(ctx, tx, sc, in)
		return err
	})
}

func (s *ScheduleService) Complete(ctx context.Context, id uint, in model.ScheduleInput) error {
	return s.mutate(ctx, id, SourceAdmin, func(tx repository.Store, sc *model.Schedule) error {
		if sc.Status != model.ScheduleDraft {
			return apperror.Conflictf("schedule %d: only a DRAFT schedule can be completed (status %s)", id, sc.Status)
		}
		if _, err := applyAndDerive(ctx, tx, sc, in); err != nil {
			return err
		}
		return sc.Complete()
	})
}

func (s *ScheduleService) Update(ctx context.Context, id uint, in model.ScheduleInput) error {
	return s.mutate(ctx, id, SourceAdmin, func(tx repository.Store, sc *model.Schedule) error {
		if sc.Status != model.ScheduleOpen {
			return apperror.Conflictf("schedule %d: only an OPEN schedule can be updated (status %s)", id, sc.Status)
		}
		movie, err := applyAndDerive(ctx, tx, sc, in)
		if err != nil {
			return err
		}
		if movie == nil {
			return apperror.BadRequest("movie is required")
		}
		return nil
	})
}

func (s *ScheduleService) Cancel(ctx context.Context, id uint) error {
	return s.mutate(ctx, id, SourceAdmin, func(_ repository.Store, sc *model.Schedule) error {
		sc.Cancel()
		return nil
	})
}

func (s *ScheduleService) Close(ctx context.Context, id uint) error {
	return s.mutate(ctx, id, SourceAdmin, func(_ repository.Store, sc *model.Schedule) error {
		sc.Close()
		return nil
	})
}

func (s *ScheduleService) SoftDelete(ctx context.Context, id uint) error {
	var from model.ScheduleStatus
	changed := false
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		sc, err := load(ctx, tx.Schedules().FindByID, events.EntitySchedule, id)
		if err != nil {
			return err
		}
		from = sc.Status
		if changed = sc.SoftDelete(); !changed {
			return nil
		}
		return persistErr(tx.Schedules().Save(ctx, sc), "schedule")
	})
	if err != nil {
		return err
	}
	if changed {
		s.publish(ctx, SourceAdmin, transition{events.EntitySchedule, id, string(from), string(model.ScheduleDeleted)})
	}
	return nil
}

func (s *ScheduleService) GetDetail(ctx context.Context, id uint) (*model.ScheduleDetail, error) {
	sc, err := loadLive(ctx, s.store.Schedules().FindByID, events.EntitySchedule, id)
	if err != nil {
		return nil, err
	}
	detail := &model.ScheduleDetail{
		ID:            sc.ID,
		MovieID:       sc.MovieID,
		ScreenID:      sc.ScreenID,
		ScheduledDate: sc.ScheduledDate,
		StartAt:       sc.StartAt,
		EndAt:         sc.EndAt,
		Status:        sc.Status,
	}
	if sc.MovieID != nil {
		movie, err := s.store.Movies().FindByID(ctx, *sc.MovieID)
		switch {
		case err == nil:
			detail.MovieTitle = movie.Title
			detail.RuntimeMin = movie.RuntimeMin
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("load schedule movie: %w", err)
		}
	}
	return detail, nil
}

func (s *ScheduleService) ListByStatuses(ctx context.Context, statuses []string, page model.Pagination) (*model.ResponseCustom, error) {
	parsed, err := model.ParseScheduleStatuses(statuses)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.store.Schedules().FindByStatuses(ctx, parsed, page)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return &model.ResponseCustom{Rows: rows, Limit: page.Limit, Page: page.Page, TotalCount: total}, nil
}

// CloseFinished closes OPEN schedules whose showing has ended by now.
// Each schedule is handled in its own transaction so one failure does not stop the batch.
func (s *ScheduleService) CloseFinished(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult
	start := time.Now()
	candidates, err := s.store.Schedules().FindOpenOnOrBefore(ctx, utils.DateOf(now))
	if err != nil {
		return result, fmt.Errorf("find open schedules: %w", err)
	}
	result.Matched = len(candidates)

	for _, c := range candidates {
		changed, err := s.closeIfFinished(ctx, c.ID, now)
		result.record(changed, err)
		if err != nil && !apperror.IsNotFound(err) {
			s.log.Error(constants.LOG_SCHEDULE, fmt.Sprintf("close schedule %d: %v", c.ID, err))
		}
	}
	if result.Changed > 0 || result.Failed > 0 {
		s.log.LogJob("close-finished-schedules", fmt.Sprintf("%s in %s", result, since(start)))
	}
	return result, nil
}

func (s *ScheduleService) closeIfFinished(ctx context.Context, id uint, now time.Time) (bool, error) {
	changed := false
	err := s.mutate(ctx, id, SourceSweep, func(tx repository.Store, sc *model.Schedule) error {
		if sc.Status != model.ScheduleOpen || sc.MovieID == nil {
			return nil
		}
		movie, err := load(ctx, tx.Movies().FindByID, events.EntityMovie, *sc.MovieID)
		if err != nil {
			return err
		}
		finishesAt, ok := sc.FinishesAt(movie, now.Location())
		if !ok || finishesAt.After(now) {
			return nil
		}
		sc.Close()
		changed = true
		return nil
	})
	return changed, err
}
