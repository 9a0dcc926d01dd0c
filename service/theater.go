package service

import (
	"context"
	"fmt"

	"cinema_booking/apperror"
	"cinema_booking/events"
	"cinema_booking/model"
	"cinema_booking/repository"
)

type TheaterService struct {
	base
}

func NewTheaterService(d Deps) *TheaterService {
	return &TheaterService{base: newBase(d)}
}

func (s *TheaterService) CreateDraft(ctx context.Context, p model.TheaterPatch) (uint, error) {
	t := &model.Theater{Status: model.TheaterDraft}
	t.ApplyPatch(p)
	if err := s.store.Theaters().Create(ctx, t); err != nil {
		return 0, persistErr(err, "theater")
	}
	return t.ID, nil
}

func (s *TheaterService) mutate(ctx context.Context, id uint, fn func(t *model.Theater) error) error {
	var from, to model.TheaterStatus
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		t, err := loadLive(ctx, tx.Theaters().FindByID, events.EntityTheater, id)
		if err != nil {
			return err
		}
		from = t.Status
		if err := fn(t); err != nil {
			return err
		}
		to = t.Status
		return persistErr(tx.Theaters().Save(ctx, t), "theater")
	})
	if err != nil {
		return err
	}
	s.publish(ctx, SourceAdmin, transition{events.EntityTheater, id, string(from), string(to)})
	return nil
}

func (s *TheaterService) SaveDraft(ctx context.Context, id uint, p model.TheaterPatch) error {
	return s.mutate(ctx, id, func(t *model.Theater) error {
		if t.Status != model.TheaterDraft {
			return apperror.Conflictf("theater %d: only a DRAFT theater can be saved as draft (status %s)", id, t.Status)
		}
		t.ApplyPatch(p)
		return nil
	})
}

func (s *TheaterService) Complete(ctx context.Context, id uint, in model.TheaterCompleteInput) error {
	return s.mutate(ctx, id, func(t *model.Theater) error {
		return t.Complete(in)
	})
}

func (s *TheaterService) Update(ctx context.Context, id uint, p model.TheaterPatch) error {
	return s.mutate(ctx, id, func(t *model.Theater) error {
		if t.Status == model.TheaterDraft {
			return apperror.Conflictf("theater %d: a DRAFT theater must be completed before update", id)
		}
		t.ApplyPatch(p)
		return t.ValidateLocation()
	})
}

func (s *TheaterService) Activate(ctx context.Context, id uint) error {
	return s.mutate(ctx, id, func(t *model.Theater) error { return t.ChangeStatus(model.TheaterActive) })
}

func (s *TheaterService) Hide(ctx context.Context, id uint) error {
	return s.mutate(ctx, id, func(t *model.Theater) error { return t.ChangeStatus(model.TheaterHidden) })
}

func (s *TheaterService) Close(ctx context.Context, id uint) error {
	return s.mutate(ctx, id, func(t *model.Theater) error { return t.ChangeStatus(model.TheaterClosed) })
}

func (s *TheaterService) Remove(ctx context.Context, id uint) error {
	var from model.TheaterStatus
	changed := false
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		t, err := load(ctx, tx.Theaters().FindByID, events.EntityTheater, id)
		if err != nil {
			return err
		}
		from = t.Status
		if changed = t.Remove(); !changed {
			return nil
		}
		return persistErr(tx.Theaters().Save(ctx, t), "theater")
	})
	if err != nil {
		return err
	}
	if changed {
		s.publish(ctx, SourceAdmin, transition{events.EntityTheater, id, string(from), string(model.TheaterDeleted)})
	}
	return nil
}

func (s *TheaterService) GetDetail(ctx context.Context, id uint) (*model.Theater, error) {
	return loadLive(ctx, s.store.Theaters().FindByID, events.EntityTheater, id)
}

func (s *TheaterService) ListByStatuses(ctx context.Context, statuses []string, page model.Pagination) (*model.ResponseCustom, error) {
	parsed, err := model.ParseTheaterStatuses(statuses)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.store.Theaters().FindByStatuses(ctx, parsed, page)
	if err != nil {
		return nil, fmt.Errorf("list theaters: %w", err)
	}
	return &model.ResponseCustom{Rows: rows, Limit: page.Limit, Page: page.Page, TotalCount: total}, nil
}

// Stats counts theaters, screens and seats per status.
func (s *TheaterService) Stats(ctx context.Context) (*model.TheaterStats, error) {
	theaters, err := s.store.Theaters().CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count theaters: %w", err)
	}
	screens, err := s.store.Screens().CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count screens: %w", err)
	}
	seats, err := s.store.Seats().CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count seats: %w", err)
	}
	return &model.TheaterStats{Theaters: theaters, Screens: screens, Seats: seats}, nil
}
