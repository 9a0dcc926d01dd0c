package service

import (
	"context"
	"fmt"

	"cinema_booking/apperror"
	"cinema_booking/events"
	"cinema_booking/model"
	"cinema_booking/repository"
)

type ScreenService struct {
	base
}

func NewScreenService(d Deps) *ScreenService {
	return &ScreenService{base: newBase(d)}
}

func resolveTheater(ctx context.Context, tx repository.Store, id *uint) error {
	if id == nil {
		return nil
	}
	_, err := loadLive(ctx, tx.Theaters().FindByID, events.EntityTheater, *id)
	return err
}

// syncCapacity overrides a supplied capacity once the screen has seats.
func syncCapacity(ctx context.Context, tx repository.Store, sc *model.Screen) error {
	n, err := tx.Seats().CountByScreen(ctx, sc.ID)
	if err != nil {
		return fmt.Errorf("count seats of screen %d: %w", sc.ID, err)
	}
	if n == 0 {
		return nil
	}
	return sc.ChangeCapacity(int(n))
}

func (s *ScreenService) CreateDraft(ctx context.Context, p model.ScreenPatch) (uint, error) {
	var id uint
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := resolveTheater(ctx, tx, p.TheaterID); err != nil {
			return err
		}
		sc := &model.Screen{Status: model.ScreenDraft}
		if err := sc.ApplyPatch(p); err != nil {
			return err
		}
		if err := tx.Screens().Create(ctx, sc); err != nil {
			return persistErr(err, "screen")
		}
		id = sc.ID
		return nil
	})
	return id, err
}

func (s *ScreenService) mutate(ctx context.Context, id uint, fn func(tx repository.Store, sc *model.Screen) error) error {
	var from, to model.ScreenStatus
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		sc, err := loadLive(ctx, tx.Screens().FindByID, events.EntityScreen, id)
		if err != nil {
			return err
		}
		from = sc.Status
		if err := fn(tx, sc); err != nil {
			return err
		}
		to = sc.Status
		return persistErr(tx.Screens().Save(ctx, sc), "screen")
	})
	if err != nil {
		return err
	}
	s.publish(ctx, SourceAdmin, transition{events.EntityScreen, id, string(from), string(to)})
	return nil
}

func (s *ScreenService) SaveDraft(ctx context.Context, id uint, p model.ScreenPatch) error {
	return s.mutate(ctx, id, func(tx repository.Store, sc *model.Screen) error {
		if sc.Status != model.ScreenDraft {
			return apperror.Conflictf("screen %d: only a DRAFT screen can be saved as draft (status %s)", id, sc.Status)
		}
		if err := resolveTheater(ctx, tx, p.TheaterID); err != nil {
			return err
		}
		if err := sc.ApplyPatch(p); err != nil {
			return err
		}
		return syncCapacity(ctx, tx, sc)
	})
}

func (s *ScreenService) Update(ctx context.Context, id uint, p model.ScreenPatch) error {
	return s.mutate(ctx, id, func(tx repository.Store, sc *model.Screen) error {
		if sc.Status == model.ScreenDraft {
			return apperror.Conflictf("screen %d: a DRAFT screen must be completed before update", id)
		}
		if err := resolveTheater(ctx, tx, p.TheaterID); err != nil {
			return err
		}
		if err := sc.ApplyPatch(p); err != nil {
			return err
		}
		return syncCapacity(ctx, tx, sc)
	})
}

func (s *ScreenService) Complete(ctx context.Context, id uint, in model.ScreenCompleteInput) error {
	return s.mutate(ctx, id, func(tx repository.Store, sc *model.Screen) error {
		if sc.Status != model.ScreenDraft {
			return apperror.Conflictf("screen %d: only a DRAFT screen can be completed (status %s)", id, sc.Status)
		}
		if in.TheaterID == nil {
			return apperror.BadRequest("theater is required")
		}
		if err := resolveTheater(ctx, tx, in.TheaterID); err != nil {
			return err
		}
		if err := sc.Complete(in); err != nil {
			return err
		}
		return syncCapacity(ctx, tx, sc)
	})
}

// ChangeStatus follows the screen state graph. DELETED is reachable only through Remove.
func (s *ScreenService) ChangeStatus(ctx context.Context, id uint, next model.ScreenStatus) error {
	return s.mutate(ctx, id, func(_ repository.Store, sc *model.Screen) error {
		return sc.ChangeStatus(next)
	})
}

// moveCompleted backs the activate, hide and close verbs. A DRAFT screen goes through Complete instead.
func (s *ScreenService) moveCompleted(ctx context.Context, id uint, next model.ScreenStatus) error {
	return s.mutate(ctx, id, func(_ repository.Store, sc *model.Screen) error {
		if sc.Status == model.ScreenDraft {
			return apperror.Conflictf("screen %d: complete the draft before changing its status", id)
		}
		return sc.ChangeStatus(next)
	})
}

func (s *ScreenService) Activate(ctx context.Context, id uint) error {
	return s.moveCompleted(ctx, id, model.ScreenActive)
}

func (s *ScreenService) Hide(ctx context.Context, id uint) error {
	return s.moveCompleted(ctx, id, model.ScreenHidden)
}

func (s *ScreenService) Close(ctx context.Context, id uint) error {
	return s.moveCompleted(ctx, id, model.ScreenClosed)
}

func (s *ScreenService) Remove(ctx context.Context, id uint) error {
	var from model.ScreenStatus
	changed := false
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		sc, err := load(ctx, tx.Screens().FindByID, events.EntityScreen, id)
		if err != nil {
			return err
		}
		from = sc.Status
		if changed = sc.MarkDeleted(); !changed {
			return nil
		}
		return persistErr(tx.Screens().Save(ctx, sc), "screen")
	})
	if err != nil {
		return err
	}
	if changed {
		s.publish(ctx, SourceAdmin, transition{events.EntityScreen, id, string(from), string(model.ScreenDeleted)})
	}
	return nil
}

func (s *ScreenService) GetDetail(ctx context.Context, id uint) (*model.Screen, error) {
	return loadLive(ctx, s.store.Screens().FindByID, events.EntityScreen, id)
}

func (s *ScreenService) ListByStatuses(ctx context.Context, statuses []string, page model.Pagination) (*model.ResponseCustom, error) {
	parsed, err := model.ParseScreenStatuses(statuses)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.store.Screens().FindByStatuses(ctx, parsed, page)
	if err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}
	return &model.ResponseCustom{Rows: rows, Limit: page.Limit, Page: page.Page, TotalCount: total}, nil
}
