package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema_booking/apperror"
	"cinema_booking/constants"
	"cinema_booking/events"
	"cinema_booking/logger"
	"cinema_booking/repository"
	"cinema_booking/utils"
)

const (
	SourceAdmin = "admin"
	SourceSweep = "sweep"
)

type Deps struct {
	Store  repository.Store
	Clock  utils.Clock
	Log    *logger.Logger
	Events events.Publisher
}

type base struct {
	store  repository.Store
	clock  utils.Clock
	log    *logger.Logger
	events events.Publisher
}

func newBase(d Deps) base {
	b := base{store: d.Store, clock: d.Clock, log: d.Log, events: d.Events}
	if b.clock == nil {
		b.clock = utils.SystemClock{}
	}
	if b.log == nil {
		b.log = logger.Discard()
	}
	if b.events == nil {
		b.events = events.NewLogPublisher(b.log)
	}
	return b
}

func (b *base) today() utils.CustomDate {
	return utils.Today(b.clock)
}

// transition is a committed status change waiting to be published.
type transition struct {
	entity string
	id     uint
	from   string
	to     string
}

func (b *base) publish(ctx context.Context, source string, changes ...transition) {
	for _, c := range changes {
		if c.from == c.to {
			continue
		}
		b.log.LogTransition(c.entity, c.id, c.from, c.to)
		err := b.events.Publish(ctx, events.StatusChanged{
			Entity:   c.entity,
			EntityID: c.id,
			From:     c.from,
			To:       c.to,
			Source:   source,
			At:       b.clock.Now(),
		})
		if err != nil {
			b.log.Error(constants.LOG_EVENT, fmt.Sprintf("publish %s %d: %v", c.entity, c.id, err))
		}
	}
}

type softDeletable interface {
	IsDeleted() bool
}

// loadLive treats a DELETED row as missing.
func loadLive[T softDeletable](ctx context.Context, find func(context.Context, uint) (T, error), resource string, id uint) (T, error) {
	v, err := load(ctx, find, resource, id)
	if err != nil {
		return v, err
	}
	if v.IsDeleted() {
		var zero T
		return zero, apperror.NotFound(resource, id)
	}
	return v, nil
}

func load[T any](ctx context.Context, find func(context.Context, uint) (T, error), resource string, id uint) (T, error) {
	v, err := find(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, repository.ErrNotFound) {
			return zero, apperror.NotFound(resource, id)
		}
		return zero, fmt.Errorf("load %s %d: %w", resource, id, err)
	}
	return v, nil
}

// persistErr turns a unique-constraint violation into a Conflict.
func persistErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return apperror.Conflictf("%s already exists", what).Wrap(err)
	}
	return fmt.Errorf("save %s: %w", what, err)
}

// SweepResult summarizes one batch run. Skipped rows left the source state before
// their turn came, which is expected when an admin acts concurrently.
type SweepResult struct {
	Matched int `json:"matched"`
	Changed int `json:"changed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

func (r SweepResult) String() string {
	return fmt.Sprintf("matched=%d changed=%d skipped=%d failed=%d", r.Matched, r.Changed, r.Skipped, r.Failed)
}

func (r *SweepResult) record(changed bool, err error) {
	switch {
	case err != nil && (apperror.IsConflict(err) || apperror.IsNotFound(err)):
		r.Skipped++
	case err != nil:
		r.Failed++
	case changed:
		r.Changed++
	default:
		r.Skipped++
	}
}

func since(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
