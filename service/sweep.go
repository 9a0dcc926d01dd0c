package service

import (
	"context"
	"fmt"
	"time"

	"cinema_booking/apperror"
	"cinema_booking/constants"
	"cinema_booking/logger"
	"cinema_booking/model"
	"cinema_booking/repository"
	"cinema_booking/utils"
)

// MovieSweep runs the daily date-driven movie transitions. Each movie is moved in its own
// transaction through MovieService, which re-checks eligibility under the row lock.
type MovieSweep struct {
	store  repository.Store
	movies *MovieService
	log    *logger.Logger
}

func NewMovieSweep(store repository.Store, movies *MovieService, log *logger.Logger) *MovieSweep {
	if log == nil {
		log = logger.Discard()
	}
	return &MovieSweep{store: store, movies: movies, log: log}
}

// PromoteReleased moves COMING_SOON movies released on or before today to NOW_SHOWING.
func (w *MovieSweep) PromoteReleased(ctx context.Context, today utils.CustomDate) (SweepResult, error) {
	candidates, err := w.store.Movies().FindComingSoonReleasedBy(ctx, today)
	if err != nil {
		return SweepResult{}, fmt.Errorf("find released movies: %w", err)
	}
	return w.run(ctx, "promote-released", today, candidates, w.movies.StartShowing), nil
}

// EndShowings moves NOW_SHOWING movies whose end date is before today to ENDED.
func (w *MovieSweep) EndShowings(ctx context.Context, today utils.CustomDate) (SweepResult, error) {
	candidates, err := w.store.Movies().FindNowShowingEndedBefore(ctx, today)
	if err != nil {
		return SweepResult{}, fmt.Errorf("find finished movies: %w", err)
	}
	return w.run(ctx, "end-showings", today, candidates, w.movies.EndShowing), nil
}

func (w *MovieSweep) run(ctx context.Context, job string, today utils.CustomDate, candidates []model.Movie,
	step func(context.Context, uint, utils.CustomDate) (bool, error)) SweepResult {
	start := time.Now()
	result := SweepResult{Matched: len(candidates)}
	for _, m := range candidates {
		if ctx.Err() != nil {
			result.Failed += result.Matched - result.Changed - result.Skipped - result.Failed
			w.log.Warn(constants.LOG_SWEEP, fmt.Sprintf("%s: stopped early: %v", job, ctx.Err()))
			break
		}
		changed, err := step(ctx, m.ID, today)
		result.record(changed, err)
		switch {
		case err == nil:
		case apperror.IsConflict(err) || apperror.IsNotFound(err):
			w.log.Debug(constants.LOG_SWEEP, fmt.Sprintf("%s: movie %d skipped: %v", job, m.ID, err))
		default:
			w.log.Error(constants.LOG_SWEEP, fmt.Sprintf("%s: movie %d: %v", job, m.ID, err))
		}
	}
	w.log.LogJob(job, fmt.Sprintf("today=%s %s in %s", today, result, since(start)))
	return result
}
