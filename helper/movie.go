package helper

import (
	"context"
	"fmt"
	"time"

	"cinema_booking/constants"
	"cinema_booking/logger"
	"cinema_booking/service"
	"cinema_booking/utils"

	"github.com/go-co-op/gocron/v2"
)

type MovieSchedulerOptions struct {
	Location  *time.Location
	PromoteAt utils.ClockTime
	EndAt     utils.ClockTime
	// Locker is optional. With several instances it keeps a daily job from running twice.
	Locker gocron.Locker
}

// sweepStep is one of the MovieSweep passes.
type sweepStep func(ctx context.Context, today utils.CustomDate) (service.SweepResult, error)

func runSweep(name string, step sweepStep, clock utils.Clock, log *logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		today := utils.Today(clock)
		if _, err := step(ctx, today); err != nil {
			log.Error(constants.LOG_SWEEP, fmt.Sprintf("%s failed for %s: %v", name, today, err))
		}
	}
}

// StartMovieStatusScheduler registers the two daily movie sweeps and starts the scheduler.
// The caller shuts it down.
func StartMovieStatusScheduler(sweep *service.MovieSweep, clock utils.Clock, log *logger.Logger, opts MovieSchedulerOptions) (gocron.Scheduler, error) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	schedOpts := []gocron.SchedulerOption{gocron.WithLocation(opts.Location)}
	if opts.Locker != nil {
		schedOpts = append(schedOpts, gocron.WithDistributedLocker(opts.Locker))
	}
	s, err := gocron.NewScheduler(schedOpts...)
	if err != nil {
		return nil, err
	}

	jobs := []struct {
		name string
		at   utils.ClockTime
		step sweepStep
	}{
		{"promote-released", opts.PromoteAt, sweep.PromoteReleased},
		{"end-showings", opts.EndAt, sweep.EndShowings},
	}
	for _, j := range jobs {
		_, err = s.NewJob(
			gocron.DailyJob(
				1,
				gocron.NewAtTimes(
					gocron.NewAtTime(uint(j.at.Hour()), uint(j.at.Minute()), uint(j.at.Second())),
				),
			),
			gocron.NewTask(runSweep(j.name, j.step, clock, log)),
			gocron.WithName(j.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = s.Shutdown()
			return nil, fmt.Errorf("register %s: %w", j.name, err)
		}
	}

	s.Start()
	log.Info(constants.LOG_SWEEP, fmt.Sprintf("movie status scheduler started (%s, %s %s)", opts.PromoteAt, opts.EndAt, opts.Location))
	return s, nil
}
