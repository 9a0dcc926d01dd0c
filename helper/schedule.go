package helper

import (
	"context"
	"fmt"
	"time"

	"cinema_booking/constants"
	"cinema_booking/logger"
	"cinema_booking/service"
	"cinema_booking/utils"

	"github.com/robfig/cron/v3"
)

// StartScheduleCloser closes finished OPEN schedules on the given cron spec.
func StartScheduleCloser(schedules *service.ScheduleService, clock utils.Clock, log *logger.Logger, spec string) (*cron.Cron, error) {
	scheduler := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := scheduler.AddFunc(spec, func() {
		closeFinishedSchedules(schedules, clock, log)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule closer %q: %w", spec, err)
	}

	scheduler.Start()
	log.Info(constants.LOG_SCHEDULE, fmt.Sprintf("schedule closer started (%s)", spec))
	return scheduler, nil
}

func closeFinishedSchedules(schedules *service.ScheduleService, clock utils.Clock, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := schedules.CloseFinished(ctx, clock.Now()); err != nil {
		log.Error(constants.LOG_SCHEDULE, fmt.Sprintf("close finished schedules: %v", err))
	}
}

// StopScheduleCloser waits for a running pass to finish.
func StopScheduleCloser(scheduler *cron.Cron) {
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
}
