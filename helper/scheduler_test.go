package helper

import (
	"context"
	"testing"
	"time"

	"cinema_booking/logger"
	"cinema_booking/model"
	"cinema_booking/repository"
	"cinema_booking/service"
	"cinema_booking/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *repository.GormStore {
	t.Helper()
	db, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repository.NewGormStore(db)
}

func TestMovieStatusSchedulerRegistersDailyJobs(t *testing.T) {
	store := newTestStore(t)
	clock := &utils.FixedClock{At: time.Date(2025, 3, 10, 0, 10, 0, 0, time.UTC)}
	movies := service.NewMovieService(service.Deps{Store: store, Clock: clock})
	sweep := service.NewMovieSweep(store, movies, logger.Discard())

	s, err := StartMovieStatusScheduler(sweep, clock, logger.Discard(), MovieSchedulerOptions{
		Location:  utils.LoadLocation("Asia/Seoul"),
		PromoteAt: utils.NewClockTime(0, 10, 0),
		EndAt:     utils.NewClockTime(0, 20, 0),
	})
	require.NoError(t, err)
	defer func() { _ = s.Shutdown() }()

	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	names := []string{jobs[0].Name(), jobs[1].Name()}
	assert.ElementsMatch(t, []string{"promote-released", "end-showings"}, names)
	for _, j := range jobs {
		next, err := j.NextRun()
		require.NoError(t, err)
		assert.False(t, next.IsZero())
	}
}

func TestRunSweepUsesClockDay(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	clock := &utils.FixedClock{At: time.Date(2025, 3, 10, 0, 10, 0, 0, time.UTC)}
	movies := service.NewMovieService(service.Deps{Store: store, Clock: clock})
	sweep := service.NewMovieSweep(store, movies, logger.Discard())

	release := utils.NewDate(2025, 3, 10)
	m := &model.Movie{Title: utils.Ptr("Minari"), ReleaseDate: &release, Status: model.MovieComingSoon}
	require.NoError(t, store.Movies().Create(ctx, m))

	runSweep("promote-released", sweep.PromoteReleased, clock, logger.Discard())()

	got, err := store.Movies().FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MovieNowShowing, got.Status)
}

func TestScheduleCloserRejectsBadSpec(t *testing.T) {
	schedules := service.NewScheduleService(service.Deps{Store: newTestStore(t)})
	_, err := StartScheduleCloser(schedules, utils.SystemClock{}, logger.Discard(), "every five minutes")
	assert.Error(t, err)

	c, err := StartScheduleCloser(schedules, utils.SystemClock{}, logger.Discard(), "*/5 * * * *")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	StopScheduleCloser(c)
}
