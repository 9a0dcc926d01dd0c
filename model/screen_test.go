package model

import (
	"fmt"
	"testing"
	"time"

	"cinema_booking/apperror"
	"cinema_booking/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenChangeStatusNeverDeletes(t *testing.T) {
	for _, s := range []ScreenStatus{ScreenDraft, ScreenActive, ScreenHidden, ScreenClosed, ScreenDeleted} {
		sc := &Screen{Status: s}
		assert.True(t, apperror.IsConflict(sc.ChangeStatus(ScreenDeleted)), "from %s", s)
	}
}

func TestScreenChangeStatus(t *testing.T) {
	sc := &Screen{Status: ScreenActive}
	assert.True(t, apperror.IsBadRequest(sc.ChangeStatus("")))

	require.NoError(t, sc.ChangeStatus(ScreenHidden))
	require.NoError(t, sc.ChangeStatus(ScreenClosed))
	require.NoError(t, sc.ChangeStatus(ScreenActive))

	draft := &Screen{Status: ScreenDraft}
	assert.True(t, apperror.IsConflict(draft.ChangeStatus(ScreenHidden)))
	require.NoError(t, draft.ChangeStatus(ScreenActive))

	deleted := &Screen{Status: ScreenDeleted}
	assert.True(t, apperror.IsConflict(deleted.ChangeStatus(ScreenActive)))
}

func TestScreenFieldGuards(t *testing.T) {
	sc := &Screen{Status: ScreenActive}
	assert.True(t, apperror.IsBadRequest(sc.ChangeName("  ")))
	assert.True(t, apperror.IsBadRequest(sc.ChangeCapacity(-1)))
	assert.True(t, apperror.IsBadRequest(sc.ChangeTheater(nil)))
	require.NoError(t, sc.ChangeName(" IMAX "))
	assert.Equal(t, "IMAX", *sc.Name)

	sc.MarkDeleted()
	assert.True(t, apperror.IsConflict(sc.ChangeName("x")))
	assert.True(t, apperror.IsConflict(sc.ChangeCapacity(1)))
	assert.True(t, apperror.IsConflict(sc.ChangeTheater(utils.Ptr(uint(1)))))
}

func TestScreenComplete(t *testing.T) {
	sc := &Screen{Status: ScreenDraft}
	require.NoError(t, sc.Complete(ScreenCompleteInput{TheaterID: utils.Ptr(uint(3)), Name: "Hall 1", Capacity: utils.Ptr(0)}))
	assert.Equal(t, ScreenActive, sc.Status)
	assert.Equal(t, uint(3), *sc.TheaterID)

	assert.True(t, apperror.IsConflict(sc.Complete(ScreenCompleteInput{TheaterID: utils.Ptr(uint(3)), Name: "Hall 1", Capacity: utils.Ptr(0)})))
}

func TestTheaterCompleteLatLngPair(t *testing.T) {
	open, closeAt := utils.NewClockTime(9, 0, 0), utils.NewClockTime(23, 0, 0)
	th := &Theater{Status: TheaterDraft}

	err := th.Complete(TheaterCompleteInput{Name: "CGV", Address: "Seoul", OpenTime: &open, CloseTime: &closeAt, Lat: utils.Ptr(37.5)})
	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, TheaterDraft, th.Status)

	err = th.Complete(TheaterCompleteInput{Name: "CGV", Address: "Seoul", OpenTime: &open, CloseTime: &closeAt})
	require.NoError(t, err)
	assert.Equal(t, TheaterActive, th.Status)
	assert.Nil(t, th.Lat)
}

func TestScheduleEndAtWrapsMidnight(t *testing.T) {
	start := utils.NewClockTime(23, 0, 0)
	s := &Schedule{StartAt: &start}

	s.RecomputeEndAt(&Movie{RuntimeMin: utils.Ptr(90)})
	require.NotNil(t, s.EndAt)
	assert.Equal(t, utils.NewClockTime(0, 30, 0), *s.EndAt)

	s.RecomputeEndAt(&Movie{})
	assert.Nil(t, s.EndAt)
	s.RecomputeEndAt(nil)
	assert.Nil(t, s.EndAt)
}

func TestPaymentRefundOnlyWhenPaid(t *testing.T) {
	p := &Payment{}
	p.PrepareCreate()
	assert.Equal(t, PaymentReady, p.Status)
	assert.Contains(t, p.PublicPaymentID, "PAYMENT")
	assert.False(t, p.Refund())

	p.Status = PaymentPaid
	assert.True(t, p.Refund())
	assert.Equal(t, PaymentRefunded, p.Status)
}

func TestBookingNumbersInOneMillisecondDiffer(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		b := &Booking{}
		b.PrepareCreate(now)
		assert.Regexp(t, fmt.Sprintf(`^MVI-%d-[0-9a-f]{8}$`, now.UnixMilli()), b.BookingNo)
		seen[b.BookingNo] = true
	}
	assert.Len(t, seen, 100)
}
