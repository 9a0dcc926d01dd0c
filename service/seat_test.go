package service

import (
	"context"
	"testing"

	"cinema_booking/apperror"
	"cinema_booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutLabels(l *model.SeatLayout) []string {
	out := make([]string, 0, len(l.Seats))
	for _, s := range l.Seats {
		out = append(out, s.SeatRow+string(rune('0'+s.SeatCol)))
	}
	return out
}

func TestGenerateTwoByThreeLayout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc := f.seedScreen(t, 2, 3, model.ScreenActive)

	n, err := f.seats.Generate(ctx, sc.ID, "active")
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	layout, err := f.seats.GetLayout(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, layout.Capacity)
	assert.Equal(t, []string{"A1", "A2", "A3", "B1", "B2", "B3"}, layoutLabels(layout))
	for _, s := range layout.Seats {
		assert.Equal(t, model.SeatActive, s.Status)
	}

	_, err = f.seats.Generate(ctx, sc.ID, "ACTIVE")
	assert.True(t, apperror.IsConflict(err), "second generate must conflict: %v", err)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	flat := f.seedScreen(t, 0, 3, model.ScreenActive)
	gone := f.seedScreen(t, 2, 2, model.ScreenDeleted)

	_, err := f.seats.Generate(ctx, flat.ID, "ACTIVE")
	assert.True(t, apperror.IsBadRequest(err))
	_, err = f.seats.Generate(ctx, flat.ID, "")
	assert.True(t, apperror.IsBadRequest(err))
	_, err = f.seats.Generate(ctx, flat.ID, "RESERVED")
	assert.True(t, apperror.IsBadRequest(err))
	_, err = f.seats.Generate(ctx, 404, "ACTIVE")
	assert.True(t, apperror.IsNotFound(err))
	_, err = f.seats.Generate(ctx, gone.ID, "ACTIVE")
	assert.True(t, apperror.IsConflict(err))
	_, err = f.seats.GetLayout(ctx, gone.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGenerateWideGridUsesDoubleLetterRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc := f.seedScreen(t, 28, 1, model.ScreenActive)

	_, err := f.seats.Generate(ctx, sc.ID, "ACTIVE")
	require.NoError(t, err)
	seats, err := f.store.Seats().FindByScreen(ctx, sc.ID)
	require.NoError(t, err)
	rows := map[string]bool{}
	for _, s := range seats {
		rows[s.SeatRow] = true
	}
	assert.True(t, rows["Z"])
	assert.True(t, rows["AA"])
	assert.True(t, rows["AB"])
	assert.Len(t, rows, 28)
}

func TestRegenerate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc := f.seedScreen(t, 2, 3, model.ScreenActive)
	_, err := f.seats.Generate(ctx, sc.ID, "ACTIVE")
	require.NoError(t, err)

	sc.SeatRowCount, sc.SeatColCount = 3, 4
	require.NoError(t, f.store.Screens().Save(ctx, sc))
	n, err := f.seats.GenerateLayout(ctx, sc.ID, model.GenerateSeatsInput{Status: "BLOCKED", Regenerate: true})
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	layout, err := f.seats.GetLayout(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, layout.Capacity)
	assert.Len(t, layout.Seats, 12)
	assert.Equal(t, model.SeatBlocked, layout.Seats[0].Status)
}

func TestRegenerateBlockedByBookingHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc := f.seedScreen(t, 2, 3, model.ScreenActive)
	_, err := f.seats.Generate(ctx, sc.ID, "ACTIVE")
	require.NoError(t, err)
	f.seedBookingOn(t, sc.ID)

	_, err = f.seats.Regenerate(ctx, sc.ID, "ACTIVE")
	assert.True(t, apperror.IsConflict(err))

	layout, err := f.seats.GetLayout(ctx, sc.ID)
	require.NoError(t, err)
	assert.Len(t, layout.Seats, 6)
	assert.Equal(t, 6, layout.Capacity)
}

func TestUpdateSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc := f.seedScreen(t, 2, 3, model.ScreenActive)
	_, err := f.seats.Generate(ctx, sc.ID, "ACTIVE")
	require.NoError(t, err)
	seats, err := f.store.Seats().FindByScreen(ctx, sc.ID)
	require.NoError(t, err)
	a1 := seats[0]

	moved, err := f.seats.UpdateSeat(ctx, a1.ID, model.UpdateSeatInput{Status: "broken", SeatRow: " c ", SeatCol: 1})
	require.NoError(t, err)
	assert.Equal(t, "C", moved.SeatRow)
	assert.Equal(t, model.SeatBroken, moved.Status)

	_, err = f.seats.UpdateSeat(ctx, a1.ID, model.UpdateSeatInput{Status: "ACTIVE", SeatRow: "B", SeatCol: 2})
	assert.True(t, apperror.IsConflict(err), "B2 is taken: %v", err)

	_, err = f.seats.UpdateSeat(ctx, a1.ID, model.UpdateSeatInput{Status: "ACTIVE", SeatRow: "1A", SeatCol: 1})
	assert.True(t, apperror.IsBadRequest(err))
	_, err = f.seats.UpdateSeat(ctx, a1.ID, model.UpdateSeatInput{Status: "ACTIVE", SeatRow: "A", SeatCol: 0})
	assert.True(t, apperror.IsBadRequest(err))
	_, err = f.seats.UpdateSeat(ctx, a1.ID, model.UpdateSeatInput{SeatRow: "A", SeatCol: 1})
	assert.True(t, apperror.IsBadRequest(err))
	_, err = f.seats.UpdateSeat(ctx, 999, model.UpdateSeatInput{Status: "ACTIVE", SeatRow: "A", SeatCol: 1})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateBookedSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc := f.seedScreen(t, 1, 2, model.ScreenActive)
	_, err := f.seats.Generate(ctx, sc.ID, "ACTIVE")
	require.NoError(t, err)
	_, seat := f.seedBookingOn(t, sc.ID)

	_, err = f.seats.UpdateSeat(ctx, seat.ID, model.UpdateSeatInput{Status: "ACTIVE", SeatRow: "B", SeatCol: 1})
	assert.True(t, apperror.IsConflict(err))

	// same position in a different case is not a move
	got, err := f.seats.UpdateSeat(ctx, seat.ID, model.UpdateSeatInput{Status: "INACTIVE", SeatRow: "a", SeatCol: 1})
	require.NoError(t, err)
	assert.Equal(t, model.SeatInactive, got.Status)
	assert.Equal(t, "A", got.SeatRow)
}

func TestDeleteSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc := f.seedScreen(t, 2, 3, model.ScreenActive)
	_, err := f.seats.Generate(ctx, sc.ID, "ACTIVE")
	require.NoError(t, err)
	_, booked := f.seedBookingOn(t, sc.ID)

	assert.True(t, apperror.IsConflict(f.seats.DeleteSeat(ctx, booked.ID)))

	layout, err := f.seats.GetLayout(ctx, sc.ID)
	require.NoError(t, err)
	last := layout.Seats[len(layout.Seats)-1]
	require.NoError(t, f.seats.DeleteSeat(ctx, last.SeatID))

	layout, err = f.seats.GetLayout(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, layout.Capacity)
	assert.Len(t, layout.Seats, 5)
	assert.True(t, apperror.IsNotFound(f.seats.DeleteSeat(ctx, last.SeatID)))
}

func TestSeatMutationOnDeletedScreen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc := f.seedScreen(t, 1, 2, model.ScreenActive)
	_, err := f.seats.Generate(ctx, sc.ID, "ACTIVE")
	require.NoError(t, err)
	seats, err := f.store.Seats().FindByScreen(ctx, sc.ID)
	require.NoError(t, err)
	require.NoError(t, f.screens.Remove(ctx, sc.ID))

	_, err = f.seats.UpdateSeat(ctx, seats[0].ID, model.UpdateSeatInput{Status: "ACTIVE", SeatRow: "A", SeatCol: 1})
	assert.True(t, apperror.IsConflict(err))
	assert.True(t, apperror.IsConflict(f.seats.DeleteSeat(ctx, seats[1].ID)))
}
