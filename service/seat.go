package service

import (
	"context"
	"fmt"
	"strings"

	"cinema_booking/apperror"
	"cinema_booking/constants"
	"cinema_booking/events"
	"cinema_booking/model"
	"cinema_booking/repository"
	"cinema_booking/utils"
)

// SeatService owns the seat grid of a screen. A screen's capacity is rewritten from the
// seat count after every grid change.
type SeatService struct {
	base
}

func NewSeatService(d Deps) *SeatService {
	return &SeatService{base: newBase(d)}
}

// lockScreen loads a screen for seat mutation. A deleted screen is a conflict, not a miss.
func lockScreen(ctx context.Context, tx repository.Store, screenID uint) (*model.Screen, error) {
	sc, err := load(ctx, tx.Screens().FindByID, events.EntityScreen, screenID)
	if err != nil {
		return nil, err
	}
	if sc.IsDeleted() {
		return nil, apperror.Conflictf("screen %d is deleted", screenID)
	}
	return sc, nil
}

func buildGrid(screenID uint, rows, cols int, status model.SeatStatus) ([]model.Seat, error) {
	seats := make([]model.Seat, 0, rows*cols)
	for r := 1; r <= rows; r++ {
		label, err := utils.EncodeRowLabel(r)
		if err != nil {
			return nil, apperror.BadRequestf("row %d", r).Wrap(err)
		}
		for c := 1; c <= cols; c++ {
			seats = append(seats, model.Seat{ScreenID: screenID, SeatRow: label, SeatCol: c, Status: status})
		}
	}
	return seats, nil
}

func (s *SeatService) fillGrid(ctx context.Context, tx repository.Store, sc *model.Screen, status model.SeatStatus) (int, error) {
	seats, err := buildGrid(sc.ID, sc.SeatRowCount, sc.SeatColCount, status)
	if err != nil {
		return 0, err
	}
	if err := tx.Seats().CreateBatch(ctx, seats); err != nil {
		return 0, persistErr(err, "seat")
	}
	if err := sc.ChangeCapacity(len(seats)); err != nil {
		return 0, err
	}
	if err := tx.Screens().Save(ctx, sc); err != nil {
		return 0, persistErr(err, "screen")
	}
	return len(seats), nil
}

// Generate creates the full grid for a screen that has no seats yet.
func (s *SeatService) Generate(ctx context.Context, screenID uint, rawStatus string) (int, error) {
	status, err := model.ParseSeatStatus(rawStatus)
	if err != nil {
		return 0, err
	}
	var created int
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		sc, err := lockScreen(ctx, tx, screenID)
		if err != nil {
			return err
		}
		if err := sc.ValidateSeatGrid(); err != nil {
			return err
		}
		existing, err := tx.Seats().CountByScreen(ctx, screenID)
		if err != nil {
			return fmt.Errorf("count seats: %w", err)
		}
		if existing > 0 {
			return apperror.Conflictf("screen %d already has %d seats, regenerate instead", screenID, existing)
		}
		created, err = s.fillGrid(ctx, tx, sc, status)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.Info(constants.LOG_SEAT, fmt.Sprintf("screen %d: generated %d seats", screenID, created))
	return created, nil
}

// Regenerate throws the grid away and builds it again. Any booking history on the screen
// blocks it.
func (s *SeatService) Regenerate(ctx context.Context, screenID uint, rawStatus string) (int, error) {
	status, err := model.ParseSeatStatus(rawStatus)
	if err != nil {
		return 0, err
	}
	var created int
	var removed int64
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		sc, err := lockScreen(ctx, tx, screenID)
		if err != nil {
			return err
		}
		if err := sc.ValidateSeatGrid(); err != nil {
			return err
		}
		booked, err := tx.BookingSeats().ExistsByScreen(ctx, screenID)
		if err != nil {
			return fmt.Errorf("check booking history: %w", err)
		}
		if booked {
			return apperror.Conflictf("screen %d has booking history, seats cannot be regenerated", screenID)
		}
		if removed, err = tx.Seats().DeleteByScreen(ctx, screenID); err != nil {
			return fmt.Errorf("delete seats: %w", err)
		}
		created, err = s.fillGrid(ctx, tx, sc, status)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.Info(constants.LOG_SEAT, fmt.Sprintf("screen %d: regenerated %d seats (removed %d)", screenID, created, removed))
	return created, nil
}

func (s *SeatService) GenerateLayout(ctx context.Context, screenID uint, in model.GenerateSeatsInput) (int, error) {
	if in.Regenerate {
		return s.Regenerate(ctx, screenID, in.Status)
	}
	return s.Generate(ctx, screenID, in.Status)
}

func (s *SeatService) UpdateSeat(ctx context.Context, seatID uint, in model.UpdateSeatInput) (*model.Seat, error) {
	status, err := model.ParseSeatStatus(in.Status)
	if err != nil {
		return nil, err
	}
	row := strings.ToUpper(strings.TrimSpace(in.SeatRow))
	if _, err := utils.DecodeRowLabel(row); err != nil {
		return nil, apperror.BadRequestf("invalid seat row %q", in.SeatRow).Wrap(err)
	}
	if in.SeatCol < 1 {
		return nil, apperror.BadRequest("seat column must be at least 1")
	}

	var (
		saved *model.Seat
		from  model.SeatStatus
	)
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		seat, err := load(ctx, tx.Seats().FindByID, events.EntitySeat, seatID)
		if err != nil {
			return err
		}
		if _, err := lockScreen(ctx, tx, seat.ScreenID); err != nil {
			return err
		}
		from = seat.Status
		if !seat.SamePosition(row, in.SeatCol) {
			booked, err := tx.BookingSeats().ExistsBySeat(ctx, seatID)
			if err != nil {
				return fmt.Errorf("check booking history: %w", err)
			}
			if booked {
				return apperror.Conflictf("seat %d has booking history, its position cannot change", seatID)
			}
			seat.SeatRow, seat.SeatCol = row, in.SeatCol
		}
		seat.Status = status
		if err := tx.Seats().Save(ctx, seat); err != nil {
			return persistErr(err, fmt.Sprintf("seat %s%d", row, in.SeatCol))
		}
		saved = seat
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, SourceAdmin, transition{events.EntitySeat, seatID, string(from), string(saved.Status)})
	return saved, nil
}

// DeleteSeat removes a seat without booking history and recounts the screen capacity.
func (s *SeatService) DeleteSeat(ctx context.Context, seatID uint) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		seat, err := load(ctx, tx.Seats().FindByID, events.EntitySeat, seatID)
		if err != nil {
			return err
		}
		sc, err := lockScreen(ctx, tx, seat.ScreenID)
		if err != nil {
			return err
		}
		booked, err := tx.BookingSeats().ExistsBySeat(ctx, seatID)
		if err != nil {
			return fmt.Errorf("check booking history: %w", err)
		}
		if booked {
			return apperror.Conflictf("seat %d has booking history and cannot be deleted", seatID)
		}
		if err := tx.Seats().Delete(ctx, seatID); err != nil {
			return fmt.Errorf("delete seat %d: %w", seatID, err)
		}
		left, err := tx.Seats().CountByScreen(ctx, sc.ID)
		if err != nil {
			return fmt.Errorf("count seats: %w", err)
		}
		if err := sc.ChangeCapacity(int(left)); err != nil {
			return err
		}
		return persistErr(tx.Screens().Save(ctx, sc), "screen")
	})
}

func (s *SeatService) GetLayout(ctx context.Context, screenID uint) (*model.SeatLayout, error) {
	sc, err := loadLive(ctx, s.store.Screens().FindByID, events.EntityScreen, screenID)
	if err != nil {
		return nil, err
	}
	seats, err := s.store.Seats().FindByScreen(ctx, screenID)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	items := make([]model.SeatLayoutItem, 0, len(seats))
	for _, seat := range seats {
		items = append(items, model.SeatLayoutItem{SeatID: seat.ID, SeatRow: seat.SeatRow, SeatCol: seat.SeatCol, Status: seat.Status})
	}
	return &model.SeatLayout{ScreenID: sc.ID, Capacity: sc.Capacity, Seats: items}, nil
}
