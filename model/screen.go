package model

import (
	"cinema_booking/apperror"
	"strings"
)

type ScreenStatus string

const (
	ScreenDraft   ScreenStatus = "DRAFT"
	ScreenActive  ScreenStatus = "ACTIVE"
	ScreenHidden  ScreenStatus = "HIDDEN"
	ScreenClosed  ScreenStatus = "CLOSED"
	ScreenDeleted ScreenStatus = "DELETED"
)

func (s ScreenStatus) Valid() bool {
	switch s {
	case ScreenDraft, ScreenActive, ScreenHidden, ScreenClosed, ScreenDeleted:
		return true
	}
	return false
}

func (s ScreenStatus) CanTransitionTo(next ScreenStatus) bool {
	switch s {
	case ScreenDraft:
		return next == ScreenActive || next == ScreenDeleted
	case ScreenActive, ScreenHidden, ScreenClosed:
		return next.Valid() && next != ScreenDraft
	case ScreenDeleted:
		return false
	}
	return false
}

func ParseScreenStatuses(raw []string) ([]ScreenStatus, error) {
	out := make([]ScreenStatus, 0, len(raw))
	for _, r := range raw {
		s := ScreenStatus(strings.ToUpper(strings.TrimSpace(r)))
		if !s.Valid() {
			return nil, apperror.BadRequestf("unknown screen status %q", r)
		}
		out = append(out, s)
	}
	return out, nil
}

type Screen struct {
	DTO
	TheaterID    *uint        `gorm:"index" json:"theaterId"`
	Theater      *Theater     `gorm:"foreignKey:TheaterID;constraint:OnDelete:RESTRICT" json:"-"`
	Name         *string      `gorm:"size:100" json:"name"`
	Capacity     int          `gorm:"not null;default:0" json:"capacity"`
	SeatRowCount int          `gorm:"not null;default:0" json:"seatRowCount"`
	SeatColCount int          `gorm:"not null;default:0" json:"seatColCount"`
	Status       ScreenStatus `gorm:"type:varchar(20);not null;index" json:"status"`
}

func (Screen) TableName() string { return "screens" }

func (s *Screen) IsDeleted() bool { return s.Status == ScreenDeleted }

func (s *Screen) ensureNotDeleted() error {
	if s.Status == ScreenDeleted {
		return apperror.Conflictf("screen %d is deleted", s.ID)
	}
	return nil
}

func (s *Screen) ChangeStatus(next ScreenStatus) error {
	if next == "" {
		return apperror.BadRequest("screen status is required")
	}
	if !next.Valid() {
		return apperror.BadRequestf("unknown screen status %q", next)
	}
	if err := s.ensureNotDeleted(); err != nil {
		return err
	}
	if next == ScreenDeleted {
		return apperror.Conflict("use remove to delete a screen")
	}
	if !s.Status.CanTransitionTo(next) {
		return apperror.Conflictf("screen %d: cannot change status from %s to %s", s.ID, s.Status, next)
	}
	s.Status = next
	return nil
}

func (s *Screen) ChangeName(name string) error {
	if err := s.ensureNotDeleted(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.BadRequest("screen name must not be blank")
	}
	s.Name = &name
	return nil
}

func (s *Screen) ChangeCapacity(capacity int) error {
	if err := s.ensureNotDeleted(); err != nil {
		return err
	}
	if capacity < 0 {
		return apperror.BadRequest("capacity must not be negative")
	}
	s.Capacity = capacity
	return nil
}

func (s *Screen) ChangeTheater(theaterID *uint) error {
	if err := s.ensureNotDeleted(); err != nil {
		return err
	}
	if theaterID == nil {
		return apperror.BadRequest("theater is required")
	}
	s.TheaterID = theaterID
	return nil
}

func (s *Screen) ChangeSeatGrid(rows, cols *int) error {
	if err := s.ensureNotDeleted(); err != nil {
		return err
	}
	if (rows != nil && *rows < 0) || (cols != nil && *cols < 0) {
		return apperror.BadRequest("seat row and column counts must not be negative")
	}
	if rows != nil {
		s.SeatRowCount = *rows
	}
	if cols != nil {
		s.SeatColCount = *cols
	}
	return nil
}

// ValidateSeatGrid is the precondition of seat generation.
func (s *Screen) ValidateSeatGrid() error {
	if s.SeatRowCount <= 0 || s.SeatColCount <= 0 {
		return apperror.BadRequestf("screen %d: seat grid %dx%d is not generatable", s.ID, s.SeatRowCount, s.SeatColCount)
	}
	return nil
}

type ScreenPatch struct {
	TheaterID    *uint   `json:"theaterId"`
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Capacity     *int    `json:"capacity" validate:"omitempty,min=0"`
	SeatRowCount *int    `json:"seatRowCount" validate:"omitempty,min=0,max=702"`
	SeatColCount *int    `json:"seatColCount" validate:"omitempty,min=0,max=500"`
}

func (s *Screen) ApplyPatch(p ScreenPatch) error {
	if p.TheaterID != nil {
		if err := s.ChangeTheater(p.TheaterID); err != nil {
			return err
		}
	}
	if p.Name != nil {
		if err := s.ChangeName(*p.Name); err != nil {
			return err
		}
	}
	if p.Capacity != nil {
		if err := s.ChangeCapacity(*p.Capacity); err != nil {
			return err
		}
	}
	return s.ChangeSeatGrid(p.SeatRowCount, p.SeatColCount)
}

type ScreenCompleteInput struct {
	TheaterID *uint  `json:"theaterId" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
	Capacity  *int   `json:"capacity" validate:"required,min=0"`
}

func (s *Screen) Complete(in ScreenCompleteInput) error {
	if s.Status != ScreenDraft {
		return apperror.Conflictf("screen %d: only a DRAFT screen can be completed (status %s)", s.ID, s.Status)
	}
	if in.Capacity == nil {
		return apperror.BadRequest("capacity is required")
	}
	if err := s.ChangeTheater(in.TheaterID); err != nil {
		return err
	}
	if err := s.ChangeName(in.Name); err != nil {
		return err
	}
	if err := s.ChangeCapacity(*in.Capacity); err != nil {
		return err
	}
	s.Status = ScreenActive
	return nil
}

// MarkDeleted is the only way into DELETED.
func (s *Screen) MarkDeleted() bool {
	if s.Status == ScreenDeleted {
		return false
	}
	s.Status = ScreenDeleted
	return true
}

type ScreenStatusInput struct {
	Status ScreenStatus `json:"status" validate:"required"`
}
