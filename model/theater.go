package model

import (
	"cinema_booking/apperror"
	"cinema_booking/utils"
	"strings"
)

type TheaterStatus string

const (
	TheaterDraft   TheaterStatus = "DRAFT"
	TheaterActive  TheaterStatus = "ACTIVE"
	TheaterHidden  TheaterStatus = "HIDDEN"
	TheaterClosed  TheaterStatus = "CLOSED"
	TheaterDeleted TheaterStatus = "DELETED"
)

func (s TheaterStatus) Valid() bool {
	switch s {
	case TheaterDraft, TheaterActive, TheaterHidden, TheaterClosed, TheaterDeleted:
		return true
	}
	return false
}

func (s TheaterStatus) CanTransitionTo(next TheaterStatus) bool {
	switch s {
	case TheaterDraft:
		return next == TheaterActive || next == TheaterDeleted
	case TheaterActive, TheaterHidden, TheaterClosed:
		return next.Valid() && next != TheaterDraft
	case TheaterDeleted:
		return next == TheaterDeleted
	}
	return false
}

func ParseTheaterStatuses(raw []string) ([]TheaterStatus, error) {
	out := make([]TheaterStatus, 0, len(raw))
	for _, r := range raw {
		s := TheaterStatus(strings.ToUpper(strings.TrimSpace(r)))
		if !s.Valid() {
			return nil, apperror.BadRequestf("unknown theater status %q", r)
		}
		out = append(out, s)
	}
	return out, nil
}

type Theater struct {
	DTO
	Name      *string          `gorm:"size:255;index" json:"name"`
	Address   *string          `gorm:"size:500" json:"address"`
	Lat       *float64         `json:"lat"`
	Lng       *float64         `json:"lng"`
	OpenTime  *utils.ClockTime `gorm:"type:time" json:"openTime"`
	CloseTime *utils.ClockTime `gorm:"type:time" json:"closeTime"`
	Status    TheaterStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
}

func (Theater) TableName() string { return "theaters" }

func (t *Theater) IsDeleted() bool { return t.Status == TheaterDeleted }

type TheaterPatch struct {
	Name      *string          `json:"name" validate:"omitempty,max=255"`
	Address   *string          `json:"address" validate:"omitempty,max=500"`
	Lat       *float64         `json:"lat" validate:"omitempty,latitude"`
	Lng       *float64         `json:"lng" validate:"omitempty,longitude"`
	OpenTime  *utils.ClockTime `json:"openTime"`
	CloseTime *utils.ClockTime `json:"closeTime"`
}

// Setters are plain writes. Which workflow step may call them is decided by the service.
func (t *Theater) ChangeName(name string)            { t.Name = utils.Ptr(strings.TrimSpace(name)) }
func (t *Theater) ChangeAddress(address string)      { t.Address = utils.Ptr(strings.TrimSpace(address)) }
func (t *Theater) ChangeLocation(lat, lng *float64)  { t.Lat, t.Lng = lat, lng }
func (t *Theater) ChangeOpenTime(v utils.ClockTime)  { t.OpenTime = &v }
func (t *Theater) ChangeCloseTime(v utils.ClockTime) { t.CloseTime = &v }

func (t *Theater) ApplyPatch(p TheaterPatch) {
	if p.Name != nil {
		t.ChangeName(*p.Name)
	}
	if p.Address != nil {
		t.ChangeAddress(*p.Address)
	}
	if p.Lat != nil {
		t.Lat = p.Lat
	}
	if p.Lng != nil {
		t.Lng = p.Lng
	}
	if p.OpenTime != nil {
		t.ChangeOpenTime(*p.OpenTime)
	}
	if p.CloseTime != nil {
		t.ChangeCloseTime(*p.CloseTime)
	}
}

// ValidateLocation requires lat and lng together or neither.
func (t *Theater) ValidateLocation() error {
	if (t.Lat == nil) != (t.Lng == nil) {
		return apperror.Conflict("lat and lng must be provided together")
	}
	return nil
}

type TheaterCompleteInput struct {
	Name      string           `json:"name" validate:"required,max=255"`
	Address   string           `json:"address" validate:"required,max=500"`
	OpenTime  *utils.ClockTime `json:"openTime" validate:"required"`
	CloseTime *utils.ClockTime `json:"closeTime" validate:"required"`
	Lat       *float64         `json:"lat" validate:"omitempty,latitude"`
	Lng       *float64         `json:"lng" validate:"omitempty,longitude"`
}

func (t *Theater) Complete(in TheaterCompleteInput) error {
	if t.Status != TheaterDraft {
		return apperror.Conflictf("theater %d: only a DRAFT theater can be completed (status %s)", t.ID, t.Status)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Address) == "" {
		return apperror.BadRequest("name and address are required")
	}
	if in.OpenTime == nil || in.CloseTime == nil {
		return apperror.BadRequest("openTime and closeTime are required")
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return apperror.Conflict("lat and lng must be provided together")
	}
	t.ChangeName(in.Name)
	t.ChangeAddress(in.Address)
	t.ChangeOpenTime(*in.OpenTime)
	t.ChangeCloseTime(*in.CloseTime)
	t.ChangeLocation(in.Lat, in.Lng)
	t.Status = TheaterActive
	return nil
}

// ChangeStatus is used by activate/hide/close. A DRAFT theater must be completed first.
func (t *Theater) ChangeStatus(next TheaterStatus) error {
	if next == TheaterDeleted {
		return apperror.Conflict("use remove to delete a theater")
	}
	if t.Status == TheaterDraft {
		return apperror.Conflictf("theater %d: complete the draft before changing its status", t.ID)
	}
	if !t.Status.CanTransitionTo(next) {
		return apperror.Conflictf("theater %d: cannot change status from %s to %s", t.ID, t.Status, next)
	}
	t.Status = next
	return nil
}

func (t *Theater) Remove() bool {
	if t.Status == TheaterDeleted {
		return false
	}
	t.Status = TheaterDeleted
	return true
}

type TheaterStats struct {
	Theaters map[TheaterStatus]int64 `json:"theaters"`
	Screens  map[ScreenStatus]int64  `json:"screens"`
	Seats    map[SeatStatus]int64    `json:"seats"`
}
