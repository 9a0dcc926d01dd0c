package model

import (
	"cinema_booking/apperror"
	"cinema_booking/utils"
	"strings"
	"time"
)

type ScheduleStatus string

const (
	ScheduleDraft    ScheduleStatus = "DRAFT"
	ScheduleOpen     ScheduleStatus = "OPEN"
	ScheduleClosed   ScheduleStatus = "CLOSED"
	ScheduleCanceled ScheduleStatus = "CANCELED"
	ScheduleDeleted  ScheduleStatus = "DELETED"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleDraft, ScheduleOpen, ScheduleClosed, ScheduleCanceled, ScheduleDeleted:
		return true
	}
	return false
}

func ParseScheduleStatuses(raw []string) ([]ScheduleStatus, error) {
	out := make([]ScheduleStatus, 0, len(raw))
	for _, r := range raw {
		s := ScheduleStatus(strings.ToUpper(strings.TrimSpace(r)))
		if !s.Valid() {
			return nil, apperror.BadRequestf("unknown schedule status %q", r)
		}
		out = append(out, s)
	}
	return out, nil
}

type Schedule struct {
	DTO
	MovieID       *uint             `gorm:"index" json:"movieId"`
	Movie         *Movie            `gorm:"foreignKey:MovieID;constraint:OnDelete:RESTRICT" json:"-"`
	ScreenID      *uint             `gorm:"index" json:"screenId"`
	Screen        *Screen           `gorm:"foreignKey:ScreenID;constraint:OnDelete:RESTRICT" json:"-"`
	ScheduledDate *utils.CustomDate `gorm:"type:date;index" json:"scheduledDate"`
	StartAt       *utils.ClockTime  `gorm:"type:time" json:"startAt"`
	EndAt         *utils.ClockTime  `gorm:"type:time" json:"endAt"`
	Status        ScheduleStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
}

func (Schedule) TableName() string { return "schedules" }

func (s *Schedule) IsDeleted() bool { return s.Status == ScheduleDeleted }

type ScheduleInput struct {
	MovieID       *uint             `json:"movieId"`
	ScreenID      *uint             `json:"screenId"`
	ScheduledDate *utils.CustomDate `json:"scheduledDate"`
	StartAt       *utils.ClockTime  `json:"startAt"`
}

func (s *Schedule) ApplyInput(in ScheduleInput) {
	if in.MovieID != nil {
		s.MovieID = in.MovieID
	}
	if in.ScreenID != nil {
		s.ScreenID = in.ScreenID
	}
	if in.ScheduledDate != nil {
		s.ScheduledDate = in.ScheduledDate
	}
	if in.StartAt != nil {
		s.StartAt = in.StartAt
	}
}

// RecomputeEndAt derives endAt from the movie runtime. It wraps past midnight.
func (s *Schedule) RecomputeEndAt(movie *Movie) {
	if movie == nil || movie.RuntimeMin == nil || s.StartAt == nil {
		s.EndAt = nil
		return
	}
	end := s.StartAt.AddMinutes(*movie.RuntimeMin)
	s.EndAt = &end
}

// FinishesAt is scheduledDate + startAt + runtime in loc. ok is false when any part is missing.
func (s *Schedule) FinishesAt(movie *Movie, loc *time.Location) (time.Time, bool) {
	if s.ScheduledDate == nil || s.StartAt == nil || movie == nil || movie.RuntimeMin == nil {
		return time.Time{}, false
	}
	start := s.ScheduledDate.At(*s.StartAt, loc)
	return start.Add(time.Duration(*movie.RuntimeMin) * time.Minute), true
}

func (s *Schedule) Complete() error {
	if s.Status != ScheduleDraft {
		return apperror.Conflictf("schedule %d: only a DRAFT schedule can be completed (status %s)", s.ID, s.Status)
	}
	if s.MovieID == nil {
		return apperror.BadRequest("movie is required")
	}
	if s.ScheduledDate == nil || s.StartAt == nil {
		return apperror.BadRequest("scheduledDate and startAt are required")
	}
	s.Status = ScheduleOpen
	return nil
}

func (s *Schedule) Cancel() { s.Status = ScheduleCanceled }
func (s *Schedule) Close()  { s.Status = ScheduleClosed }

func (s *Schedule) SoftDelete() bool {
	if s.Status == ScheduleDeleted {
		return false
	}
	s.Status = ScheduleDeleted
	return true
}

type ScheduleDetail struct {
	ID            uint              `json:"id"`
	MovieID       *uint             `json:"movieId"`
	MovieTitle    *string           `json:"movieTitle"`
	RuntimeMin    *int              `json:"runtimeMin"`
	ScreenID      *uint             `json:"screenId"`
	ScheduledDate *utils.CustomDate `json:"scheduledDate"`
	StartAt       *utils.ClockTime  `json:"startAt"`
	EndAt         *utils.ClockTime  `json:"endAt"`
	Status        ScheduleStatus    `json:"status"`
}
