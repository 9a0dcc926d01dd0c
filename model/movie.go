package model

import (
	"cinema_booking/apperror"
	"cinema_booking/utils"
	"strings"
)

type MovieStatus string

const (
	MovieDraft      MovieStatus = "DRAFT"
	MovieComingSoon MovieStatus = "COMING_SOON"
	MovieNowShowing MovieStatus = "NOW_SHOWING"
	MovieHidden     MovieStatus = "HIDDEN"
	MovieEnded      MovieStatus = "ENDED"
	MovieDeleted    MovieStatus = "DELETED"
)

var MovieStatuses = []MovieStatus{MovieDraft, MovieComingSoon, MovieNowShowing, MovieHidden, MovieEnded, MovieDeleted}

func (s MovieStatus) Valid() bool {
	switch s {
	case MovieDraft, MovieComingSoon, MovieNowShowing, MovieHidden, MovieEnded, MovieDeleted:
		return true
	}
	return false
}

// CanTransitionTo is the full movie state graph. DELETED only loops onto itself.
func (s MovieStatus) CanTransitionTo(next MovieStatus) bool {
	if next == MovieDeleted {
		return s.Valid()
	}
	switch s {
	case MovieDraft:
		return next == MovieComingSoon || next == MovieHidden
	case MovieComingSoon:
		return next == MovieNowShowing || next == MovieHidden
	case MovieNowShowing:
		return next == MovieEnded || next == MovieHidden
	case MovieHidden:
		return next == MovieComingSoon || next == MovieNowShowing || next == MovieHidden
	case MovieEnded:
		return next == MovieHidden
	case MovieDeleted:
		return false
	}
	return false
}

func ParseMovieStatuses(raw []string) ([]MovieStatus, error) {
	out := make([]MovieStatus, 0, len(raw))
	for _, r := range raw {
		s := MovieStatus(strings.ToUpper(strings.TrimSpace(r)))
		if !s.Valid() {
			return nil, apperror.BadRequestf("unknown movie status %q", r)
		}
		out = append(out, s)
	}
	return out, nil
}

const (
	MinRuntimeMin = 1
	MaxRuntimeMin = 1000
)

type Movie struct {
	DTO
	Title       *string           `gorm:"size:255;index" json:"title"`
	Director    *string           `gorm:"size:255" json:"director"`
	Genre       *string           `gorm:"size:100" json:"genre"`
	Synopsis    *string           `gorm:"type:text" json:"synopsis"`
	RuntimeMin  *int              `json:"runtimeMin"`
	Rating      *string           `gorm:"size:20" json:"rating"`
	PosterURL   *string           `gorm:"size:500" json:"posterUrl"`
	ReleaseDate *utils.CustomDate `gorm:"type:date;index" json:"releaseDate"`
	EndDate     *utils.CustomDate `gorm:"type:date;index" json:"endDate"`
	Slug        *string           `gorm:"size:300;uniqueIndex" json:"slug"`
	Status      MovieStatus       `gorm:"type:varchar(20);not null;index" json:"status"`
}

func (Movie) TableName() string { return "movies" }

func (m *Movie) IsDeleted() bool { return m.Status == MovieDeleted }

// MoviePatch carries partial fields. A nil field is left untouched.
type MoviePatch struct {
	Title       *string           `json:"title" validate:"omitempty,max=255"`
	Director    *string           `json:"director" validate:"omitempty,max=255"`
	Genre       *string           `json:"genre" validate:"omitempty,max=100"`
	Synopsis    *string           `json:"synopsis"`
	RuntimeMin  *int              `json:"runtimeMin" validate:"omitempty,min=1,max=1000"`
	Rating      *string           `json:"rating" validate:"omitempty,max=20"`
	PosterURL   *string           `json:"posterUrl" validate:"omitempty,max=500"`
	ReleaseDate *utils.CustomDate `json:"releaseDate"`
	EndDate     *utils.CustomDate `json:"endDate"`
}

func (m *Movie) ApplyPatch(p MoviePatch) {
	if p.Title != nil {
		m.Title = utils.TrimPtr(p.Title)
	}
	if p.Director != nil {
		m.Director = utils.TrimPtr(p.Director)
	}
	if p.Genre != nil {
		m.Genre = utils.TrimPtr(p.Genre)
	}
	if p.Synopsis != nil {
		m.Synopsis = p.Synopsis
	}
	if p.RuntimeMin != nil {
		m.RuntimeMin = p.RuntimeMin
	}
	if p.Rating != nil {
		m.Rating = utils.TrimPtr(p.Rating)
	}
	if p.PosterURL != nil {
		m.PosterURL = utils.TrimPtr(p.PosterURL)
	}
	if p.ReleaseDate != nil {
		m.ReleaseDate = p.ReleaseDate
	}
	if p.EndDate != nil {
		m.EndDate = p.EndDate
	}
}

func (m *Movie) ValidateDateRange() error {
	if m.ReleaseDate != nil && m.EndDate != nil && m.EndDate.Before(*m.ReleaseDate) {
		return apperror.BadRequestf("end date %s is before release date %s", m.EndDate, m.ReleaseDate)
	}
	return nil
}

func (m *Movie) ValidateRuntime() error {
	if m.RuntimeMin != nil && (*m.RuntimeMin < MinRuntimeMin || *m.RuntimeMin > MaxRuntimeMin) {
		return apperror.BadRequestf("runtime must be between %d and %d minutes", MinRuntimeMin, MaxRuntimeMin)
	}
	return nil
}

// ValidateComplete checks every field a movie needs before it can be advertised.
func (m *Movie) ValidateComplete() error {
	required := []struct {
		name  string
		value *string
	}{
		{"title", m.Title},
		{"director", m.Director},
		{"genre", m.Genre},
		{"synopsis", m.Synopsis},
		{"rating", m.Rating},
		{"posterUrl", m.PosterURL},
	}
	for _, r := range required {
		if utils.IsBlank(r.value) {
			return apperror.BadRequestf("%s is required", r.name)
		}
	}
	if m.RuntimeMin == nil {
		return apperror.BadRequest("runtimeMin is required")
	}
	if err := m.ValidateRuntime(); err != nil {
		return err
	}
	if m.ReleaseDate == nil || m.EndDate == nil {
		return apperror.BadRequest("releaseDate and endDate are required")
	}
	return m.ValidateDateRange()
}

func (m *Movie) transition(next MovieStatus) error {
	if !m.Status.CanTransitionTo(next) {
		return apperror.Conflictf("movie %d: cannot change status from %s to %s", m.ID, m.Status, next)
	}
	m.Status = next
	return nil
}

func (m *Movie) Complete() error {
	if m.Status != MovieDraft {
		return apperror.Conflictf("movie %d: only a DRAFT movie can be completed (status %s)", m.ID, m.Status)
	}
	if err := m.ValidateComplete(); err != nil {
		return err
	}
	return m.transition(MovieComingSoon)
}

func (m *Movie) StartShowing() error {
	if m.Status != MovieComingSoon {
		return apperror.Conflictf("movie %d: only a COMING_SOON movie can start showing (status %s)", m.ID, m.Status)
	}
	return m.transition(MovieNowShowing)
}

func (m *Movie) EndShowing() error {
	if m.Status != MovieNowShowing {
		return apperror.Conflictf("movie %d: only a NOW_SHOWING movie can end (status %s)", m.ID, m.Status)
	}
	return m.transition(MovieEnded)
}

func (m *Movie) Hide() error {
	return m.transition(MovieHidden)
}

// Unhide picks the visible status from the release date relative to today.
func (m *Movie) Unhide(today utils.CustomDate) error {
	if m.Status != MovieHidden {
		return apperror.Conflictf("movie %d: only a HIDDEN movie can be unhidden (status %s)", m.ID, m.Status)
	}
	if m.ReleaseDate != nil && !m.ReleaseDate.After(today) {
		return m.transition(MovieNowShowing)
	}
	return m.transition(MovieComingSoon)
}

// SoftDelete reports whether anything changed.
func (m *Movie) SoftDelete() bool {
	if m.Status == MovieDeleted {
		return false
	}
	m.Status = MovieDeleted
	return true
}

func (m *Movie) TitleOrEmpty() string {
	if m.Title == nil {
		return ""
	}
	return *m.Title
}

type MovieSummary struct {
	ID          uint              `json:"id"`
	Title       *string           `json:"title"`
	Genre       *string           `json:"genre"`
	RuntimeMin  *int              `json:"runtimeMin"`
	Rating      *string           `json:"rating"`
	PosterURL   *string           `json:"posterUrl"`
	ReleaseDate *utils.CustomDate `json:"releaseDate"`
	EndDate     *utils.CustomDate `json:"endDate"`
	Status      MovieStatus       `json:"status"`
}

type MovieStats struct {
	Total          int64                 `json:"total"`
	ByStatus       map[MovieStatus]int64 `json:"byStatus"`
	EndingSoon     int64                 `json:"endingSoon"`
	EndingSoonDays int                   `json:"endingSoonDays"`
}
