package model

import (
	"testing"
	"time"

	"cinema_booking/apperror"
	"cinema_booking/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeMovie() *Movie {
	return &Movie{
		Title:       utils.Ptr("Dune"),
		Director:    utils.Ptr("Denis Villeneuve"),
		Genre:       utils.Ptr("SF"),
		Synopsis:    utils.Ptr("Spice."),
		RuntimeMin:  utils.Ptr(155),
		Rating:      utils.Ptr("12"),
		PosterURL:   utils.Ptr("https://img/dune.jpg"),
		ReleaseDate: utils.Ptr(utils.NewDate(2024, time.June, 1)),
		EndDate:     utils.Ptr(utils.NewDate(2024, time.July, 1)),
		Status:      MovieDraft,
	}
}

func TestMovieCompleteOnlyFromDraft(t *testing.T) {
	m := completeMovie()

	require.NoError(t, m.Complete())
	assert.Equal(t, MovieComingSoon, m.Status)

	err := m.Complete()
	assert.True(t, apperror.IsConflict(err))
}

func TestMovieCompleteRequiresFields(t *testing.T) {
	m := completeMovie()
	m.Synopsis = utils.Ptr("   ")
	assert.True(t, apperror.IsBadRequest(m.Complete()))

	m = completeMovie()
	m.RuntimeMin = utils.Ptr(0)
	assert.True(t, apperror.IsBadRequest(m.Complete()))

	m = completeMovie()
	m.EndDate = utils.Ptr(utils.NewDate(2024, time.May, 1))
	assert.True(t, apperror.IsBadRequest(m.Complete()))
	assert.Equal(t, MovieDraft, m.Status)
}

func TestMovieUnhideDependsOnReleaseDate(t *testing.T) {
	today := utils.NewDate(2024, time.June, 1)

	m := completeMovie()
	m.Status = MovieHidden
	require.NoError(t, m.Unhide(today))
	assert.Equal(t, MovieNowShowing, m.Status)

	m = completeMovie()
	m.Status = MovieHidden
	m.ReleaseDate = utils.Ptr(today.AddDays(1))
	require.NoError(t, m.Unhide(today))
	assert.Equal(t, MovieComingSoon, m.Status)

	m = completeMovie()
	m.Status = MovieHidden
	m.ReleaseDate = nil
	require.NoError(t, m.Unhide(today))
	assert.Equal(t, MovieComingSoon, m.Status)

	m = completeMovie()
	m.Status = MovieNowShowing
	assert.True(t, apperror.IsConflict(m.Unhide(today)))
}

func TestMovieShowingTransitions(t *testing.T) {
	m := completeMovie()
	assert.True(t, apperror.IsConflict(m.StartShowing()))

	m.Status = MovieComingSoon
	require.NoError(t, m.StartShowing())
	assert.True(t, apperror.IsConflict(m.StartShowing()))
	require.NoError(t, m.EndShowing())
	assert.Equal(t, MovieEnded, m.Status)
	assert.True(t, apperror.IsConflict(m.EndShowing()))
}

func TestMovieHideAndDelete(t *testing.T) {
	for _, s := range []MovieStatus{MovieDraft, MovieComingSoon, MovieNowShowing, MovieHidden, MovieEnded} {
		m := &Movie{Status: s}
		assert.NoError(t, m.Hide(), "from %s", s)
		assert.Equal(t, MovieHidden, m.Status)
	}

	m := &Movie{Status: MovieDeleted}
	assert.True(t, apperror.IsConflict(m.Hide()))
	assert.False(t, m.SoftDelete())

	m = &Movie{Status: MovieEnded}
	assert.True(t, m.SoftDelete())
	assert.Equal(t, MovieDeleted, m.Status)
}

func TestMoviePatchLeavesNilFields(t *testing.T) {
	m := completeMovie()
	m.ApplyPatch(MoviePatch{Title: utils.Ptr("  Dune: Part Two ")})

	assert.Equal(t, "Dune: Part Two", *m.Title)
	assert.Equal(t, "Denis Villeneuve", *m.Director)
	assert.Equal(t, 155, *m.RuntimeMin)
}

func TestParseMovieStatuses(t *testing.T) {
	got, err := ParseMovieStatuses([]string{"draft", "NOW_SHOWING"})
	require.NoError(t, err)
	assert.Equal(t, []MovieStatus{MovieDraft, MovieNowShowing}, got)

	_, err = ParseMovieStatuses([]string{"PLAYING"})
	assert.True(t, apperror.IsBadRequest(err))
}
