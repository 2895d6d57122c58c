package notefilter

import (
	"strings"
	"testing"

	"github.com/haierkeys/notes-web-client/internal/domain"

	"github.com/stretchr/testify/assert"
)

func fixtureNotes() []domain.Note {
	return []domain.Note{
		{ID: 1, Title: "Alpha", Tags: "x,y", Status: domain.NoteStatusPrivate},
		{ID: 2, Title: "Beta", Tags: "z", Status: domain.NoteStatusPublic},
	}
}

func TestApplySearchMatchesTitle(t *testing.T) {
	got := Apply(fixtureNotes(), "alp", "")

	assert.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].Title)
}

func TestApplySearchMatchesTags(t *testing.T) {
	got := Apply(fixtureNotes(), "z", "")

	assert.Len(t, got, 1)
	assert.Equal(t, "Beta", got[0].Title)
}

func TestApplyStatusFilter(t *testing.T) {
	got := Apply(fixtureNotes(), "", domain.NoteStatusPublic)

	assert.Len(t, got, 1)
	assert.Equal(t, "Beta", got[0].Title)
}

func TestApplyEmptyFiltersReturnAllInOrder(t *testing.T) {
	notes := fixtureNotes()
	got := Apply(notes, "", "")

	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	got := Apply(fixtureNotes(), "ALPHA", "")

	assert.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].Title)
}

func TestApplyCombinedFilters(t *testing.T) {
	notes := []domain.Note{
		{ID: 1, Title: "meeting notes", Status: domain.NoteStatusPrivate},
		{ID: 2, Title: "meeting agenda", Status: domain.NoteStatusPublic},
		{ID: 3, Title: "groceries", Status: domain.NoteStatusPublic},
	}

	got := Apply(notes, "meeting", domain.NoteStatusPublic)

	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestApplyNoMatch(t *testing.T) {
	got := Apply(fixtureNotes(), "nonexistent", "")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestApplyNilInput(t *testing.T) {
	got := Apply(nil, "x", domain.NoteStatusPrivate)
	assert.Empty(t, got)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	notes := fixtureNotes()
	Apply(notes, "alp", domain.NoteStatusPrivate)

	assert.Equal(t, "Alpha", notes[0].Title)
	assert.Equal(t, "Beta", notes[1].Title)
	assert.True(t, strings.EqualFold(string(notes[1].Status), "public"))
}
