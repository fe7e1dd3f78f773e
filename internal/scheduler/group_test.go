package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/examsched/pkg/model"
)

func newTestState(t *testing.T, days int, rooms []string, sections []*model.ExamSection) *State {
	t.Helper()
	g, err := NewTimeGrid(days)
	require.NoError(t, err)
	return NewState(g, rooms, BuildConflictMatrix(sections), nil)
}

func TestLedgerOccupy(t *testing.T) {
	l := newTestLedger(t, 1)
	assert.True(t, l.Occupy(0, 0, "ENG-1"))
	assert.False(t, l.Occupy(0, 0, "ENG-1"))
	assert.True(t, l.IsOccupied(0, 0, "ENG-1"))
	assert.False(t, l.IsOccupied(0, 1, "ENG-1"))
	assert.True(t, l.IsOccupied(3, 0, "ENG-1"))
	assert.Equal(t, 1, l.OccupiedCount(0, 0))
}

func TestLedgerKeepsLatestPlacementOnly(t *testing.T) {
	l := newTestLedger(t, 2)
	l.RecordSubject("CS101", Placement{Day: 0, Slot: 0, Span: 1})
	l.RecordSubject("CS101", Placement{Day: 1, Slot: 3, Span: 1})
	p, ok := l.Placement("CS101")
	require.True(t, ok)
	assert.Equal(t, Placement{Day: 1, Slot: 3, Span: 1}, p)
}

func TestPlaceGroupEmptySucceeds(t *testing.T) {
	st := newTestState(t, 1, []string{"SCI-1"}, nil)
	assert.True(t, st.PlaceGroup(nil, Cell{0, 0}, "test"))
	assert.Empty(t, st.Scheduled)
}

func TestPlaceGroupIsAtomic(t *testing.T) {
	group := []*model.ExamSection{
		exam("CS101", "S1", "BSCS", "1", "CITC", 3),
		exam("CS101", "S2", "BSCS", "1", "CITC", 3),
		exam("CS101", "S3", "BSCS", "1", "CITC", 3),
	}
	st := newTestState(t, 1, []string{"SCI-1", "SCI-2"}, group)

	assert.False(t, st.PlaceGroup(group, Cell{0, 0}, "test"))
	assert.Empty(t, st.Scheduled)
	assert.Equal(t, 0, st.Ledger.OccupiedCount(0, 0))
	_, placed := st.Ledger.Placement("CS101")
	assert.False(t, placed)

	assert.True(t, st.PlaceGroup(group[:2], Cell{0, 0}, "test"))
	require.Len(t, st.Scheduled, 2)
	assert.Equal(t, "SCI-1", st.Scheduled[0].Room)
	assert.Equal(t, "SCI-2", st.Scheduled[1].Room)
	for _, s := range st.Scheduled {
		assert.Equal(t, 0, s.Day)
		assert.Equal(t, 0, s.Slot)
	}
}

func TestPlaceGroupRejectsConflict(t *testing.T) {
	a := exam("CS101", "S1", "BSCS", "1", "CITC", 3)
	b := exam("CS102", "S2", "BSCS", "1", "CITC", 3)
	st := newTestState(t, 1, []string{"SCI-1", "SCI-2"}, []*model.ExamSection{a, b})

	require.True(t, st.PlaceGroup([]*model.ExamSection{a}, Cell{0, 0}, "test"))
	assert.False(t, st.PlaceGroup([]*model.ExamSection{b}, Cell{0, 0}, "test"))
	assert.True(t, st.PlaceGroup([]*model.ExamSection{b}, Cell{0, 1}, "test"))
}

func TestPlaceGroupDoubleUnit(t *testing.T) {
	sec := exam("MATH201", "M1", "BSCE", "2", "DES", 6)
	other := exam("CE201", "C1", "BSCE", "2", "DES", 3)
	st := newTestState(t, 1, []string{"ENG-1"}, []*model.ExamSection{sec, other})

	assert.False(t, st.PlaceGroup([]*model.ExamSection{sec}, Cell{0, 7}, "test"), "no second slot on the day")
	require.True(t, st.PlaceGroup([]*model.ExamSection{sec}, Cell{0, 2}, "test"))
	require.Len(t, st.Scheduled, 2)
	assert.Equal(t, 1, st.Scheduled[0].Part)
	assert.Equal(t, 2, st.Scheduled[1].Part)
	assert.Equal(t, 3, st.Scheduled[1].Slot)
	assert.Equal(t, st.Scheduled[0].Room, st.Scheduled[1].Room)

	p, ok := st.Ledger.Placement("MATH201")
	require.True(t, ok)
	assert.Equal(t, Placement{Day: 0, Slot: 2, Span: 2}, p)

	// the conflicting subject cannot use either half of the pair
	st.Rooms = []string{"ENG-1", "ENG-2"}
	assert.False(t, st.PlaceGroup([]*model.ExamSection{other}, Cell{0, 3}, "test"))
	assert.True(t, st.PlaceGroup([]*model.ExamSection{other}, Cell{0, 4}, "test"))
}

// A subject placed twice only exposes its latest placement to conflict checks.
func TestConflictCheckSeesLatestSubjectPlacementOnly(t *testing.T) {
	first := exam("CS101", "S1", "BSCS", "1", "CITC", 3)
	second := exam("CS101", "S2", "BSCS", "1", "CITC", 3)
	rival := exam("CS102", "S3", "BSCS", "1", "CITC", 3)
	st := newTestState(t, 2, []string{"SCI-1", "SCI-2"}, []*model.ExamSection{first, second, rival})

	require.True(t, st.PlaceGroup([]*model.ExamSection{first}, Cell{0, 0}, "test"))
	assert.False(t, st.PlaceGroup([]*model.ExamSection{rival}, Cell{0, 0}, "test"))

	require.True(t, st.PlaceGroup([]*model.ExamSection{second}, Cell{1, 3}, "test"))
	assert.True(t, st.PlaceGroup([]*model.ExamSection{rival}, Cell{0, 0}, "test"))
	assert.False(t, st.Ledger.HasConflict(rival, st.Matrix, 0, 0, 1))
}

func TestPlaceGroupUsesEachSectionsDepartment(t *testing.T) {
	group := []*model.ExamSection{
		exam("ETHC101", "E1", "BSBA", "1", "CBA", 3),
		exam("ETHC101", "E2", "BSIT", "1", "CITC", 3),
	}
	st := newTestState(t, 1, []string{"BUS-1", "BUS-2", "SCI-1"}, group)

	require.True(t, st.PlaceGroup(group, Cell{0, 0}, "test"))
	require.Len(t, st.Scheduled, 2)
	assert.Equal(t, "BUS-1", st.Scheduled[0].Room)
	assert.Equal(t, "SCI-1", st.Scheduled[1].Room)
	for _, s := range st.Scheduled {
		assert.True(t, EligibleRoom(&s.ExamSection, s.Room), s.SectionCode)
	}
}

func TestPlaceGroupFailsWhenOneDepartmentHasNoRoom(t *testing.T) {
	group := []*model.ExamSection{
		exam("ETHC101", "E1", "BSBA", "1", "CBA", 3),
		exam("ETHC101", "E2", "BSIT", "1", "CITC", 3),
	}
	st := newTestState(t, 1, []string{"BUS-1", "BUS-2"}, group)

	assert.False(t, st.PlaceGroup(group, Cell{0, 0}, "test"))
	assert.Empty(t, st.Scheduled)
	assert.Equal(t, 0, st.Ledger.OccupiedCount(0, 0))
	_, placed := st.Ledger.Placement("ETHC101")
	assert.False(t, placed)
}

// A shared building goes to the section that has nowhere else to sit.
func TestPlaceGroupScarceSectionChoosesFirst(t *testing.T) {
	group := []*model.ExamSection{
		exam("ETHC101", "E2", "BSIT", "1", "CITC", 3),
		exam("ETHC101", "E1", "BSBA", "1", "CBA", 3),
	}
	st := newTestState(t, 1, []string{"MAIN-1", "SCI-1"}, group)

	require.True(t, st.PlaceGroup(group, Cell{0, 0}, "test"))
	require.Len(t, st.Scheduled, 2)
	rooms := map[string]string{}
	for _, s := range st.Scheduled {
		rooms[s.SectionCode] = s.Room
	}
	assert.Equal(t, map[string]string{"E1": "MAIN-1", "E2": "SCI-1"}, rooms)
}

func TestPlaceGroupNeverRepeatsARoom(t *testing.T) {
	group := []*model.ExamSection{
		exam("CS101", "S1", "BSCS", "1", "CITC", 3),
		exam("CS101", "S2", "BSCS", "1", "CITC", 3),
	}
	st := newTestState(t, 1, []string{"SCI-1", "SCI-1"}, group)

	assert.False(t, st.PlaceGroup(group, Cell{0, 0}, "test"))
	assert.Empty(t, st.Scheduled)
	assert.Equal(t, 0, st.Ledger.OccupiedCount(0, 0))
}
