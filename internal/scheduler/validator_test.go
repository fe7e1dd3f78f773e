package scheduler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/examsched/pkg/model"
)

func mixedRooms() []string {
	return []string{
		"ARC-1", "ARC-2",
		"ENG-1", "ENG-2", "ENG-3", "ENG-4",
		"SCI-1", "SCI-2", "SCI-3", "SCI-4",
		"BUS-1", "BUS-2", "BUS-3",
		"MAIN-1", "MAIN-2", "MAIN-3", "MAIN-4",
		"LIB-1", "LIB-2",
	}
}

func mixedSections() []*model.ExamSection {
	return []*model.ExamSection{
		exam("ETHC101", "ET-1", "BSIT", "1", "CITC", 3),
		exam("ETHC101", "ET-2", "BSCS", "1", "CITC", 3),
		exam("ENGL101", "EN-1", "BSIT", "1", "CITC", 3),
		exam("ENGL101", "EN-2", "BSCS", "1", "CITC", 3),
		exam("MATH101", "MA-1", "BSCE", "1", "DES", 6),
		exam("MATH101", "MA-2", "BSME", "1", "DES", 6),
		exam("MATH102", "MB-1", "BSCE", "1", "DES", 3),
		exam("ARCH101", "AR-1", "BSAR", "1", "CEA", 3),
		exam("ARCH101", "AR-2", "BSAR", "1", "CEA", 3),
		exam("ARCH102", "AS-1", "BSAR", "1", "CEA", 6),
		exam("IT101", "IT-1", "BSIT", "1", "CITC", 3),
		exam("IT102", "IU-1", "BSIT", "1", "CITC", 3),
		exam("IT103", "IV-1", "BSIT", "1", "CITC", 3),
		exam("CS101", "CS-1", "BSCS", "1", "CITC", 3),
		exam("CS101", "CS-2", "BSCS", "1", "CITC", 3),
		exam("CS102", "CT-1", "BSCS", "1", "CITC", 3),
		exam("BA101", "BA-1", "BSBA", "1", "CBA", 3),
		exam("BA101", "BA-2", "BSBA", "1", "CBA", 3),
		exam("BA101", "BA-3", "BSBA", "1", "CBA", 3),
		exam("BA102", "BB-1", "BSBA", "1", "CBA", 3),
		exam("ED101", "ED-1", "BSED", "1", "CTE", 3),
		exam("ED101", "ED-2", "BSED", "1", "CTE", 3),
		exam("ED102", "EE-1", "BSED", "1", "CTE", 3),
		exam("CE101", "CE-1", "BSCE", "1", "DES", 6),
		exam("NSTP1", "NS-1", "BSIT", "1", StudentAffairsDept, 3),
	}
}

func TestMixedRunValidates(t *testing.T) {
	res := runWith(t, nil, nil, mixedSections(), mixedRooms())

	assert.Empty(t, res.Unscheduled)
	assert.Len(t, res.Excluded, 1)
	assert.Equal(t, 100.0, res.Coverage())
	for _, s := range res.Scheduled {
		assert.NotEqual(t, PhaseRelaxed, s.Phase, s.SectionCode)
	}

	rep := Validate(res)
	assert.True(t, rep.Valid, rep.Message)
	assert.Zero(t, rep.RoomCollisions)
	assert.Zero(t, rep.CohortCollisions)
	assert.Zero(t, rep.BrokenPairs)
	assert.Zero(t, rep.IneligibleRooms)
	assert.Contains(t, rep.Message, "[  OK]: Room collision check.")

	for i := 1; i < len(res.Phases); i++ {
		assert.GreaterOrEqual(t, res.Phases[i].TotalScheduled, res.Phases[i-1].TotalScheduled)
	}

	ce := entriesFor(res, "CE-1")
	require.Len(t, ce, 2)
	for _, other := range []string{"MA-1", "MB-1"} {
		for _, e := range entriesFor(res, other) {
			assert.False(t, e.Day == ce[0].Day && (e.Slot == ce[0].Slot || e.Slot == ce[1].Slot),
				"%s shares a slot with CE-1", other)
		}
	}
}

func TestValidateReportsEveryKindOfProblem(t *testing.T) {
	grid, err := NewTimeGrid(1)
	require.NoError(t, err)

	a := exam("IT101", "A", "BSIT", "1", "CITC", 3)
	b := exam("IT102", "B", "BSIT", "1", "CITC", 3)
	c := exam("IT103", "C", "BSIT", "1", "CITC", 3)
	d := exam("MATH201", "D", "BSCE", "2", "DES", 6)
	e := exam("BA101", "E", "BSBA", "1", "CBA", 3)
	left := exam("BA102", "F", "BSBA", "1", "CBA", 3)

	at := func(sec *model.ExamSection, slot int, room string, part int) model.ScheduledExam {
		return model.ScheduledExam{ExamSection: *sec, Day: 0, Slot: slot, Room: room, Part: part}
	}
	res := &Result{
		Grid:   grid,
		Matrix: BuildConflictMatrix([]*model.ExamSection{a, b, c, d, e, left}),
		Scheduled: []model.ScheduledExam{
			at(a, 0, "SCI-1", 1),
			at(b, 0, "SCI-1", 1), // same room, also same cohort slot
			at(c, 3, "SCI-2", 1),
			at(d, 5, "ENG-1", 1), // second half missing
			at(e, 6, "ENG-2", 1), // business in engineering
		},
		Unscheduled: []*model.ExamSection{left},
		Eligible:    6,
	}

	rep := Validate(res)
	assert.False(t, rep.Valid)
	assert.Equal(t, 1, rep.RoomCollisions)
	assert.Equal(t, 1, rep.CohortCollisions)
	assert.Equal(t, 1, rep.BrokenPairs)
	assert.Equal(t, 1, rep.IneligibleRooms)
	assert.Equal(t, 1, rep.UnscheduledCount)
	assert.Contains(t, rep.Message, "[FAIL]: Room collision check.")
	assert.Contains(t, rep.Message, "[FAIL]: Section has room check.")
	assert.Contains(t, rep.Message, "F BA102 CBA 30")
}

func TestValidateAcceptsCleanResult(t *testing.T) {
	grid, err := NewTimeGrid(1)
	require.NoError(t, err)
	d := exam("MATH201", "D", "BSCE", "2", "DES", 6)
	res := &Result{
		Grid:   grid,
		Matrix: BuildConflictMatrix([]*model.ExamSection{d}),
		Scheduled: []model.ScheduledExam{
			{ExamSection: *d, Day: 0, Slot: 2, Room: "ENG-1", Part: 1},
			{ExamSection: *d, Day: 0, Slot: 3, Room: "ENG-1", Part: 2},
		},
		Eligible: 1,
	}
	rep := Validate(res)
	assert.True(t, rep.Valid, rep.Message)
	assert.NotContains(t, rep.Message, "[FAIL]")
}

func TestValidateReportOrderFollowsSchedule(t *testing.T) {
	grid, err := NewTimeGrid(1)
	require.NoError(t, err)

	a := exam("IT101", "A", "BSIT", "1", "CITC", 3)
	b := exam("IT102", "B", "BSIT", "1", "CITC", 3)
	c := exam("IT103", "C", "BSIT", "1", "CITC", 3)
	d := exam("IT104", "D", "BSIT", "1", "CITC", 3)
	p := exam("MATH201", "P", "BSCE", "2", "DES", 6)
	q := exam("MATH202", "Q", "BSCE", "3", "DES", 6)

	at := func(sec *model.ExamSection, slot int, room string) model.ScheduledExam {
		return model.ScheduledExam{ExamSection: *sec, Day: 0, Slot: slot, Room: room, Part: 1}
	}
	res := &Result{
		Grid:   grid,
		Matrix: BuildConflictMatrix([]*model.ExamSection{a, b, c, d, p, q}),
		Scheduled: []model.ScheduledExam{
			at(c, 4, "SCI-1"),
			at(d, 4, "SCI-2"),
			at(q, 6, "ENG-1"),
			at(a, 1, "SCI-1"),
			at(b, 1, "SCI-2"),
			at(p, 2, "ENG-2"),
		},
		Eligible: 6,
	}

	first := Validate(res)
	require.Equal(t, 2, first.CohortCollisions)
	require.Equal(t, 2, first.BrokenPairs)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Message, Validate(res).Message)
	}

	order := []string{"IT103 and IT104", "IT101 and IT102", "section Q ", "section P "}
	last := -1
	for _, frag := range order {
		pos := strings.Index(first.Message, frag)
		require.NotEqual(t, -1, pos, frag)
		assert.Greater(t, pos, last, frag)
		last = pos
	}
}
