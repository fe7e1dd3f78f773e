package scheduler

import "github.com/rhyrak/examsched/pkg/model"

// Placement is where a subject was last put. Span is 2 for double-unit
// groups; the recorded Slot is always the first one.
type Placement struct {
	Day  int
	Slot int
	Span int
}

// overlaps reports whether [Slot, Slot+Span) intersects [slot, slot+span) on day.
func (p Placement) overlaps(day, slot, span int) bool {
	if p.Day != day {
		return false
	}
	return p.Slot < slot+span && slot < p.Slot+max(p.Span, 1)
}

// Ledger is the mutable state of one run: room occupancy per (day, slot) and
// the latest placement per subject.
type Ledger struct {
	grid     *TimeGrid
	rooms    [][]map[string]struct{}
	subjects map[string]Placement
}

/* NewLedger creates an empty ledger covering the grid. */
func NewLedger(grid *TimeGrid) *Ledger {
	l := &Ledger{
		grid:     grid,
		rooms:    make([][]map[string]struct{}, grid.Days()),
		subjects: make(map[string]Placement),
	}
	for d := range l.rooms {
		l.rooms[d] = make([]map[string]struct{}, grid.Slots())
		for s := range l.rooms[d] {
			l.rooms[d][s] = make(map[string]struct{})
		}
	}
	return l
}

// IsOccupied reports whether room is taken at (day, slot). Cells outside the
// grid count as occupied.
func (l *Ledger) IsOccupied(day, slot int, room string) bool {
	if !l.grid.Contains(Cell{Day: day, Slot: slot}) {
		return true
	}
	_, taken := l.rooms[day][slot][room]
	return taken
}

// Occupy claims room at (day, slot). Returns false if it was already taken.
func (l *Ledger) Occupy(day, slot int, room string) bool {
	if l.IsOccupied(day, slot, room) {
		return false
	}
	l.rooms[day][slot][room] = struct{}{}
	return true
}

// OccupiedCount returns how many rooms are taken at (day, slot).
func (l *Ledger) OccupiedCount(day, slot int) int {
	if !l.grid.Contains(Cell{Day: day, Slot: slot}) {
		return 0
	}
	return len(l.rooms[day][slot])
}

// RecordSubject replaces the subject's placement; only the latest is kept.
func (l *Ledger) RecordSubject(subject string, p Placement) {
	l.subjects[subject] = p
}

func (l *Ledger) Placement(subject string) (Placement, bool) {
	p, ok := l.subjects[subject]
	return p, ok
}

// HasConflict reports whether a subject conflicting with section, inside its
// cohort, currently sits on an overlapping slot range of the same day.
func (l *Ledger) HasConflict(section *model.ExamSection, matrix *ConflictMatrix, day, slot, span int) bool {
	key, ok := section.CourseYearKey()
	if !ok || matrix == nil {
		return false
	}
	for _, other := range matrix.Conflicts(key, section.SubjectID) {
		if p, placed := l.subjects[other]; placed && p.overlaps(day, slot, span) {
			return true
		}
	}
	return false
}
