package scheduler

import (
	"sort"

	"github.com/rhyrak/examsched/pkg/model"
)

// State is everything one run mutates. It is built fresh per run and passed
// explicitly to every phase.
type State struct {
	Grid      *TimeGrid
	Rooms     []string
	Ledger    *Ledger
	Matrix    *ConflictMatrix
	Sink      EventSink
	Scheduled []model.ScheduledExam

	placedCodes map[string]bool
	tally       struct{ scheduled, deferred int }
}

func NewState(grid *TimeGrid, rooms []string, matrix *ConflictMatrix, sink EventSink) *State {
	if sink == nil {
		sink = NopSink{}
	}
	return &State{
		Grid:        grid,
		Rooms:       rooms,
		Ledger:      NewLedger(grid),
		Matrix:      matrix,
		Sink:        sink,
		placedCodes: make(map[string]bool),
	}
}

// ScheduledSections counts distinct section codes placed so far.
func (s *State) ScheduledSections() int {
	return len(s.placedCodes)
}

// PlaceGroup puts every section of one subject at cell, each in its own room.
// Nothing is committed unless all of them fit.
func (s *State) PlaceGroup(group []*model.ExamSection, cell Cell, phase string) bool {
	if len(group) == 0 {
		return true
	}
	if !s.Grid.Contains(cell) {
		return false
	}

	double := false
	for _, sec := range group {
		if sec.IsDoubleUnit() {
			double = true
			break
		}
	}
	span := 1
	if double {
		// the second half needs a slot on the same day
		if !s.Grid.HasNext(cell.Slot) {
			return false
		}
		span = 2
	}

	for _, sec := range group {
		if s.Ledger.HasConflict(sec, s.Matrix, cell.Day, cell.Slot, span) {
			return false
		}
	}

	rooms, ok := s.assignRooms(group, cell, double)
	if !ok {
		return false
	}

	for i, sec := range group {
		room := rooms[i]
		s.Ledger.Occupy(cell.Day, cell.Slot, room)
		s.Scheduled = append(s.Scheduled, s.record(sec, cell.Day, cell.Slot, room, 1, phase))
		if sec.IsDoubleUnit() {
			s.Ledger.Occupy(cell.Day, cell.Slot+1, room)
			s.Scheduled = append(s.Scheduled, s.record(sec, cell.Day, cell.Slot+1, room, 2, phase))
		}
		s.placedCodes[sec.SectionCode] = true
	}
	s.Ledger.RecordSubject(group[0].SubjectID, Placement{Day: cell.Day, Slot: cell.Slot, Span: span})
	return true
}

// assignRooms picks a distinct free room for every section of group, each
// from the buildings its own department may use. Sections with the fewest
// candidates choose first. The result is indexed like group.
func (s *State) assignRooms(group []*model.ExamSection, cell Cell, double bool) ([]string, bool) {
	candidates := make([][]string, len(group))
	order := make([]int, len(group))
	for i, sec := range group {
		candidates[i] = AvailableRooms(sec, cell.Day, cell.Slot, s.Rooms, s.Ledger, double)
		if len(candidates[i]) == 0 {
			return nil, false
		}
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(candidates[order[a]]) < len(candidates[order[b]])
	})

	taken := make(map[string]bool, len(group))
	out := make([]string, len(group))
	for _, i := range order {
		for _, room := range candidates[i] {
			if !taken[room] {
				taken[room] = true
				out[i] = room
				break
			}
		}
		if out[i] == "" {
			return nil, false
		}
	}
	return out, true
}

// scanCells tries the cells in order and stops at the first success.
func (s *State) scanCells(group []*model.ExamSection, cells []Cell, phase string) bool {
	for _, c := range cells {
		if s.PlaceGroup(group, c, phase) {
			return true
		}
	}
	return false
}

func (s *State) record(sec *model.ExamSection, day, slot int, room string, part int, phase string) model.ScheduledExam {
	tier := Classify(sec).Tier
	return model.ScheduledExam{
		ExamSection:  *sec,
		Day:          day,
		DayLabel:     s.Grid.DayLabel(day),
		Slot:         slot,
		SlotLabel:    s.Grid.SlotLabel(slot),
		Room:         room,
		Tier:         tier,
		Priority:     tier.Weight(),
		LectureUnits: sec.LectureUnits,
		Part:         part,
		Phase:        phase,
	}
}
