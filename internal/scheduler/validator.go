package scheduler

import (
	"fmt"
	"strings"
)

// Report is the outcome of Validate.
type Report struct {
	Valid            bool
	RoomCollisions   int
	CohortCollisions int
	BrokenPairs      int
	IneligibleRooms  int
	UnscheduledCount int
	Message          string
}

type roomKey struct {
	day, slot int
	room      string
}

// Validate checks a result for double-booked rooms, conflicting subjects in
// the same slot, split double-unit pairs and rooms outside a section's
// allowed buildings. Unscheduled sections make the report invalid too.
func Validate(res *Result) Report {
	var rep Report
	var message string

	rep.UnscheduledCount = len(res.Unscheduled)
	if rep.UnscheduledCount > 0 {
		message = fmt.Sprintf("- There are %d unscheduled sections:\n", rep.UnscheduledCount)
		for _, un := range res.Unscheduled {
			message += fmt.Sprintf("    %s %s %s %d\n", un.SectionCode, un.SubjectID, un.Department, un.Students)
		}
	}

	used := make(map[roomKey]string)
	for _, s := range res.Scheduled {
		k := roomKey{s.Day, s.Slot, s.Room}
		if prev, taken := used[k]; taken {
			rep.RoomCollisions++
			message += fmt.Sprintf("- Room %s assigned to %s and %s on %s %s\n", s.Room, prev, s.SectionCode, s.DayLabel, s.SlotLabel)
			continue
		}
		used[k] = s.SectionCode
		if !EligibleRoom(&s.ExamSection, s.Room) {
			rep.IneligibleRooms++
			message += fmt.Sprintf("- Room %s is not allowed for %s (%s)\n", s.Room, s.SectionCode, s.Department)
		}
	}

	// cohort collisions: conflicting subjects sharing a (day, slot)
	type cell struct{ day, slot int }
	bySlot := make(map[cell][]int)
	var cells []cell
	for i, s := range res.Scheduled {
		c := cell{s.Day, s.Slot}
		if _, seen := bySlot[c]; !seen {
			cells = append(cells, c)
		}
		bySlot[c] = append(bySlot[c], i)
	}
	for _, c := range cells {
		idx := bySlot[c]
		for x := 0; x < len(idx); x++ {
			for y := x + 1; y < len(idx); y++ {
				a, b := res.Scheduled[idx[x]], res.Scheduled[idx[y]]
				key, ok := a.CourseYearKey()
				if !ok {
					continue
				}
				if bKey, _ := b.CourseYearKey(); bKey != key {
					continue
				}
				if res.Matrix.Conflicting(key, a.SubjectID, b.SubjectID) {
					rep.CohortCollisions++
					message += fmt.Sprintf("- Conflicting subjects %s and %s placed together on %s %s\n", a.SubjectID, b.SubjectID, a.DayLabel, a.SlotLabel)
				}
			}
		}
	}

	// double-unit pairs: same room, same day, consecutive slots
	parts := make(map[string][]int)
	var codes []string
	for i, s := range res.Scheduled {
		if s.ExamSection.IsDoubleUnit() {
			if _, seen := parts[s.SectionCode]; !seen {
				codes = append(codes, s.SectionCode)
			}
			parts[s.SectionCode] = append(parts[s.SectionCode], i)
		}
	}
	for _, code := range codes {
		if !pairIsContiguous(res, parts[code]) {
			rep.BrokenPairs++
			message += fmt.Sprintf("- Double-unit section %s is not on two consecutive slots of one room\n", code)
		}
	}

	rep.Valid = rep.UnscheduledCount == 0 && rep.RoomCollisions == 0 &&
		rep.CohortCollisions == 0 && rep.BrokenPairs == 0 && rep.IneligibleRooms == 0

	header := []string{
		check("Room collision check", rep.RoomCollisions == 0),
		check("Cohort collision check", rep.CohortCollisions == 0),
		check("Double-unit pairing check", rep.BrokenPairs == 0),
		check("Building eligibility check", rep.IneligibleRooms == 0),
		check("Section has room check", rep.UnscheduledCount == 0),
	}
	rep.Message = strings.Join(header, "") + message
	return rep
}

func pairIsContiguous(res *Result, idx []int) bool {
	if len(idx)%2 != 0 {
		return false
	}
	for i := 0; i < len(idx); i += 2 {
		first, second := res.Scheduled[idx[i]], res.Scheduled[idx[i+1]]
		if first.Room != second.Room || first.Day != second.Day || second.Slot != first.Slot+1 {
			return false
		}
	}
	return true
}

func check(name string, ok bool) string {
	if ok {
		return "[  OK]: " + name + ".\n"
	}
	return "[FAIL]: " + name + ".\n"
}
