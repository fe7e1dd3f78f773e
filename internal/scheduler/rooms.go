package scheduler

import (
	"slices"
	"strings"

	"github.com/rhyrak/examsched/pkg/model"
)

// AllowedBuildings returns the buildings a subject may use. preferred is true
// when the order of the result is a preference (architecture) rather than a set.
func AllowedBuildings(subjectID, department string) (buildings []string, preferred bool) {
	if IsArch(subjectID) {
		return ArchitectureBuildings, true
	}
	dept := strings.ToUpper(department)
	for _, entry := range DepartmentBuildings {
		if strings.Contains(dept, strings.ToUpper(entry.Match)) {
			return entry.Buildings, false
		}
	}
	return Buildings, false
}

// AvailableRooms returns the building-eligible rooms that are free at
// (day, slot), and at slot+1 too when double is set and the day has a next
// slot. Rooms keep their input order, grouped by building when the allowed
// set has a preference.
func AvailableRooms(section *model.ExamSection, day, slot int, rooms []string, ledger *Ledger, double bool) []string {
	allowed, preferred := AllowedBuildings(section.SubjectID, section.Department)
	checkNext := double && ledger.grid.HasNext(slot)

	free := func(room string) bool {
		if ledger.IsOccupied(day, slot, room) {
			return false
		}
		return !checkNext || !ledger.IsOccupied(day, slot+1, room)
	}

	var out []string
	if preferred {
		for _, building := range allowed {
			for _, room := range rooms {
				if model.BuildingPrefix(room) == building && free(room) {
					out = append(out, room)
				}
			}
		}
		return out
	}
	for _, room := range rooms {
		if slices.Contains(allowed, model.BuildingPrefix(room)) && free(room) {
			out = append(out, room)
		}
	}
	return out
}

// EligibleRoom reports whether room's building is allowed for the section.
func EligibleRoom(section *model.ExamSection, room string) bool {
	allowed, _ := AllowedBuildings(section.SubjectID, section.Department)
	return slices.Contains(allowed, model.BuildingPrefix(room))
}
