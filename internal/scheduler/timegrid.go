package scheduler

import "fmt"

// SlotLabels are the fixed exam periods of a day, in order.
var SlotLabels = [8]string{
	"07:30-09:00",
	"09:00-10:30",
	"10:30-12:00",
	"12:00-13:30",
	"13:30-15:00",
	"15:00-16:30",
	"16:30-18:00",
	"18:00-19:30",
}

// Cell is one (day, slot) position in the grid.
type Cell struct {
	Day  int
	Slot int
}

// TimeGrid is the search space: a number of days times the fixed slots.
type TimeGrid struct {
	days int
}

func NewTimeGrid(days int) (*TimeGrid, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}
	return &TimeGrid{days: days}, nil
}

func (g *TimeGrid) Days() int  { return g.days }
func (g *TimeGrid) Slots() int { return len(SlotLabels) }

func (g *TimeGrid) DayLabel(day int) string {
	return fmt.Sprintf("Day %d", day+1)
}

func (g *TimeGrid) SlotLabel(slot int) string {
	if slot < 0 || slot >= len(SlotLabels) {
		return ""
	}
	return SlotLabels[slot]
}

// Contains reports whether the cell lies inside the grid.
func (g *TimeGrid) Contains(c Cell) bool {
	return c.Day >= 0 && c.Day < g.days && c.Slot >= 0 && c.Slot < len(SlotLabels)
}

// HasNext reports whether slot is followed by another slot on the same day.
func (g *TimeGrid) HasNext(slot int) bool {
	return slot >= 0 && slot+1 < len(SlotLabels)
}

// Cells lists every cell, day-major and slot-minor.
func (g *TimeGrid) Cells() []Cell {
	cells := make([]Cell, 0, g.days*len(SlotLabels))
	for d := 0; d < g.days; d++ {
		for s := range SlotLabels {
			cells = append(cells, Cell{Day: d, Slot: s})
		}
	}
	return cells
}
