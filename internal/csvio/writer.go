package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/examsched/pkg/model"
)

// WriteSchedule writes one row per placement, ordered by day, slot and room.
func WriteSchedule(out io.Writer, entries []model.ScheduledExam, delim rune) error {
	rows := formatSchedule(entries)
	w := csv.NewWriter(out)
	if delim == 0 {
		delim = DefaultDelimiter
	}
	w.Comma = delim
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(w)); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}

// ExportSchedule writes the schedule to path, replacing any existing file.
func ExportSchedule(entries []model.ScheduledExam, path string, delim rune) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create schedule file: %w", err)
	}
	if err := WriteSchedule(out, entries, delim); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ExportScheduleString returns the schedule as CSV text.
func ExportScheduleString(entries []model.ScheduledExam, delim rune) (string, error) {
	var buf bytes.Buffer
	if err := WriteSchedule(&buf, entries, delim); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintSchedule prints the timetable grouped by department.
func PrintSchedule(out io.Writer, entries []model.ScheduledExam) {
	rows := formatSchedule(entries)
	slices.SortStableFunc(rows, func(a, b *model.ScheduleCSVRow) int {
		if dep := strings.Compare(a.Department, b.Department); dep != 0 {
			return dep
		}
		if day := a.Day - b.Day; day != 0 {
			return day
		}
		if slot := a.Slot - b.Slot; slot != 0 {
			return slot
		}
		return strings.Compare(a.SectionCode, b.SectionCode)
	})

	deps := make(map[string]bool)
	for _, r := range rows {
		if !deps[r.Department] {
			deps[r.Department] = true
			pad := max(32-len(r.Department), 0)
			fmt.Fprintf(out, "\n%s %s %s\n", strings.Repeat("-", pad/2), r.Department, strings.Repeat("-", pad-pad/2))
		}
		fmt.Fprintf(out, "%-7s %-12s %-10s %-12s %-9s %s\n", r.DayLabel, r.SlotLabel, r.SubjectID, r.SectionCode, r.Room, r.Tier)
	}
	fmt.Fprintf(out, "Printed rows: %d\n", len(rows))
}

func formatSchedule(entries []model.ScheduledExam) []*model.ScheduleCSVRow {
	formatted := make([]*model.ScheduleCSVRow, 0, len(entries))
	for i := range entries {
		formatted = append(formatted, entries[i].ToCSVRow())
	}
	slices.SortStableFunc(formatted, func(a, b *model.ScheduleCSVRow) int {
		if day := a.Day - b.Day; day != 0 {
			return day
		}
		if slot := a.Slot - b.Slot; slot != 0 {
			return slot
		}
		return strings.Compare(a.Room, b.Room)
	})
	return formatted
}
