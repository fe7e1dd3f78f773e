package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"

	"github.com/rhyrak/examsched/pkg/model"
)

// DefaultDelimiter is used when a zero rune is passed.
const DefaultDelimiter = ','

var (
	ErrDuplicateSection = errors.New("duplicate section code")
	ErrDuplicateRoom    = errors.New("duplicate room id")
	ErrInvalidRow       = errors.New("invalid row")
)

var validate = validator.New()

func newReader(in io.Reader, delim rune) gocsv.CSVReader {
	r := csv.NewReader(in)
	if delim == 0 {
		delim = DefaultDelimiter
	}
	r.Comma = delim
	r.TrimLeadingSpace = true
	return r
}

// LoadExams parses exam sections. Every row must carry a subject id and a
// section code, and section codes must be unique.
func LoadExams(in io.Reader, delim rune) ([]*model.ExamSection, error) {
	exams := []*model.ExamSection{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &exams); err != nil {
		return nil, fmt.Errorf("parse exams: %w", err)
	}

	seen := make(map[string]int, len(exams))
	for i, e := range exams {
		line := i + 2
		e.SubjectID = strings.TrimSpace(e.SubjectID)
		e.SectionCode = strings.TrimSpace(e.SectionCode)
		e.Course = strings.TrimSpace(e.Course)
		e.YearLevel = strings.TrimSpace(e.YearLevel)
		e.Department = strings.TrimSpace(e.Department)
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("%w at line %d: %v", ErrInvalidRow, line, err)
		}
		if prev, dup := seen[e.SectionCode]; dup {
			return nil, fmt.Errorf("%w %q at lines %d and %d", ErrDuplicateSection, e.SectionCode, prev, line)
		}
		seen[e.SectionCode] = line
	}
	return exams, nil
}

// LoadExamsFile opens path and calls LoadExams.
func LoadExamsFile(path string, delim rune) ([]*model.ExamSection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open exams file: %w", err)
	}
	defer f.Close()
	return LoadExams(f, delim)
}

// LoadRooms parses room identifiers. Blank rows are skipped.
func LoadRooms(in io.Reader, delim rune) ([]*model.Room, error) {
	parsed := []*model.Room{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &parsed); err != nil {
		return nil, fmt.Errorf("parse rooms: %w", err)
	}

	rooms := make([]*model.Room, 0, len(parsed))
	seen := make(map[string]bool, len(parsed))
	for _, r := range parsed {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			continue
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w %q", ErrDuplicateRoom, r.ID)
		}
		seen[r.ID] = true
		rooms = append(rooms, r)
	}
	return rooms, nil
}

// LoadRoomsFile opens path and calls LoadRooms.
func LoadRoomsFile(path string, delim rune) ([]*model.Room, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rooms file: %w", err)
	}
	defer f.Close()
	return LoadRooms(f, delim)
}

// LoadSchedule reads back rows written by WriteSchedule.
func LoadSchedule(in io.Reader, delim rune) ([]*model.ScheduleCSVRow, error) {
	rows := []*model.ScheduleCSVRow{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &rows); err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	return rows, nil
}
