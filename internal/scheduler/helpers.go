package scheduler

import (
	"fmt"
	"slices"

	"github.com/rhyrak/examsched/pkg/model"
)

// Phase names accepted in Configuration.Phases.
const (
	PhaseGenEd    = "gen-ed"
	PhasePriority = "priority"
	PhaseMajor    = "major"
	PhaseRelaxed  = "relaxed"
)

type Configuration struct {
	NumberOfDays int
	BatchSize    int
	Phases       []string
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		NumberOfDays: 5,
		BatchSize:    10,
		Phases:       []string{PhaseGenEd, PhasePriority, PhaseMajor, PhaseRelaxed},
	}
}

// Validate checks the configured grid and phase list.
func (c *Configuration) Validate() error {
	if c.NumberOfDays <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDays, c.NumberOfDays)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	seen := make(map[string]bool, len(c.Phases))
	for _, p := range c.Phases {
		if !slices.Contains(knownPhases, p) {
			return fmt.Errorf("%w: %q", ErrUnknownPhase, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: %q", ErrDuplicatePhase, p)
		}
		seen[p] = true
	}
	return nil
}

var knownPhases = []string{PhaseGenEd, PhasePriority, PhaseMajor, PhaseRelaxed}

// groupBySubject buckets sections by subject id, in first-encountered order.
func groupBySubject(sections []*model.ExamSection) [][]*model.ExamSection {
	index := make(map[string]int)
	var groups [][]*model.ExamSection
	for _, s := range sections {
		i, ok := index[s.SubjectID]
		if !ok {
			i = len(groups)
			index[s.SubjectID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], s)
	}
	return groups
}

// splitBatches cuts a group into consecutive chunks of at most size sections.
func splitBatches(group []*model.ExamSection, size int) [][]*model.ExamSection {
	if size <= 0 || len(group) <= size {
		return [][]*model.ExamSection{group}
	}
	var batches [][]*model.ExamSection
	for start := 0; start < len(group); start += size {
		end := min(start+size, len(group))
		batches = append(batches, group[start:end])
	}
	return batches
}

// uniqueRooms drops repeated room ids, keeping the first occurrence.
func uniqueRooms(rooms []string) []string {
	seen := make(map[string]bool, len(rooms))
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
