package scheduler

import "github.com/rhyrak/examsched/pkg/model"

// orderedSet keeps insertion order so iteration is reproducible.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) has(v string) bool {
	_, ok := s.index[v]
	return ok
}

// ConflictMatrix maps course-year key -> subject -> subjects that must not
// share a timeslot with it. Read-only once built.
type ConflictMatrix struct {
	keys   []string
	order  map[string][]string
	groups map[string]map[string]*orderedSet
}

// BuildConflictMatrix derives cohort conflicts from the exam list. Sections
// without a course or year level register no conflicts.
func BuildConflictMatrix(sections []*model.ExamSection) *ConflictMatrix {
	m := &ConflictMatrix{
		order:  make(map[string][]string),
		groups: make(map[string]map[string]*orderedSet),
	}

	cohorts := make(map[string][]*model.ExamSection)
	for _, s := range sections {
		key, ok := s.CourseYearKey()
		if !ok {
			continue
		}
		if _, seen := cohorts[key]; !seen {
			m.keys = append(m.keys, key)
		}
		cohorts[key] = append(cohorts[key], s)
	}

	for _, key := range m.keys {
		group := cohorts[key]
		subjects := make(map[string]*orderedSet)
		m.groups[key] = subjects
		for _, a := range group {
			for _, b := range group {
				if a.SubjectID == b.SubjectID || a.SectionCode == b.SectionCode {
					continue
				}
				m.link(key, subjects, a.SubjectID, b.SubjectID)
				m.link(key, subjects, b.SubjectID, a.SubjectID)
			}
		}
	}
	return m
}

func (m *ConflictMatrix) link(key string, subjects map[string]*orderedSet, from, to string) {
	set, ok := subjects[from]
	if !ok {
		set = newOrderedSet()
		subjects[from] = set
		m.order[key] = append(m.order[key], from)
	}
	set.add(to)
}

// Keys returns the course-year keys in first-seen order.
func (m *ConflictMatrix) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Conflicts returns the subjects that conflict with subject inside the cohort.
func (m *ConflictMatrix) Conflicts(key, subject string) []string {
	set, ok := m.groups[key][subject]
	if !ok {
		return nil
	}
	return append([]string(nil), set.items...)
}

// Conflicting reports whether a and b may not share a timeslot in cohort key.
func (m *ConflictMatrix) Conflicting(key, a, b string) bool {
	set, ok := m.groups[key][a]
	return ok && set.has(b)
}

// Subjects lists the subjects of a cohort that have at least one conflict,
// in the order they were first linked.
func (m *ConflictMatrix) Subjects(key string) []string {
	return append([]string(nil), m.order[key]...)
}
