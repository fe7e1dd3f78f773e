package scheduler

import (
	"context"
	"fmt"

	"github.com/rhyrak/examsched/pkg/model"
)

// PhaseStats summarises one phase of a run. TotalScheduled is the running
// count of distinct sections placed once the phase finished.
type PhaseStats struct {
	Phase          string
	Scheduled      int
	Deferred       int
	TotalScheduled int
}

// Result is the outcome of a run.
type Result struct {
	Grid        *TimeGrid
	Matrix      *ConflictMatrix
	Scheduled   []model.ScheduledExam
	Unscheduled []*model.ExamSection
	Excluded    []*model.ExamSection
	Phases      []PhaseStats
	Eligible    int
}

// ScheduledSections counts distinct section codes with at least one placement.
func (r *Result) ScheduledSections() int {
	seen := make(map[string]bool, len(r.Scheduled))
	for _, s := range r.Scheduled {
		seen[s.SectionCode] = true
	}
	return len(seen)
}

// Coverage is the percentage of eligible sections that were placed.
func (r *Result) Coverage() float64 {
	if r.Eligible == 0 {
		return 100
	}
	return float64(r.ScheduledSections()) / float64(r.Eligible) * 100
}

// UnscheduledCodes returns the section codes left out, in carry order.
func (r *Result) UnscheduledCodes() []string {
	codes := make([]string, 0, len(r.Unscheduled))
	for _, s := range r.Unscheduled {
		codes = append(codes, s.SectionCode)
	}
	return codes
}

// Scheduler runs the configured phases over a fresh ledger on every call.
type Scheduler struct {
	cfg    Configuration
	phases []phase
	sink   EventSink
}

func New(cfg *Configuration, sink EventSink) (*Scheduler, error) {
	if cfg == nil {
		cfg = NewDefaultConfiguration()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopSink{}
	}
	s := &Scheduler{cfg: *cfg, sink: sink}
	for _, name := range cfg.Phases {
		s.phases = append(s.phases, newPhase(name, cfg))
	}
	return s, nil
}

// Run assigns each section a (day, slot, room). Sections that cannot be
// placed end up in Result.Unscheduled; only invalid input or a cancelled
// context produce an error.
func (s *Scheduler) Run(ctx context.Context, sections []*model.ExamSection, rooms []string) (*Result, error) {
	rooms = uniqueRooms(rooms)
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	grid, err := NewTimeGrid(s.cfg.NumberOfDays)
	if err != nil {
		return nil, err
	}

	eligible := make([]*model.ExamSection, 0, len(sections))
	var excluded []*model.ExamSection
	for _, sec := range sections {
		if sec.Department == StudentAffairsDept {
			excluded = append(excluded, sec)
			continue
		}
		eligible = append(eligible, sec)
	}

	matrix := BuildConflictMatrix(eligible)
	st := NewState(grid, rooms, matrix, s.sink)
	p := newPool(eligible)
	s.carryUnconfigured(p)

	res := &Result{Grid: grid, Matrix: matrix, Excluded: excluded, Eligible: len(eligible)}
	for _, ph := range s.phases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st.tally.scheduled, st.tally.deferred = 0, 0
		s.sink.Observe(Event{Kind: EventPhaseStarted, Phase: ph.name()})
		if err := ph.run(ctx, st, p); err != nil {
			return nil, fmt.Errorf("phase %s: %w", ph.name(), err)
		}
		stats := PhaseStats{
			Phase:          ph.name(),
			Scheduled:      st.tally.scheduled,
			Deferred:       st.tally.deferred,
			TotalScheduled: st.ScheduledSections(),
		}
		res.Phases = append(res.Phases, stats)
		s.sink.Observe(Event{
			Kind:      EventPhaseCompleted,
			Phase:     ph.name(),
			Scheduled: stats.Scheduled,
			Deferred:  stats.Deferred,
		})
	}

	res.Scheduled = st.Scheduled
	res.Unscheduled = p.carried
	codes := res.UnscheduledCodes()
	if len(codes) > MaxReportedUnscheduled {
		codes = codes[:MaxReportedUnscheduled]
	}
	s.sink.Observe(Event{
		Kind:        EventRunCompleted,
		Sections:    res.Eligible,
		Scheduled:   res.ScheduledSections(),
		Deferred:    len(res.Unscheduled),
		Coverage:    res.Coverage(),
		Unscheduled: codes,
	})
	return res, nil
}

// carryUnconfigured forwards tiers whose phase is not part of the run.
func (s *Scheduler) carryUnconfigured(p *pool) {
	configured := make(map[string]bool, len(s.phases))
	for _, ph := range s.phases {
		configured[ph.name()] = true
	}
	if !configured[PhaseGenEd] {
		p.carried = append(p.carried, p.genEd...)
		p.genEd = nil
	}
	if !configured[PhasePriority] {
		p.carried = append(p.carried, p.math...)
		p.carried = append(p.carried, p.arch...)
		p.math, p.arch = nil, nil
	}
	if !configured[PhaseMajor] {
		p.carried = append(p.carried, p.major...)
		p.major = nil
	}
}
