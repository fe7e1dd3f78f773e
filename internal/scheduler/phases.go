package scheduler

import (
	"context"
	"sort"

	"github.com/rhyrak/examsched/pkg/model"
)

// pool holds the sections still waiting for a phase. Each phase takes its
// own slice and appends what it could not place to carried.
type pool struct {
	genEd   []*model.ExamSection
	math    []*model.ExamSection
	arch    []*model.ExamSection
	major   []*model.ExamSection
	carried []*model.ExamSection
}

func newPool(sections []*model.ExamSection) *pool {
	p := &pool{}
	for _, s := range sections {
		switch Classify(s).Tier {
		case model.TierGenEd:
			p.genEd = append(p.genEd, s)
		case model.TierMath:
			p.math = append(p.math, s)
		case model.TierArch:
			p.arch = append(p.arch, s)
		default:
			p.major = append(p.major, s)
		}
	}
	return p
}

type phase interface {
	name() string
	run(ctx context.Context, st *State, p *pool) error
}

func newPhase(name string, cfg *Configuration) phase {
	switch name {
	case PhaseGenEd:
		return genEdPhase{}
	case PhasePriority:
		return priorityPhase{}
	case PhaseMajor:
		return majorPhase{batchSize: cfg.BatchSize}
	case PhaseRelaxed:
		return relaxedPhase{}
	}
	return nil
}

// placeOrDefer scans group over cells and reports the outcome.
func placeOrDefer(st *State, p *pool, group []*model.ExamSection, cells []Cell, phaseName, category string) bool {
	ok := st.scanCells(group, cells, phaseName)
	ev := Event{
		Phase:    phaseName,
		Category: category,
		Subject:  group[0].SubjectID,
		Sections: len(group),
	}
	if ok {
		ev.Kind = EventGroupPlaced
		ev.Scheduled = len(group)
		st.tally.scheduled += len(group)
	} else {
		ev.Kind = EventGroupDeferred
		ev.Deferred = len(group)
		st.tally.deferred += len(group)
		p.carried = append(p.carried, group...)
	}
	st.Sink.Observe(ev)
	return ok
}

// genEdPhase places general-education subjects on their category's pinned
// blocks, or anywhere on the grid for categories without blocks.
type genEdPhase struct{}

func (genEdPhase) name() string { return PhaseGenEd }

func (ph genEdPhase) run(ctx context.Context, st *State, p *pool) error {
	byCategory := make(map[string][]*model.ExamSection)
	for _, s := range p.genEd {
		cat := Classify(s).Category
		byCategory[cat] = append(byCategory[cat], s)
	}
	p.genEd = nil

	for _, cat := range GenEdCategories {
		cells := st.Grid.Cells()
		if len(cat.Blocks) > 0 {
			cells = blockCells(st.Grid, cat.Blocks)
		}
		for _, group := range groupBySubject(byCategory[cat.Name]) {
			if err := ctx.Err(); err != nil {
				return err
			}
			placeOrDefer(st, p, group, cells, ph.name(), cat.Name)
		}
	}
	return nil
}

// blockCells keeps the declared order and drops blocks outside the grid.
func blockCells(grid *TimeGrid, blocks []Block) []Cell {
	cells := make([]Cell, 0, len(blocks))
	for _, b := range blocks {
		c := Cell{Day: b.Day, Slot: b.Slot}
		if grid.Contains(c) {
			cells = append(cells, c)
		}
	}
	return cells
}

// priorityPhase scans mathematics subjects, then architecture subjects.
type priorityPhase struct{}

func (priorityPhase) name() string { return PhasePriority }

func (ph priorityPhase) run(ctx context.Context, st *State, p *pool) error {
	tiers := []struct {
		label    string
		sections []*model.ExamSection
	}{
		{model.TierMath.String(), p.math},
		{model.TierArch.String(), p.arch},
	}
	p.math, p.arch = nil, nil

	cells := st.Grid.Cells()
	for _, tier := range tiers {
		for _, group := range groupBySubject(tier.sections) {
			if err := ctx.Err(); err != nil {
				return err
			}
			placeOrDefer(st, p, group, cells, ph.name(), tier.label)
		}
	}
	return nil
}

// majorPhase places the remaining subjects smallest group first, splitting
// groups larger than batchSize into independently placed batches.
type majorPhase struct {
	batchSize int
}

func (majorPhase) name() string { return PhaseMajor }

func (ph majorPhase) run(ctx context.Context, st *State, p *pool) error {
	groups := groupBySubject(p.major)
	p.major = nil
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i]) < len(groups[j])
	})

	cells := st.Grid.Cells()
	for _, group := range groups {
		for _, batch := range splitBatches(group, ph.batchSize) {
			if err := ctx.Err(); err != nil {
				return err
			}
			placeOrDefer(st, p, batch, cells, ph.name(), model.TierMajor.String())
		}
	}
	return nil
}

// relaxedPhase drops group coordination and retries every carried section
// on its own.
type relaxedPhase struct{}

func (relaxedPhase) name() string { return PhaseRelaxed }

func (ph relaxedPhase) run(ctx context.Context, st *State, p *pool) error {
	pending := p.carried
	p.carried = nil

	cells := st.Grid.Cells()
	for i, sec := range pending {
		if err := ctx.Err(); err != nil {
			p.carried = append(p.carried, pending[i:]...)
			return err
		}
		placeOrDefer(st, p, []*model.ExamSection{sec}, cells, ph.name(), Classify(sec).Tier.String())
	}
	return nil
}
