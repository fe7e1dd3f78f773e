package scheduler

// EventKind names a point in a run worth reporting.
type EventKind string

const (
	EventPhaseStarted   EventKind = "phase_started"
	EventGroupPlaced    EventKind = "group_placed"
	EventGroupDeferred  EventKind = "group_deferred"
	EventPhaseCompleted EventKind = "phase_completed"
	EventRunCompleted   EventKind = "run_completed"
)

// MaxReportedUnscheduled caps the section codes attached to EventRunCompleted.
const MaxReportedUnscheduled = 20

// Event is an observation of the engine. Sinks must not feed anything back.
type Event struct {
	Kind        EventKind
	Phase       string
	Category    string
	Subject     string
	Sections    int
	Scheduled   int
	Deferred    int
	Coverage    float64
	Unscheduled []string
}

type EventSink interface {
	Observe(Event)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(Event)

func (f SinkFunc) Observe(e Event) { f(e) }

type NopSink struct{}

func (NopSink) Observe(Event) {}

// MultiSink fans events out to every sink in order.
type MultiSink []EventSink

func (m MultiSink) Observe(e Event) {
	for _, s := range m {
		if s != nil {
			s.Observe(e)
		}
	}
}
