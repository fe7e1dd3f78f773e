package logging

import (
	"go.uber.org/zap"

	"github.com/rhyrak/examsched/internal/scheduler"
)

// EventSink writes one log line per engine event. Group-level events go to
// debug, phase and run summaries to info.
type EventSink struct {
	log *zap.Logger
}

func NewEventSink(l *zap.Logger) *EventSink {
	return &EventSink{log: l.Named("scheduler")}
}

func (s *EventSink) Observe(e scheduler.Event) {
	switch e.Kind {
	case scheduler.EventPhaseStarted:
		s.log.Info("phase started", zap.String("phase", e.Phase))
	case scheduler.EventGroupPlaced:
		s.log.Debug("group placed",
			zap.String("phase", e.Phase),
			zap.String("category", e.Category),
			zap.String("subject", e.Subject),
			zap.Int("sections", e.Sections),
		)
	case scheduler.EventGroupDeferred:
		s.log.Debug("group deferred",
			zap.String("phase", e.Phase),
			zap.String("category", e.Category),
			zap.String("subject", e.Subject),
			zap.Int("sections", e.Sections),
		)
	case scheduler.EventPhaseCompleted:
		s.log.Info("phase completed",
			zap.String("phase", e.Phase),
			zap.Int("scheduled", e.Scheduled),
			zap.Int("deferred", e.Deferred),
		)
	case scheduler.EventRunCompleted:
		fields := []zap.Field{
			zap.Int("sections", e.Sections),
			zap.Int("scheduled", e.Scheduled),
			zap.Int("unscheduled", e.Deferred),
			zap.Float64("coverage", e.Coverage),
		}
		if len(e.Unscheduled) > 0 {
			fields = append(fields, zap.Strings("unscheduled_sample", e.Unscheduled))
		}
		s.log.Info("run completed", fields...)
	default:
		s.log.Warn("unknown scheduler event", zap.String("kind", string(e.Kind)))
	}
}
