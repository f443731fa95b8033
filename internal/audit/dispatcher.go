package audit

import (
	"time"

	"go.uber.org/zap"
)

// Event is one completed tool invocation. Code is zero on success, otherwise
// the JSON-RPC error code the caller received.
type Event struct {
	Tool     string
	Code     int
	Message  string
	Duration time.Duration
}

// Dispatcher writes the tool-call audit trail off the request path. Events
// are dropped rather than ever blocking a tool call.
type Dispatcher struct {
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		log:   logger,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		fields := []zap.Field{
			zap.String("tool", ev.Tool),
			zap.Duration("duration", ev.Duration),
		}
		if ev.Code != 0 {
			fields = append(fields, zap.Int("code", ev.Code), zap.String("error", ev.Message))
			d.log.Warn("tool call failed", fields...)
			continue
		}
		d.log.Info("tool call ok", fields...)
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("tool", ev.Tool))
	}
}
