package audit

import "log"

type Event struct {
	BusinessID uint
	UserID     *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

type Sink interface {
	Log(businessID uint, userID *uint, action, entity string, entityID *uint, metadata any) error
}

// LogSink writes audit events to the process log. Used in fixture mode,
// where no database backs the audit trail.
type LogSink struct{}

func (LogSink) Log(businessID uint, userID *uint, action, entity string, entityID *uint, metadata any) error {
	log.Printf("audit: business=%d action=%s entity=%s", businessID, action, entity)
	return nil
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Log(
			ev.BusinessID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// full queue must never block the request path
		log.Println("audit queue full, dropping event")
	}
}
