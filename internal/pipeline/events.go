package pipeline

// EventType classifies stream events.
type EventType string

const (
	// EventProgress reports an intermediate status update.
	EventProgress EventType = "progress"
	// EventResult terminates a successful run and carries the output files.
	EventResult EventType = "result"
	// EventError terminates a failed run.
	EventError EventType = "error"
)

// Event is one entry in a run's progress stream.
type Event struct {
	Type    EventType         `json:"type"`
	Message string            `json:"message,omitempty"`
	Stage   string            `json:"stage,omitempty"`
	Current int               `json:"current,omitempty"`
	Total   int               `json:"total,omitempty"`
	Status  string            `json:"status,omitempty"`
	Files   map[string]string `json:"files,omitempty"`
	Log     string            `json:"log,omitempty"`
}

// Terminal reports whether the event ends the stream.
func (e Event) Terminal() bool {
	return e.Type == EventResult || e.Type == EventError
}

// Stream delivers a run's events in order. The channel is closed after the
// single terminal event. One producer (the job goroutine), one consumer.
type Stream struct {
	events chan Event
}

const streamBuffer = 64

func newStream() *Stream {
	return &Stream{events: make(chan Event, streamBuffer)}
}

// Events returns the receive side of the stream.
func (s *Stream) Events() <-chan Event {
	return s.events
}

func (s *Stream) send(event Event) {
	s.events <- event
}

func (s *Stream) close() {
	close(s.events)
}
