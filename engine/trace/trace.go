// Package trace records the ordered, append-only log of one resolution
// or tick call. The text of each line is a stable contract compared
// verbatim by golden tests.
package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator opens every ability resolution.
const Separator = "------------------------------------------"

// Event is a single immutable trace line. A line may contain embedded
// newlines; it is still one event.
type Event struct {
	Msg string
}

// Trace is an ordered list of events. The zero value is ready to use.
type Trace struct {
	events []Event
}

// New returns an empty trace.
func New() *Trace {
	return &Trace{}
}

// Add appends a line.
func (t *Trace) Add(msg string) {
	t.events = append(t.events, Event{Msg: msg})
}

// Addf appends a formatted line.
func (t *Trace) Addf(format string, args ...any) {
	t.Add(fmt.Sprintf(format, args...))
}

// Len returns the number of events.
func (t *Trace) Len() int {
	return len(t.events)
}

// Events returns a copy of the recorded events.
func (t *Trace) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Lines returns the event messages in order.
func (t *Trace) Lines() []string {
	out := make([]string, len(t.events))
	for i, e := range t.events {
		out[i] = e.Msg
	}
	return out
}

// String renders every event followed by a newline.
func (t *Trace) String() string {
	var b strings.Builder
	for _, e := range t.events {
		b.WriteString(e.Msg)
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatFloat renders v with exactly two decimal places.
func FormatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 2, 32)
}
