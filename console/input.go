// This file is part of VMDisplay.
//
// VMDisplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VMDisplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VMDisplay.  If not, see <https://www.gnu.org/licenses/>.

package console

import (
	"github.com/bilelmoussaoui/vmdisplay/logger"
)

// Button is a guest pointer button
type Button int

// List of valid Button values
const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonSide
	ButtonExtra
	ButtonWheelUp
	ButtonWheelDown
	ButtonWheelLeft
	ButtonWheelRight
)

// Axis is a guest pointer axis
type Axis int

// List of valid Axis values
const (
	AxisX Axis = iota
	AxisY
)

// InputSink receives synthesized guest input events. Events accumulate until
// Sync commits them as one batch. Every synthesized event or group of related
// events must be followed by a Sync.
type InputSink interface {
	QueueButton(btn Button, down bool)
	QueueAbsolute(axis Axis, value, min, max int)
	QueueRelative(axis Axis, delta int)
	KeyEvent(code KeyCode, down bool)
	Sync()
}

// EventKind discriminates the variants of Event
type EventKind int

// List of valid EventKind values
const (
	EventButton EventKind = iota
	EventAbsolute
	EventRelative
	EventKey
)

// Event is a single guest input device event
type Event struct {
	Kind EventKind

	Button Button
	Down   bool

	Axis     Axis
	Value    int
	Min, Max int
	Delta    int

	Code KeyCode
}

// Queue is a bounded InputSink. Events accumulate in a pending batch and are
// committed on Sync. Batches are dropped, with a log entry, if the consumer
// falls behind.
type Queue struct {
	pending []Event
	batches chan []Event
}

// NewQueue creates an input Queue that buffers up to depth committed batches
func NewQueue(depth int) *Queue {
	return &Queue{
		batches: make(chan []Event, depth),
	}
}

// QueueButton implements the InputSink interface
func (q *Queue) QueueButton(btn Button, down bool) {
	q.pending = append(q.pending, Event{Kind: EventButton, Button: btn, Down: down})
}

// QueueAbsolute implements the InputSink interface
func (q *Queue) QueueAbsolute(axis Axis, value, min, max int) {
	q.pending = append(q.pending, Event{Kind: EventAbsolute, Axis: axis, Value: value, Min: min, Max: max})
}

// QueueRelative implements the InputSink interface
func (q *Queue) QueueRelative(axis Axis, delta int) {
	q.pending = append(q.pending, Event{Kind: EventRelative, Axis: axis, Delta: delta})
}

// KeyEvent implements the InputSink interface
func (q *Queue) KeyEvent(code KeyCode, down bool) {
	q.pending = append(q.pending, Event{Kind: EventKey, Code: code, Down: down})
}

// Sync implements the InputSink interface
func (q *Queue) Sync() {
	if len(q.pending) == 0 {
		return
	}
	batch := q.pending
	q.pending = nil

	select {
	case q.batches <- batch:
	default:
		logger.Logf("input", "dropped batch of %d events", len(batch))
	}
}

// Batches returns the channel of committed event batches
func (q *Queue) Batches() <-chan []Event {
	return q.batches
}
