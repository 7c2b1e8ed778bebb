// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

// A ClockEvent carries the clock's level (true during a tick, false during
// a tock) and its monotonic tick counter.
type ClockEvent struct {
	Level bool
	Ticks uint64
}

// Clock is the source of two-phase tick/tock events driving every sequential
// element in a circuit. Initial level is low, initial count is zero; a Tick
// toggles the level and, on the low-to-high transition, increments the
// counter. Clock is owned by the outer driver (a Circuit, or a test
// harness); chips never call Tick themselves — they only ever observe the
// clock's level through the tick/tock hooks the evaluator invokes on them.
type Clock struct {
	level bool
	ticks uint64
	subs  []chan ClockEvent
}

// NewClock returns a new Clock at level low, tick count zero.
func NewClock() *Clock {
	return &Clock{}
}

// Level reports the clock's current level.
func (c *Clock) Level() bool { return c.level }

// Ticks returns the monotonic tick counter.
func (c *Clock) Ticks() uint64 { return c.ticks }

// Subscribe returns a receive-only channel that is sent a ClockEvent on
// every level change (and once immediately, with the clock's current
// state). The channel is buffered to depth 1: subscribers need not drain it
// between ticks, since only the latest level is semantically meaningful —
// a pending stale event is replaced rather than queued.
func (c *Clock) Subscribe() <-chan ClockEvent {
	ch := make(chan ClockEvent, 1)
	c.subs = append(c.subs, ch)
	ch <- ClockEvent{Level: c.level, Ticks: c.ticks}
	return ch
}

// Tick toggles the clock's level and, on a low-to-high transition,
// increments the tick counter, then broadcasts the new state to every
// subscriber.
func (c *Clock) Tick() {
	c.level = !c.level
	if c.level {
		c.ticks++
	}
	c.broadcast()
}

// Reset forces level low, count zero, and broadcasts the reset state.
func (c *Clock) Reset() {
	c.level = false
	c.ticks = 0
	c.broadcast()
}

func (c *Clock) broadcast() {
	ev := ClockEvent{Level: c.level, Ticks: c.ticks}
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			// drop the stale pending event; only the latest level matters.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
