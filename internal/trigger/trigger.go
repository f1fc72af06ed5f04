// Package trigger debounces raw digital input levels into one-shot press
// events. Inputs idle high (pull-up convention); a press pulls the level
// low, and only a low level that has held steady through the debounce
// window produces a trigger.
package trigger

// DefaultWindow is the debounce window in milliseconds.
const DefaultWindow = 20

type input struct {
	raw        bool // last raw level observed (true = high)
	stable     bool // accepted level
	lastChange uint32
	pending    bool
}

// Debouncer tracks a fixed set of inputs. Poll and TakeTrigger are meant to
// run on the same control tick, single writer and single reader, so the
// pending flags need no synchronization.
type Debouncer struct {
	window uint32
	inputs []input
}

// New creates a debouncer for n inputs with the given window in
// milliseconds. All inputs start stable high (idle, not pressed).
func New(n int, window uint32) *Debouncer {
	d := &Debouncer{window: window, inputs: make([]input, n)}
	for i := range d.inputs {
		d.inputs[i].raw = true
		d.inputs[i].stable = true
	}
	return d
}

// Len returns the number of inputs.
func (d *Debouncer) Len() int { return len(d.inputs) }

// Poll feeds one raw level read for input i at time now (milliseconds,
// free-running). A raw change restarts the window; once the raw level has
// held through the window it is accepted as stable, and a high-to-low
// acceptance marks a pending trigger. Releases produce no event.
//
// Elapsed time is computed with unsigned subtraction so a clock rollover
// neither suppresses nor fires triggers spuriously.
func (d *Debouncer) Poll(i int, level bool, now uint32) {
	in := &d.inputs[i]
	if level != in.raw {
		in.raw = level
		in.lastChange = now
		return
	}
	if level == in.stable {
		return
	}
	if now-in.lastChange >= d.window {
		in.stable = level
		if !level {
			in.pending = true
		}
	}
}

// TakeTrigger reports and clears the pending trigger for input i. Each
// physical press yields at most one true result.
func (d *Debouncer) TakeTrigger(i int) bool {
	in := &d.inputs[i]
	if !in.pending {
		return false
	}
	in.pending = false
	return true
}

// Stable returns the accepted level for input i.
func (d *Debouncer) Stable(i int) bool { return d.inputs[i].stable }
