// Package control owns the playback speed and pitch state shared by the
// command surface and the resampling path. All adjustments saturate at the
// domain bounds; pushing past a bound is a no-op, never an error.
package control

// Speed and pitch domains. Closed intervals: values exactly at a bound are
// legal.
const (
	MinSpeed = 0.1
	MaxSpeed = 4.0
	MinPitch = 0.5
	MaxPitch = 2.0
)

// Step is the adjustment applied per increase/decrease command.
const Step = 0.1

// LinkMode selects whether pitch follows speed or moves on its own.
type LinkMode int

const (
	// Linked keeps pitch equal to speed on every speed mutation.
	Linked LinkMode = iota
	// Independent lets speed and pitch vary freely within their domains.
	Independent
)

func (m LinkMode) String() string {
	if m == Linked {
		return "linked"
	}
	return "independent"
}

// Controller holds the process-wide speed/pitch state. It is written only
// from the control tick and read by the audio path on the same goroutine,
// so it carries no locking of its own.
type Controller struct {
	speed float64
	pitch float64
	mode  LinkMode
}

// New returns a controller at the power-on defaults: unity speed and pitch,
// linked.
func New() *Controller {
	return &Controller{speed: 1.0, pitch: 1.0, mode: Linked}
}

func (c *Controller) Speed() float64 { return c.speed }
func (c *Controller) Pitch() float64 { return c.pitch }
func (c *Controller) Mode() LinkMode { return c.mode }

// AdjustSpeed moves speed by delta, saturating at the speed bounds. In
// linked mode pitch is updated in the same call so the two are never
// observed out of sync.
func (c *Controller) AdjustSpeed(delta float64) {
	c.speed = clamp(c.speed+delta, MinSpeed, MaxSpeed)
	if c.mode == Linked {
		c.pitch = c.speed
	}
}

// AdjustPitch moves pitch by delta, saturating at the pitch bounds. It only
// applies in independent mode; the return value reports whether the
// adjustment took effect.
func (c *Controller) AdjustPitch(delta float64) bool {
	if c.mode == Linked {
		return false
	}
	c.pitch = clamp(c.pitch+delta, MinPitch, MaxPitch)
	return true
}

// ToggleLink flips the link mode. Entering linked mode copies speed into
// pitch immediately.
func (c *Controller) ToggleLink() LinkMode {
	if c.mode == Linked {
		c.mode = Independent
	} else {
		c.mode = Linked
		c.pitch = c.speed
	}
	return c.mode
}

// ResetSpeed restores unity speed, propagating to pitch in linked mode.
func (c *Controller) ResetSpeed() {
	c.speed = 1.0
	if c.mode == Linked {
		c.pitch = 1.0
	}
}

// ResetPitch restores unity pitch.
func (c *Controller) ResetPitch() {
	c.pitch = 1.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
