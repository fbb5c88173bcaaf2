package trigger

import "camtrigger-go/drivers/irled"

// Shutter is the "take one photo" action: broadcast every known camera
// code at the attached (unknown) camera. Fire and forget; IR emission
// has no acknowledgment channel, so there is nothing to return.
type Shutter interface {
	Snap()
}

type irShutter struct {
	e *irled.Emitter
}

// NewShutter adapts the IR emitter's multi-protocol blast to the
// Shutter seam used by both operating modes.
func NewShutter(e *irled.Emitter) Shutter {
	return &irShutter{e: e}
}

func (s *irShutter) Snap() { s.e.Blast() }
