//go:build rp2040

package screen

import "machine"

type pinBacklight struct{ p machine.Pin }

func (b pinBacklight) Set(on bool) { b.p.Set(on) }

// NewPinBacklight drives a backlight enable line on the given GPIO.
func NewPinBacklight(p machine.Pin) Backlight {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return pinBacklight{p: p}
}
