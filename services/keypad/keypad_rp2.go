//go:build rp2040

package keypad

import "machine"

type rowPin struct{ p machine.Pin }

func (r rowPin) Set(level bool) { r.p.Set(level) }

type colPin struct{ p machine.Pin }

func (c colPin) Get() bool { return c.p.Get() }

// MatrixPins configures the given GPIO numbers for a row/column matrix:
// rows as outputs idling high, columns as pulled-up inputs.
func MatrixPins(rows, cols []machine.Pin) ([]RowPin, []ColPin) {
	rp := make([]RowPin, len(rows))
	for i, p := range rows {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
		rp[i] = rowPin{p: p}
	}
	cp := make([]ColPin, len(cols))
	for i, p := range cols {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		cp[i] = colPin{p: p}
	}
	return rp, cp
}
