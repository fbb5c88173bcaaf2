//go:build rp2040

package irled

import (
	"device/arm"
	"machine"
)

// machinePin adapts a machine.Pin to the driver's Pin interface.
type machinePin struct {
	p machine.Pin
}

// OutputPin claims GPIO n as the LED output, driven low.
func OutputPin(n int) Pin {
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	return &machinePin{p: p}
}

func (m *machinePin) Set(level bool) { m.p.Set(level) }

// IRQGate masks all interrupts while a waveform is on the wire; an ISR
// landing mid-frame would smear the carrier enough to corrupt it.
type IRQGate struct {
	mask uintptr
}

func (g *IRQGate) Enter() { g.mask = arm.DisableInterrupts() }
func (g *IRQGate) Exit()  { arm.EnableInterrupts(g.mask) }
