// Package irled drives a single IR LED with the carrier/space waveforms
// camera shutter receivers expect. Timing inside a waveform is
// microsecond-scale, so every emission runs under a Gate that holds off
// preemption until the frame is on the wire.
package irled

import "time"

const (
	// CarrierFreqHz is the nominal modulation most camera IR sensors
	// demodulate.
	CarrierFreqHz = 38_000

	carrierHighUS = 10
	carrierLowUS  = 10
	// One carrier cycle costs ~26µs of budget on the target core
	// (10µs high + 10µs low + loop overhead).
	carrierPeriodUS = 26

	// SettleUS separates two protocol frames in a blast so a camera
	// does not read the tail of a foreign code as noise on its own.
	SettleUS = 60_000
)

// Pin is the single digital output the LED hangs off.
type Pin interface {
	Set(level bool)
}

// Gate brackets a timing-critical region: Enter masks whatever could
// preempt the waveform, Exit restores it. Exit is always reached, on
// every path out of an emission.
type Gate interface {
	Enter()
	Exit()
}

// NopGate satisfies Gate where preemption control is unavailable
// (host builds, tests).
type NopGate struct{}

func (NopGate) Enter() {}
func (NopGate) Exit()  {}

// Emitter owns the output pin. Exactly one logical operation drives it
// at a time; the callers' single-threaded loop guarantees that.
type Emitter struct {
	pin   Pin
	gate  Gate
	delay func(us int32)
}

func New(pin Pin, gate Gate) *Emitter {
	return &Emitter{pin: pin, gate: gate, delay: sleepMicros}
}

func sleepMicros(us int32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// Send emits one protocol frame under the gate.
func (e *Emitter) Send(p Protocol) {
	e.gate.Enter()
	defer e.gate.Exit()
	e.send(p)
}

// Blast emits every protocol in fixed order with a settle delay between
// consecutive frames, all under a single gate acquisition. One Blast is
// one logical "take a photo": the device does not know which camera is
// listening, so it sends all known codes. Fire and forget; there is no
// feedback channel to report against.
func (e *Emitter) Blast() {
	e.gate.Enter()
	defer e.gate.Exit()
	for i, p := range Protocols {
		if i > 0 {
			e.space(SettleUS)
		}
		e.send(p)
	}
}

// carrier modulates the pin at ~38kHz for roughly us microseconds,
// consuming the budget one fixed period at a time.
func (e *Emitter) carrier(us int32) {
	for budget := us; budget > 0; budget -= carrierPeriodUS {
		e.pin.Set(true)
		e.delay(carrierHighUS)
		e.pin.Set(false)
		e.delay(carrierLowUS)
	}
}

// space holds the line low.
func (e *Emitter) space(us int32) {
	e.delay(us)
}

// mark drives the pin high unmodulated; used by protocols that clock
// their own period instead of the shared carrier.
func (e *Emitter) mark(us int32) {
	e.pin.Set(true)
	e.delay(us)
	e.pin.Set(false)
}
