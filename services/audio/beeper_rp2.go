//go:build rp2040

package audio

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/tone"

	"camtrigger-go/x/timex"
)

type pwmBeeper struct {
	sp tone.Speaker
}

// NewPWMBeeper drives a piezo on the given pin through its PWM slice.
func NewPWMBeeper(pwm tone.PWM, pin machine.Pin) (Beeper, error) {
	sp, err := tone.New(pwm, pin)
	if err != nil {
		return nil, err
	}
	return &pwmBeeper{sp: sp}, nil
}

func (b *pwmBeeper) Play(freqHz uint32, durationMs uint16) {
	if freqHz > 0 {
		b.sp.SetPeriod(timex.PeriodFromHz(freqHz))
	}
	time.Sleep(time.Duration(durationMs) * time.Millisecond)
	b.sp.Stop()
}
