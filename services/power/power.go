// services/power/power.go
package power

import (
	"context"
	"time"

	"camtrigger-go/bus"
	"camtrigger-go/types"
	"camtrigger-go/x/mathx"
	"camtrigger-go/x/timex"
)

var (
	topicBattery = bus.T("power", "battery", "value")
	topicConfig  = bus.T("config", "power")
)

const (
	defaultPeriodMS = 2000
	defaultEmptyMV  = 3300
	defaultFullMV   = 4200

	lowPercent = 10
)

// ADC reads the battery sense divider, already scaled to millivolts at
// the battery terminals.
type ADC interface {
	ReadMillivolts() int32
}

type service struct {
	conn *bus.Connection
	adc  ADC

	periodMS int
	emptyMV  int32
	fullMV   int32
}

// Run samples the battery and publishes a retained reading each period
// until ctx is cancelled.
func Run(ctx context.Context, conn *bus.Connection, adc ADC) {
	s := &service{
		conn:     conn,
		adc:      adc,
		periodMS: defaultPeriodMS,
		emptyMV:  defaultEmptyMV,
		fullMV:   defaultFullMV,
	}
	s.run(ctx)
}

func (s *service) run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfig)
	defer s.conn.Unsubscribe(cfgSub)

	// Retained boot config is queued during Subscribe; apply it before
	// the first sample so the curve is right from the start.
	for {
		select {
		case msg := <-cfgSub.Channel():
			s.applyConfig(msg.Payload)
			continue
		default:
		}
		break
	}

	s.sample()
	t := time.NewTimer(time.Duration(s.periodMS) * time.Millisecond)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-cfgSub.Channel():
			if !open {
				return
			}
			s.applyConfig(msg.Payload)
			if !t.Stop() {
				select {
				case <-t.C:
				default:
				}
			}
			t.Reset(time.Duration(s.periodMS) * time.Millisecond)
		case <-t.C:
			s.sample()
			t.Reset(time.Duration(s.periodMS) * time.Millisecond)
		}
	}
}

func (s *service) sample() {
	pct := s.percent(s.adc.ReadMillivolts())
	s.conn.Publish(s.conn.NewMessage(topicBattery, types.BatteryValue{
		Percent: pct,
		Low:     pct < lowPercent,
		TS:      timex.NowMs(),
	}, true))
}

// percent maps terminal voltage linearly onto 0..100. Linear is crude
// for lithium chemistry but enough to drive a LOW BATT flag.
func (s *service) percent(mv int32) uint8 {
	if s.fullMV <= s.emptyMV {
		return 0
	}
	mv = mathx.Clamp(mv, s.emptyMV, s.fullMV)
	return uint8((mv - s.emptyMV) * 100 / (s.fullMV - s.emptyMV))
}

func (s *service) applyConfig(payload any) {
	m, ok := payload.(map[string]any)
	if !ok {
		return
	}
	if v, ok := asInt(m["period_ms"]); ok && v > 0 {
		s.periodMS = v
	}
	if v, ok := asInt(m["empty_mv"]); ok && v > 0 {
		s.emptyMV = int32(v)
	}
	if v, ok := asInt(m["full_mv"]); ok && v > 0 {
		s.fullMV = int32(v)
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
