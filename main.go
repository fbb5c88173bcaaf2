package main

import (
	"context"
	"io"
	"time"

	"camtrigger-go/bus"
	"camtrigger-go/drivers/irled"
	"camtrigger-go/services/audio"
	"camtrigger-go/services/config"
	"camtrigger-go/services/console"
	"camtrigger-go/services/display"
	"camtrigger-go/services/power"
	"camtrigger-go/services/screen"
	"camtrigger-go/services/trigger"
)

// peripherals is everything the build target has to supply; see
// peripherals_rp2.go and peripherals_host.go.
type peripherals struct {
	display   display.TextSink
	backlight screen.Backlight
	beeper    audio.Beeper
	adc       power.ADC
	irPin     irled.Pin
	gate      irled.Gate
	trace     io.Writer

	// startInput launches whatever produces key/event traffic on this
	// target: the matrix scanner on hardware, stdin on the host.
	startInput func(ctx context.Context, b *bus.Bus)
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	b := bus.NewBus(16)
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, deviceID)

	p := openPeripherals()

	go console.Run(ctx, b.NewConnection("console"), p.trace)
	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	go display.Run(ctx, b.NewConnection("display"), p.display)
	go screen.Run(ctx, b.NewConnection("screen"), p.backlight)
	go audio.Run(ctx, b.NewConnection("audio"), p.beeper)
	go power.Run(ctx, b.NewConnection("power"), p.adc)
	p.startInput(ctx, b)

	emitter := irled.New(p.irPin, p.gate)
	trigger.Run(ctx, b.NewConnection("trigger"), trigger.NewShutter(emitter))
}
