//go:build rp2040

package main

import (
	"context"
	"machine"

	"camtrigger-go/bus"
	"camtrigger-go/drivers/irled"
	"camtrigger-go/services/audio"
	"camtrigger-go/services/console"
	"camtrigger-go/services/display"
	"camtrigger-go/services/keypad"
	"camtrigger-go/services/screen"
	"camtrigger-go/types"
)

const deviceID = "handheld"

// Pin map for the handheld board.
const (
	pinIRLED = 16

	pinLCDSDA = machine.GP4
	pinLCDSCL = machine.GP5
	lcdAddr   = 0x27
	lcdWidth  = 20
	lcdHeight = 4

	pinBacklight = machine.GP20
	pinPiezo     = machine.GP21

	pinUARTTX = machine.GP0
	pinUARTRX = machine.GP1
	traceBaud = 115200
)

var (
	keypadRows = []machine.Pin{machine.GP2, machine.GP3, machine.GP6, machine.GP7}
	keypadCols = []machine.Pin{machine.GP8, machine.GP9, machine.GP10, machine.GP11}

	// 4x4 pad: '#' submits, '*' deletes, 'D' aborts.
	keypadLayout = [][]rune{
		{'1', '2', '3', 'A'},
		{'4', '5', '6', 'B'},
		{'7', '8', '9', 'C'},
		{types.KeyBackspace, '0', types.KeyEnter, 'D'},
	}
)

type nopDisplay struct{}

func (nopDisplay) WriteLine(int, string) {}
func (nopDisplay) Clear()                {}

type nopBeeper struct{}

func (nopBeeper) Play(uint32, uint16) {}

// batteryADC reads the battery through a 2:1 divider on ADC0.
type batteryADC struct{ a machine.ADC }

func (b batteryADC) ReadMillivolts() int32 {
	raw := int32(b.a.Get()) // 16-bit left-justified, 3.3V reference
	return raw * 3300 / 65535 * 2
}

func startKeypad(ctx context.Context, b *bus.Bus) {
	rows, cols := keypad.MatrixPins(keypadRows, keypadCols)
	go keypad.Run(ctx, b.NewConnection("keypad"), keypad.Config{
		Rows:   rows,
		Cols:   cols,
		Layout: keypadLayout,
	})
}

func openPeripherals() peripherals {
	trace := console.DebugUART(traceBaud, pinUARTTX, pinUARTRX)

	machine.I2C0.Configure(machine.I2CConfig{SDA: pinLCDSDA, SCL: pinLCDSCL})
	lcd, err := display.NewLCD(machine.I2C0, lcdAddr, lcdWidth, lcdHeight)
	if err != nil {
		// Keep running headless; the trace UART still shows everything.
		println("lcd init failed:", err.Error())
		lcd = nopDisplay{}
	}

	beeper, err := audio.NewPWMBeeper(machine.PWM2, pinPiezo)
	if err != nil {
		println("piezo init failed:", err.Error())
		beeper = nopBeeper{}
	}

	machine.InitADC()
	adc := machine.ADC{Pin: machine.GP26}
	adc.Configure(machine.ADCConfig{})

	return peripherals{
		display:    lcd,
		backlight:  screen.NewPinBacklight(pinBacklight),
		beeper:     beeper,
		adc:        batteryADC{a: adc},
		irPin:      irled.OutputPin(pinIRLED),
		gate:       &irled.IRQGate{},
		trace:      trace,
		startInput: startKeypad,
	}
}
