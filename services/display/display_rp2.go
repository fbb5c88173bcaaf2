//go:build rp2040

package display

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"
)

type lcdSink struct {
	d      hd44780i2c.Device
	width  int
	height int
}

// NewLCD wraps an HD44780 character panel behind a PCF8574 I2C
// backpack as a TextSink.
func NewLCD(i2c drivers.I2C, addr uint8, width, height int) (TextSink, error) {
	d := hd44780i2c.New(i2c, addr)
	if err := d.Configure(hd44780i2c.Config{
		Width:  uint8(width),
		Height: uint8(height),
	}); err != nil {
		return nil, err
	}
	return &lcdSink{d: d, width: width, height: height}, nil
}

// WriteLine pads to the panel width so stale characters never linger.
func (s *lcdSink) WriteLine(row int, text string) {
	if row < 0 || row >= s.height {
		return
	}
	line := make([]byte, s.width)
	for i := range line {
		line[i] = ' '
	}
	copy(line, text)
	s.d.SetCursor(0, uint8(row))
	s.d.Print(line)
}

func (s *lcdSink) Clear() {
	s.d.ClearDisplay()
}
