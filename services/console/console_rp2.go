//go:build rp2040

package console

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// DebugUART configures UART0 for the trace console and returns it as
// the sink for Run.
func DebugUART(baud uint32, tx, rx machine.Pin) *uartx.UART {
	_ = uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       tx,
		RX:       rx,
	})
	return uartx.UART0
}
