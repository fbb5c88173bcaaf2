package types

// ------------------------
// Keypad
// ------------------------

// Named control keys the keypad layout may produce alongside digits.
const (
	KeyEnter     rune = '\n'
	KeyBackspace rune = '\b'
)

// KeyEvent is published (non-retained) on key/event for every decoded
// key press.
type KeyEvent struct {
	Key rune  `json:"key"`
	TS  int64 `json:"ts_ms"`
}

// ------------------------
// Display (write-only sink)
// ------------------------

// DisplayLine replaces one row of the panel.
type DisplayLine struct {
	Row  int    `json:"row"`
	Text string `json:"text"`
}

// DisplayClear wipes the panel.
type DisplayClear struct{}

// ------------------------
// Audio feedback
// ------------------------

// ToneBurst is one short beep.
type ToneBurst struct {
	FreqHz     uint32 `json:"freq_hz"`
	DurationMs uint16 `json:"duration_ms"`
}

// TonePattern plays Tones in order, Repeats times over.
type TonePattern struct {
	Repeats uint8       `json:"repeats"`
	Tones   []ToneBurst `json:"tones"`
}

// ------------------------
// Power
// ------------------------

// BatteryValue is retained at power/battery/value.
type BatteryValue struct {
	Percent uint8 `json:"percent"` // 0..100
	Low     bool  `json:"low"`     // below warning threshold
	TS      int64 `json:"ts_ms"`
}

// ------------------------
// Screen power
// ------------------------

// ScreenWake is published on screen/wake on any key activity.
type ScreenWake struct{}

// ------------------------
// Trigger core
// ------------------------

// Mode names used in TriggerState; the core owns the transitions.
const (
	ModeAwaitingInput  = "awaiting_input"
	ModeIntervalometer = "intervalometer"
	ModeManual         = "manual"
)

// TriggerState is retained at trigger/state after every change.
type TriggerState struct {
	Mode        string `json:"mode"`
	IntervalS   int    `json:"interval_s,omitempty"`
	DurationMin int    `json:"duration_min,omitempty"`
	PhotoCount  int    `json:"photo_count"`
	MaxPhotos   int    `json:"max_photos"`
	CountdownS  int    `json:"countdown_s"`
	TS          int64  `json:"ts_ms"`
}

// ------------------------
// Generic replies
// ------------------------

type OKReply struct {
	OK bool `json:"ok"`
}

type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
