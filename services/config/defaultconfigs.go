package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// One JSON blob per device ID. The handheld remote is the only real
// hardware target; "host" exists so the desktop build exercises the
// same plumbing.
// -----------------------------------------------------------------------------

const cfgHandheld = `{
  "trigger": {
      "abort_key": "D"
  },
  "keypad": {
      "scan_ms": 10
  },
  "screen": {
      "timeout_s": 30
  },
  "power": {
      "period_ms": 2000,
      "empty_mv": 3300,
      "full_mv": 4200
  }
}`

const cfgHost = `{
  "trigger": {
      "abort_key": "D"
  },
  "screen": {
      "timeout_s": 300
  },
  "power": {
      "period_ms": 2000,
      "empty_mv": 3300,
      "full_mv": 4200
  }
}`

var embeddedConfigs = map[string][]byte{
	"handheld": []byte(cfgHandheld),
	"host":     []byte(cfgHost),
}
