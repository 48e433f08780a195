package config

import "time"

// RuntimeConfig carries the knobs spec.md leaves as constants
// (STUCK_DURATION, the rolling-rate window) as overridable fields, the
// same shape as the teacher's Settings.ToRuntimeConfig conversion.
// Of these fields only StallDuration is read (cmd/downd passes it to the
// supervisor); the tracker uses its own fixed 1.5s/15s rolling-rate
// window, and the port, socket path and verbosity come from CLI flags.
type RuntimeConfig struct {
	Port          int
	SocketPath    string
	Verbosity     int
	StallDuration time.Duration

	RateMinElapsed time.Duration
	RateMaxElapsed time.Duration
}

// DefaultRuntimeConfig returns the values named in spec.md: 15s stall
// duration, port 3000, and the tracker's 1.5s/15s rolling-rate window.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Port:           3000,
		StallDuration:  15 * time.Second,
		RateMinElapsed: 1500 * time.Millisecond,
		RateMaxElapsed: 15 * time.Second,
	}
}
