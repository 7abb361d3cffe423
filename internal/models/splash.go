package models

import "time"

// Splash is a single draw handed to the playback output.
type Splash struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	// The node that played the splash.
	Node string

	// Name of the pool the splash was drawn from.
	Pool string `gorm:"index"`

	// Selection mode active at draw time, e.g. "smart_weighted".
	Mode string

	// Opaque clip handle.
	Clip string

	Volume float64
	Pitch  float64

	// OneShot is true when the splash was played without a source, so pitch
	// was not applied.
	OneShot bool

	// Error message if the output failed to play the splash.
	Error string
	// IsFailed is true if the output failed.
	IsFailed bool

	// Timestamp when the splash was handed to the output.
	StartedAt *time.Time
	// Duration of the output call.
	Duration *time.Duration
}
