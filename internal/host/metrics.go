package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Draws = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soundpool_draws_total",
		Help: "Splashes drawn from each pool",
	}, []string{"pool", "mode"})

	DrawErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soundpool_draw_errors_total",
		Help: "Failed draws, no sound was played",
	}, []string{"pool"})

	OutputErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soundpool_output_errors_total",
		Help: "Splashes the output failed to play",
	}, []string{"pool"})

	SplashVolume = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "soundpool_splash_volume",
		Help:    "Volume of drawn splashes",
		Buckets: prometheus.LinearBuckets(0, 0.1, 21),
	}, []string{"pool"})

	SplashPitch = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "soundpool_splash_pitch",
		Help:    "Pitch of drawn splashes",
		Buckets: prometheus.LinearBuckets(0, 0.1, 31),
	}, []string{"pool"})
)
