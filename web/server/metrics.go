package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxelray_frames_total",
		Help: "Number of frames rendered.",
	})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voxelray_render_duration_seconds",
		Help:    "Wall time per rendered frame.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	sceneVoxels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voxelray_scene_voxels",
		Help: "Number of occupied cells in the loaded scene.",
	})
)
