package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GameAPIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gameapi_request_duration_seconds",
		Help:    "Duration of game server API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	GameAPIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameapi_requests_total",
		Help: "Total number of game server API requests",
	}, []string{"endpoint", "status"})

	SnapshotsRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "map_snapshots_rendered_total",
		Help: "The total number of map snapshot images rendered",
	})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "map_render_duration_seconds",
		Help:    "Duration of map snapshot rendering",
		Buckets: prometheus.DefBuckets,
	})

	UpdateCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "update_cycles_total",
		Help: "Total number of update cycles by outcome",
	}, []string{"outcome"})

	BindingUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binding_updates_total",
		Help: "Total number of per-binding reconciliations by result",
	}, []string{"result"})

	DiscordMessagesEdited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_edited_total",
		Help: "Total number of Discord map messages sent or edited",
	}, []string{"operation", "status"})
)
