package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Crafting Metrics
var (
	CraftsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsStarted,
			Help: HelpTextCraftsStarted,
		},
		[]string{LabelRecipe},
	)

	CraftsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsCompleted,
			Help: HelpTextCraftsCompleted,
		},
		[]string{LabelCategory, LabelOutcome},
	)

	CraftResolutionTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCraftResolutionTime,
			Help:    HelpTextCraftResolutionTime,
			Buckets: ResolutionTickBuckets,
		},
	)

	RecipesLearned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecipesLearned,
			Help: HelpTextRecipesLearned,
		},
	)

	ItemsUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsUsed,
			Help: HelpTextItemsUsed,
		},
		[]string{LabelItemType},
	)

	ExperienceAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExperienceAwarded,
			Help: HelpTextExperienceAwarded,
		},
		[]string{LabelCategory},
	)

	ProfessionLevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProfessionLevelUps,
			Help: HelpTextProfessionLevelUps,
		},
		[]string{LabelCategory},
	)
)
