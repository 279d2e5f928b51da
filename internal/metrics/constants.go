package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Crafting metric names
const (
	MetricNameCraftsStarted       = "crafts_started_total"
	MetricNameCraftsCompleted     = "crafts_completed_total"
	MetricNameRecipesLearned      = "recipes_learned_total"
	MetricNameItemsUsed           = "items_used_total"
	MetricNameExperienceAwarded   = "profession_experience_awarded_total"
	MetricNameProfessionLevelUps  = "profession_level_ups_total"
	MetricNameCraftResolutionTime = "craft_resolution_ticks"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Crafting metric help text
const (
	HelpTextCraftsStarted       = "Total number of crafts started"
	HelpTextCraftsCompleted     = "Total number of crafts whose outcome was revealed"
	HelpTextRecipesLearned      = "Total number of recipes discovered"
	HelpTextItemsUsed           = "Total number of items used from the inventory"
	HelpTextExperienceAwarded   = "Total profession experience awarded by crafting"
	HelpTextProfessionLevelUps  = "Total number of profession level ups"
	HelpTextCraftResolutionTime = "Ticks between starting a craft and revealing its outcome"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelRecipe   = "recipe"
	LabelCategory = "category"
	LabelOutcome  = "outcome"
	LabelItemType = "item_type"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ============================================================================
// Buckets
// ============================================================================

var (
	// HTTPLatencyBuckets are the histogram buckets for request latency
	HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5}

	// ResolutionTickBuckets cover craft durations from a second to a minute at 60 ticks per second
	ResolutionTickBuckets = []float64{30, 60, 120, 240, 480, 960, 1920, 3600}
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
	LogMsgPayloadMismatch = "Event payload did not match its type"
)
