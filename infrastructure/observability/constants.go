package observability

// Metric name prefixes
const (
	MetricPrefix = "akashic_archive"
)

// Metric names
const (
	// HTTP metrics
	HTTPRequestsTotal   = MetricPrefix + ".http.requests_total"
	HTTPRequestDuration = MetricPrefix + ".http.request_duration"

	// Ledger metrics
	ManaTransactionsTotal = MetricPrefix + ".mana.transactions_total"

	// Unlock metrics
	UnlockAttemptsTotal = MetricPrefix + ".unlocks.attempts_total"

	// Oracle metrics
	OracleQuestionsTotal = MetricPrefix + ".oracle.questions_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelType      = "type"
	LabelEventType = "event_type"
	LabelMethod    = "method"
	LabelRoute     = "route"
	LabelStatus    = "status"
	LabelOutcome   = "outcome"
)

// Unlock attempt outcomes
const (
	UnlockOutcomeUnlocked = "unlocked"
	UnlockOutcomeRejected = "rejected"
)
