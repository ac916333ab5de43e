package metrics

// Well-known event names emitted by resilience wrappers and processors.
const (
	EventBreakerOpen   = "breaker_open"
	EventBreakerClose  = "breaker_close"
	EventBreakerDenied = "breaker_denied"
	EventRateLimit     = "rate_limit"

	EventProviderFailover = "provider_failover"
	EventScriptRetranslate = "script_retranslate"
)
