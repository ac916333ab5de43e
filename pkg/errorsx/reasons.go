package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonCaptureTransient  ReasonCode = "capture_transient"
	ReasonCaptureFatal      ReasonCode = "capture_fatal"
	ReasonRestartExhausted  ReasonCode = "restart_exhausted"
	ReasonInvalidTransition ReasonCode = "invalid_transition"
	ReasonReasoningBusy     ReasonCode = "reasoning_busy"

	ReasonSTTConnect     ReasonCode = "stt_connect"
	ReasonSTTSend        ReasonCode = "stt_send"
	ReasonSTTRetry       ReasonCode = "stt_retry"
	ReasonSTTRateLimit   ReasonCode = "stt_rate_limit"
	ReasonSTTCircuitOpen ReasonCode = "stt_circuit_open"

	ReasonLLMGenerate    ReasonCode = "llm_generate"
	ReasonLLMRateLimit   ReasonCode = "llm_rate_limit"
	ReasonLLMCircuitOpen ReasonCode = "llm_circuit_open"
	ReasonProviderDown   ReasonCode = "provider_down"
	ReasonScriptMismatch ReasonCode = "script_mismatch"

	ReasonNoData        ReasonCode = "no_data"
	ReasonTransportSend ReasonCode = "transport_send"
)
