package frames

// Well-known meta keys. Values are always strings; booleans are "true"/"false"
// and numbers use their decimal rendering.
const (
	MetaSessionID  = "session_id"
	MetaClientID   = "client_id"
	MetaTraceID    = "trace_id"
	MetaRequestID  = "request_id"
	MetaSource     = "source"
	MetaIsFinal    = "is_final"
	MetaReason     = "reason"
	MetaLanguage   = "language"
	MetaIntent     = "intent"
	MetaConfidence = "confidence"
	MetaOrigin     = "origin"
	MetaAction     = "action"
	MetaActionTab  = "action_tab"
	MetaErrorCode  = "error_code"

	MetaRoute        = "route"
	MetaKeywordHits  = "keyword_hits"
	MetaCrop         = "crop"
	MetaLocation     = "location"
	MetaQuantity     = "quantity"
	MetaFarmActivity = "farm_activity"
	MetaShortTurn    = "short_turn_enforced"
)

// Origin values recorded under MetaOrigin on response frames.
const (
	OriginOffline  = "offline"
	OriginInternal = "internal_data"
	OriginRemote   = "remote"
	OriginFallback = "static_fallback"
)

// IsFinal reports whether meta marks a final transcript.
func IsFinal(meta map[string]string) bool {
	return meta[MetaIsFinal] == "true"
}
