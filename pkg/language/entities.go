package language

import "regexp"

// Defaults fill entity slots the utterance left empty. They reflect the
// deployment region's most common answers.
const (
	DefaultCrop     = "wheat"
	DefaultLocation = "Punjab"
	DefaultQuantity = "10"
	DefaultAction   = "sowing"
)

// Keyword binds a surface form in some script to its canonical name.
// Keyword tables are ordered slices so lookups resolve the same way on
// every run; earlier entries win when an utterance mentions several.
type Keyword struct {
	Surface   string
	Canonical string
}

// CropKeywords maps surface forms (any script) to canonical crop names.
var CropKeywords = []Keyword{
	{"wheat", "wheat"}, {"गेहूं", "wheat"}, {"ਕਣਕ", "wheat"},
	{"rice", "rice"}, {"चावल", "rice"}, {"धान", "rice"}, {"ਚੌਲ", "rice"},
	{"cotton", "cotton"}, {"कपास", "cotton"},
	{"sugarcane", "sugarcane"}, {"गन्ना", "sugarcane"},
	{"pulses", "pulses"}, {"दालें", "pulses"},
	{"maize", "maize"}, {"मक्का", "maize"}, {"corn", "maize"},
	{"potato", "potato"}, {"आलू", "potato"}, {"ਆਲੂ", "potato"},
}

// LocationKeywords maps surface forms to canonical location names.
var LocationKeywords = []Keyword{
	{"ludhiana", "Ludhiana"}, {"लुधियाना", "Ludhiana"}, {"ਲੁਧਿਆਣਾ", "Ludhiana"},
	{"amritsar", "Amritsar"}, {"अमृतसर", "Amritsar"}, {"ਅੰਮ੍ਰਿਤਸਰ", "Amritsar"},
	{"patiala", "Patiala"}, {"पटियाला", "Patiala"}, {"ਪਟਿਆਲਾ", "Patiala"},
	{"jalandhar", "Jalandhar"}, {"जालंधर", "Jalandhar"}, {"ਜਲੰਧਰ", "Jalandhar"},
	{"bathinda", "Bathinda"}, {"बठिंडा", "Bathinda"},
	{"rajpura", "Rajpura"}, {"राजपुरा", "Rajpura"}, {"ਰਾਜਪੁਰਾ", "Rajpura"},
	{"punjab", "Punjab"}, {"पंजाब", "Punjab"}, {"ਪੰਜਾਬ", "Punjab"},
}

// ActionKeywords maps surface forms to canonical farm actions.
var ActionKeywords = []Keyword{
	{"sell", "sell"}, {"बेचें", "sell"}, {"ਵੇਚੋ", "sell"},
	{"store", "store"}, {"स्टोर", "store"},
	{"buy", "buy"}, {"खरीदें", "buy"},
	{"plant", "plant"}, {"लगाएं", "plant"},
	{"harvest", "harvest"}, {"काटें", "harvest"},
	{"irrigate", "irrigate"}, {"सिंचाई", "irrigate"},
	{"fertilize", "fertilize"}, {"खाद डालें", "fertilize"},
}

// QuantityPattern extracts a numeric quantity with a weight unit in any
// supported script.
var QuantityPattern = regexp.MustCompile(`(?i)(\d+)\s*(ton|quintal|kg|kilo|टन|क्विंटल|ਟਨ|ਕੁਇੰਟਲ)`)
