package language

import "strings"

// Code identifies one of the supported dialogue languages.
type Code string

const (
	English Code = "en"
	Hindi   Code = "hi"
	Punjabi Code = "pa"
)

// Supported returns the language codes the catalog covers.
func Supported() []Code {
	return []Code{English, Hindi, Punjabi}
}

// Normalize maps recognizer locale tags (en-IN, hi-IN, pa-IN) to catalog
// codes. Unknown tags fall back to English.
func Normalize(tag string) Code {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	switch Code(tag) {
	case Hindi:
		return Hindi
	case Punjabi:
		return Punjabi
	default:
		return English
	}
}

// Locale returns the recognizer locale tag for a catalog code.
func (c Code) Locale() string {
	switch c {
	case Hindi:
		return "hi-IN"
	case Punjabi:
		return "pa-IN"
	default:
		return "en-IN"
	}
}

// Intent is an utterance category the offline catalog can answer.
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentPriceCheck    Intent = "price_check"
	IntentWeatherCheck  Intent = "weather_check"
	IntentStorageInfo   Intent = "storage_info"
	IntentCropAdvice    Intent = "crop_advice"
	IntentFinancialCalc Intent = "financial_calc"
	IntentNavigation    Intent = "navigation"
	IntentHelp          Intent = "help"
	IntentUnknown       Intent = "unknown"
)

// Intents lists the catalog intents in match order.
func Intents() []Intent {
	return []Intent{
		IntentGreeting,
		IntentPriceCheck,
		IntentWeatherCheck,
		IntentStorageInfo,
		IntentCropAdvice,
		IntentFinancialCalc,
		IntentNavigation,
		IntentHelp,
	}
}
