package synthesis

import (
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"github.com/mandimitra/vaani/pkg/classify"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/logging"
)

// Action is a client-side effect attached to a response.
type Action struct {
	Type string
	Tab  language.Tab
}

const ActionNavigate = "navigate"

// Response is the final answer handed to the transport for display and
// speech playback.
type Response struct {
	Text       string
	Action     *Action
	Origin     string
	Confidence float64
}

// Synthesizer renders offline answers from the catalog templates and the
// agricultural knowledge base.
type Synthesizer struct {
	log *slog.Logger
}

func New(logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{log: logging.NewComponentLogger(logger, "synthesizer")}
}

// Navigation builds the short confirmation for a pure navigation command
// and the navigate action the dashboard executes. No classifier scoring
// or remote reasoning is involved.
func (s *Synthesizer) Navigation(text string, lang language.Code) Response {
	tab, _ := language.ResolveTab(text)
	info := language.Detail(tab, lang)
	answer := fill(language.Template(language.IntentNavigation, lang), map[string]string{
		"tab_name":        info.Name,
		"tab_description": info.Description,
	})
	s.log.Info("navigation_resolved", "tab", string(tab))
	return Response{
		Text:       answer,
		Action:     &Action{Type: ActionNavigate, Tab: tab},
		Origin:     "offline",
		Confidence: 0.95,
	}
}

// Offline renders the catalog answer for a classified utterance.
func (s *Synthesizer) Offline(text string, cls classify.Classification, lang language.Code, fctx *DialogueContext) Response {
	crop, location, quantity := fctx.Defaults(cls.Entities)

	switch cls.Intent {
	case language.IntentGreeting:
		return Response{
			Text:       language.Template(language.IntentGreeting, lang),
			Origin:     "offline",
			Confidence: 1.0,
		}
	case language.IntentPriceCheck:
		return s.priceAnswer(lang, crop, location)
	case language.IntentWeatherCheck:
		return s.weatherAnswer(lang, location)
	case language.IntentStorageInfo:
		return s.storageAnswer(lang, crop, location)
	case language.IntentCropAdvice:
		return s.cropAdviceAnswer(lang, crop, location)
	case language.IntentFinancialCalc:
		return s.financialAnswer(lang, crop, quantity)
	case language.IntentNavigation:
		return s.Navigation(text, lang)
	case language.IntentHelp:
		return Response{
			Text:       language.Template(language.IntentHelp, lang),
			Origin:     "offline",
			Confidence: 1.0,
		}
	default:
		answer := fill(language.Localized(language.GeneralText, lang), map[string]string{
			"crop":     crop,
			"location": location,
		})
		return Response{Text: answer, Origin: "offline", Confidence: 0.7}
	}
}

// Fallback is the localized last-resort answer.
func (s *Synthesizer) Fallback(lang language.Code) Response {
	return Response{
		Text:       language.Localized(language.FallbackText, lang),
		Origin:     "static_fallback",
		Confidence: 0.3,
	}
}

func (s *Synthesizer) priceAnswer(lang language.Code, crop, location string) Response {
	info := language.CropInfo(crop, lang)
	price := rand.Intn(1000) + 1500
	trend := "stable"
	if price > 2000 {
		trend = "rising"
	}
	answer := fill(language.Template(language.IntentPriceCheck, lang), map[string]string{
		"crop":       crop,
		"location":   location,
		"price":      strconv.Itoa(price),
		"trend_info": language.Localized(language.MarketInsight[trend], lang),
		"advice":     info.MarketTrend,
	})
	return Response{Text: answer, Origin: "offline", Confidence: 0.9}
}

func (s *Synthesizer) weatherAnswer(lang language.Code, location string) Response {
	temp := rand.Intn(15) + 20
	conditions := language.WeatherConditions[lang]
	if len(conditions) == 0 {
		conditions = language.WeatherConditions[language.English]
	}
	condition := conditions[rand.Intn(len(conditions))]

	adviceKey := "normal"
	if temp > 35 {
		adviceKey = "hot"
	} else if temp < 15 {
		adviceKey = "cold"
	}
	answer := fill(language.Template(language.IntentWeatherCheck, lang), map[string]string{
		"location":  location,
		"temp":      strconv.Itoa(temp),
		"condition": condition,
		"advice":    language.Localized(language.WeatherAdvice[adviceKey], lang),
	})
	return Response{Text: answer, Origin: "offline", Confidence: 0.85}
}

func (s *Synthesizer) storageAnswer(lang language.Code, crop, location string) Response {
	info := language.CropInfo(crop, lang)
	answer := fill(language.Template(language.IntentStorageInfo, lang), map[string]string{
		"count":    "3",
		"location": location,
		"name":     "Punjab State Warehousing Corporation",
		"capacity": "50000",
		"advice":   info.Storage,
	})
	return Response{Text: answer, Origin: "offline", Confidence: 0.85}
}

func (s *Synthesizer) cropAdviceAnswer(lang language.Code, crop, location string) Response {
	info := language.CropInfo(crop, lang)
	answer := fill(language.Template(language.IntentCropAdvice, lang), map[string]string{
		"crop":            crop,
		"location":        location,
		"advice":          info.Irrigation,
		"sowing_time":     info.Sowing,
		"additional_tips": info.Storage,
	})
	return Response{Text: answer, Origin: "offline", Confidence: 0.9}
}

func (s *Synthesizer) financialAnswer(lang language.Code, crop, quantity string) Response {
	qty, err := strconv.Atoi(quantity)
	if err != nil || qty <= 0 {
		qty = 10
	}
	price := rand.Intn(1000) + 1500
	revenue := qty * price * 10
	margin := rand.Intn(20) + 15
	answer := fill(language.Template(language.IntentFinancialCalc, lang), map[string]string{
		"crop":             crop,
		"quantity":         strconv.Itoa(qty),
		"revenue":          strconv.Itoa(revenue),
		"margin":           strconv.Itoa(margin),
		"financial_advice": language.Localized(language.FinancialAdviceText, lang),
	})
	return Response{Text: answer, Origin: "offline", Confidence: 0.9}
}

func fill(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}
