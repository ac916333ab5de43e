package policy

import (
	"strings"

	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/marketdata"
)

// PriceAnswerParams carry everything needed to phrase an internal price
// answer.
type PriceAnswerParams struct {
	Crop         string
	Location     string
	Latest       marketdata.PriceRecord
	Prediction   *marketdata.Prediction
	RecentPrices []marketdata.PriceRecord
}

// BuildPriceAnswer phrases the internal-data price answer in the target
// language: the latest mandi price plus next day/week/month estimates.
// Missing prediction horizons are filled from the clamped daily trend.
func BuildPriceAnswer(params PriceAnswerParams, lang language.Code) string {
	trendPct := marketdata.TrendPercent(params.RecentPrices)
	latest := params.Latest.Price

	nextDay := predictionOr(params.Prediction, func(p *marketdata.Prediction) float64 { return p.NextDayPrice },
		marketdata.EstimateFuture(latest, trendPct, 0.4))
	nextWeek := predictionOr(params.Prediction, func(p *marketdata.Prediction) float64 { return p.NextWeekPrice },
		marketdata.EstimateFuture(latest, trendPct, 0.9))
	nextMonth := predictionOr(params.Prediction, func(p *marketdata.Prediction) float64 { return p.NextMonthPrice },
		marketdata.EstimateFuture(latest, trendPct, 1.4))

	var b strings.Builder
	switch lang {
	case language.Hindi:
		b.WriteString("चयनित फसल: " + params.Crop + ". स्थान: " + params.Location + ".")
		b.WriteString(" नवीनतम मंडी भाव ₹" + marketdata.FormatMoney(latest) + " प्रति क्विंटल")
		if params.Latest.Mandi != "" {
			b.WriteString(" (" + params.Latest.Mandi + ")")
		}
		if params.Latest.Date != "" {
			b.WriteString(" (दिनांक " + params.Latest.Date + ")")
		}
		b.WriteString(" है।")
		b.WriteString(" अगले दिन: ₹" + marketdata.FormatMoney(nextDay))
		b.WriteString(" | अगले सप्ताह: ₹" + marketdata.FormatMoney(nextWeek))
		b.WriteString(" | अगले महीने: ₹" + marketdata.FormatMoney(nextMonth) + ".")
		if params.Prediction != nil && params.Prediction.Action != "" {
			b.WriteString(" सुझाव: " + translateAction(params.Prediction.Action, language.Hindi) + ".")
		}
	case language.Punjabi:
		b.WriteString("ਚੁਣੀ ਫਸਲ: " + params.Crop + ". ਥਾਂ: " + params.Location + ".")
		b.WriteString(" ਤਾਜ਼ਾ ਮੰਡੀ ਭਾਅ ₹" + marketdata.FormatMoney(latest) + " ਪ੍ਰਤੀ ਕਵਿੰਟਲ")
		if params.Latest.Mandi != "" {
			b.WriteString(" (" + params.Latest.Mandi + ")")
		}
		if params.Latest.Date != "" {
			b.WriteString(" (ਤਾਰੀਖ " + params.Latest.Date + ")")
		}
		b.WriteString(" ਹੈ।")
		b.WriteString(" ਅਗਲਾ ਦਿਨ: ₹" + marketdata.FormatMoney(nextDay))
		b.WriteString(" | ਅਗਲਾ ਹਫ਼ਤਾ: ₹" + marketdata.FormatMoney(nextWeek))
		b.WriteString(" | ਅਗਲਾ ਮਹੀਨਾ: ₹" + marketdata.FormatMoney(nextMonth) + ".")
		if params.Prediction != nil && params.Prediction.Action != "" {
			b.WriteString(" ਸੁਝਾਅ: " + translateAction(params.Prediction.Action, language.Punjabi) + ".")
		}
	default:
		b.WriteString("Selected crop: " + params.Crop + ". Location: " + params.Location + ".")
		b.WriteString(" Latest mandi price is ₹" + marketdata.FormatMoney(latest) + " per quintal")
		if params.Latest.Mandi != "" {
			b.WriteString(" at " + params.Latest.Mandi)
		}
		if params.Latest.Date != "" {
			b.WriteString(" (date " + params.Latest.Date + ")")
		}
		b.WriteString(".")
		b.WriteString(" Next Day: ₹" + marketdata.FormatMoney(nextDay))
		b.WriteString(" | Next Week: ₹" + marketdata.FormatMoney(nextWeek))
		b.WriteString(" | Next Month: ₹" + marketdata.FormatMoney(nextMonth) + ".")
		if params.Prediction != nil && params.Prediction.Action != "" {
			b.WriteString(" Suggested action: " + strings.ReplaceAll(params.Prediction.Action, "_", " ") + ".")
		}
	}
	return strings.TrimSpace(b.String())
}

func predictionOr(pred *marketdata.Prediction, pick func(*marketdata.Prediction) float64, fallback float64) float64 {
	if pred == nil {
		return fallback
	}
	if v := pick(pred); v > 0 {
		return v
	}
	return fallback
}

// translateAction renders the ML action suggestion in the target
// language so voice output stays single-script.
func translateAction(action string, lang language.Code) string {
	normalized := strings.ToLower(action)
	if lang == language.Hindi {
		switch {
		case strings.Contains(normalized, "sell"):
			return "अभी बेचें"
		case strings.Contains(normalized, "store"), strings.Contains(normalized, "hold"):
			return "रोक कर रखें"
		default:
			return "निगरानी करें"
		}
	}
	switch {
	case strings.Contains(normalized, "sell"):
		return "ਹੁਣੇ ਵੇਚੋ"
	case strings.Contains(normalized, "store"), strings.Contains(normalized, "hold"):
		return "ਰੱਖੋ/ਸੰਭਾਲੋ"
	default:
		return "ਨਿਗਰਾਨੀ ਕਰੋ"
	}
}
