package language

// CropKnowledge is the static agronomy record for one crop in one
// language. All text is pre-localized; no translation happens at answer
// time.
type CropKnowledge struct {
	Sowing          string
	Harvesting      string
	Pests           []string
	Fertilizers     []string
	Irrigation      string
	Yield           string
	Storage         string
	Diseases        []string
	MarketTrend     string
	BestSellingTime string
	CommonMarkets   []string
}

var cropKnowledge = map[string]map[Code]CropKnowledge{
	"wheat": {
		English: {
			Sowing:          "October to December",
			Harvesting:      "March to April",
			Pests:           []string{"aphids", "rust", "powdery mildew"},
			Fertilizers:     []string{"NPK 20:20:20", "Urea", "DAP"},
			Irrigation:      "Requires 4-5 irrigations",
			Yield:           "4-5 tons per hectare",
			Storage:         "Keep in dry, well-ventilated place",
			Diseases:        []string{"rust", "smut", "loose smut"},
			MarketTrend:     "Prices usually peak in March-April",
			BestSellingTime: "March to May",
			CommonMarkets:   []string{"Rajpura", "Ghanaur", "Patiala"},
		},
		Hindi: {
			Sowing:          "अक्टूबर से दिसंबर",
			Harvesting:      "मार्च से अप्रैल",
			Pests:           []string{"एफिड्स", "रस्ट", "पाउडरी मिल्ड्यू"},
			Fertilizers:     []string{"NPK 20:20:20", "यूरिया", "DAP"},
			Irrigation:      "4-5 सिंचाई की आवश्यकता",
			Yield:           "प्रति हेक्टेयर 4-5 टन",
			Storage:         "सूखे, हवादार स्थान में रखें",
			Diseases:        []string{"रस्ट", "स्मट", "लूज स्मट"},
			MarketTrend:     "कीमतें आमतौर पर मार्च-अप्रैल में चरम पर होती हैं",
			BestSellingTime: "मार्च से मई",
			CommonMarkets:   []string{"राजपुरा", "घनौर", "पटियाला"},
		},
		Punjabi: {
			Sowing:          "ਅਕਤੂਬਰ ਤੋਂ ਦਸੰਬਰ",
			Harvesting:      "ਮਾਰਚ ਤੋਂ ਅਪ੍ਰੈਲ",
			Pests:           []string{"ਏਫਿਡਸ", "ਰਸਟ", "ਪਾਊਡਰੀ ਮਿਲਡਿਊ"},
			Fertilizers:     []string{"NPK 20:20:20", "ਯੂਰੀਆ", "DAP"},
			Irrigation:      "4-5 ਸਿੰਚਾਈ ਦੀ ਲੋੜ",
			Yield:           "ਪ੍ਰਤੀ ਹੈਕਟੇਅਰ 4-5 ਟਨ",
			Storage:         "ਸੁੱਕੇ, ਹਵਾਦਾਰ ਜਗ੍ਹਾ ਵਿੱਚ ਰੱਖੋ",
			Diseases:        []string{"ਰਸਟ", "ਸਮਟ", "ਲੂਜ਼ ਸਮਟ"},
			MarketTrend:     "ਕੀਮਤਾਂ ਆਮ ਤੌਰ ਤੇ ਮਾਰਚ-ਅਪ੍ਰੈਲ ਵਿੱਚ ਚਰਮ ਤੇ ਹੁੰਦੀਆਂ ਹਨ",
			BestSellingTime: "ਮਾਰਚ ਤੋਂ ਮਈ",
			CommonMarkets:   []string{"ਰਾਜਪੁਰਾ", "ਘਨੌਰ", "ਪਟਿਆਲਾ"},
		},
	},
	"rice": {
		English: {
			Sowing:          "June to July",
			Harvesting:      "October to November",
			Pests:           []string{"stem borer", "leaf folder", "brown plant hopper"},
			Fertilizers:     []string{"Urea", "DAP", "Potash"},
			Irrigation:      "Requires standing water",
			Yield:           "6-7 tons per hectare",
			Storage:         "Store in moisture-controlled environment",
			Diseases:        []string{"blast", "bacterial blight", "tungro virus"},
			MarketTrend:     "Prices peak during festival season",
			BestSellingTime: "October to December",
			CommonMarkets:   []string{"Amritsar", "Jalandhar", "Ludhiana"},
		},
		Hindi: {
			Sowing:          "जून से जुलाई",
			Harvesting:      "अक्टूबर से नवंबर",
			Pests:           []string{"स्टेम बोरर", "लीफ फोल्डर", "ब्राउन प्लांट होपर"},
			Fertilizers:     []string{"यूरिया", "DAP", "पोटाश"},
			Irrigation:      "खड़े पानी की आवश्यकता",
			Yield:           "प्रति हेक्टेयर 6-7 टन",
			Storage:         "नमी नियंत्रित वातावरण में स्टोर करें",
			Diseases:        []string{"ब्लास्ट", "बैक्टीरियल ब्लाइट", "टंग्रो वायरस"},
			MarketTrend:     "त्योहार के मौसम में कीमतें चरम पर होती हैं",
			BestSellingTime: "अक्टूबर से दिसंबर",
			CommonMarkets:   []string{"अमृतसर", "जालंधर", "लुधियाना"},
		},
		Punjabi: {
			Sowing:          "ਜੂਨ ਤੋਂ ਜੁਲਾਈ",
			Harvesting:      "ਅਕਤੂਬਰ ਤੋਂ ਨਵੰਬਰ",
			Pests:           []string{"ਸਟੇਮ ਬੋਰਰ", "ਲੀਫ ਫੋਲਡਰ", "ਬ੍ਰਾਊਨ ਪਲਾਂਟ ਹੌਪਰ"},
			Fertilizers:     []string{"ਯੂਰੀਆ", "DAP", "ਪੋਟਾਸ਼"},
			Irrigation:      "ਖੜ੍ਹੇ ਪਾਣੀ ਦੀ ਲੋੜ",
			Yield:           "ਪ੍ਰਤੀ ਹੈਕਟੇਅਰ 6-7 ਟਨ",
			Storage:         "ਨਮੀ ਨਿਯੰਤਰਿਤ ਵਾਤਾਵਰਣ ਵਿੱਚ ਸਟੋਰ ਕਰੋ",
			Diseases:        []string{"ਬਲਾਸਟ", "ਬੈਕਟੀਰੀਅਲ ਬਲਾਈਟ", "ਟੰਗਰੋ ਵਾਇਰਸ"},
			MarketTrend:     "ਤਿਉਹਾਰ ਦੇ ਮੌਸਮ ਵਿੱਚ ਕੀਮਤਾਂ ਚਰਮ ਤੇ ਹੁੰਦੀਆਂ ਹਨ",
			BestSellingTime: "ਅਕਤੂਬਰ ਤੋਂ ਦਸੰਬਰ",
			CommonMarkets:   []string{"ਅੰਮ੍ਰਿਤਸਰ", "ਜਲੰਧਰ", "ਲੁਧਿਆਣਾ"},
		},
	},
	"potato": {
		English: {
			Sowing:          "October to November",
			Harvesting:      "February to March",
			Pests:           []string{"aphids", "potato tuber moth", "wireworms"},
			Fertilizers:     []string{"NPK", "Urea", "Potash"},
			Irrigation:      "Requires regular irrigation",
			Yield:           "25-30 tons per hectare",
			Storage:         "Store in cool, dark place",
			Diseases:        []string{"late blight", "early blight", "blackleg"},
			MarketTrend:     "Prices high during summer months",
			BestSellingTime: "February to April",
			CommonMarkets:   []string{"Jalandhar", "Ludhiana", "Amritsar"},
		},
		Hindi: {
			Sowing:          "अक्टूबर से नवंबर",
			Harvesting:      "फरवरी से मार्च",
			Pests:           []string{"एफिड्स", "आलू ट्यूबर मोथ", "वायरवर्म्स"},
			Fertilizers:     []string{"NPK", "यूरिया", "पोटाश"},
			Irrigation:      "नियमित सिंचाई की आवश्यकता",
			Yield:           "प्रति हेक्टेयर 25-30 टन",
			Storage:         "ठंडे, अंधेरे स्थान में स्टोर करें",
			Diseases:        []string{"लेट ब्लाइट", "अर्ली ब्लाइट", "ब्लैकलेग"},
			MarketTrend:     "गर्मी के महीनों में कीमतें अधिक होती हैं",
			BestSellingTime: "फरवरी से अप्रैल",
			CommonMarkets:   []string{"जालंधर", "लुधियाना", "अमृतसर"},
		},
		Punjabi: {
			Sowing:          "ਅਕਤੂਬਰ ਤੋਂ ਨਵੰਬਰ",
			Harvesting:      "ਫਰਵਰੀ ਤੋਂ ਮਾਰਚ",
			Pests:           []string{"ਏਫਿਡਸ", "ਆਲੂ ਟਿਊਬਰ ਮੋਥ", "ਵਾਇਰਵਰਮਸ"},
			Fertilizers:     []string{"NPK", "ਯੂਰੀਆ", "ਪੋਟਾਸ਼"},
			Irrigation:      "ਨਿਯਮਿਤ ਸਿੰਚਾਈ ਦੀ ਲੋੜ",
			Yield:           "ਪ੍ਰਤੀ ਹੈਕਟੇਅਰ 25-30 ਟਨ",
			Storage:         "ਠੰਡੇ, ਹਨੇਰੇ ਸਥਾਨ ਵਿੱਚ ਸਟੋਰ ਕਰੋ",
			Diseases:        []string{"ਲੇਟ ਬਲਾਈਟ", "ਅਰਲੀ ਬਲਾਈਟ", "ਬਲੈਕਲੈਗ"},
			MarketTrend:     "ਗਰਮੀ ਦੇ ਮਹੀਨਿਆਂ ਵਿੱਚ ਕੀਮਤਾਂ ਉੱਚੀਆਂ ਹੁੰਦੀਆਂ ਹਨ",
			BestSellingTime: "ਫਰਵਰੀ ਤੋਂ ਅਪ੍ਰੈਲ",
			CommonMarkets:   []string{"ਜਲੰਧਰ", "ਲੁਧਿਆਣਾ", "ਅੰਮ੍ਰਿਤਸਰ"},
		},
	},
}

// CropInfo returns the knowledge record for a crop in a language.
// Unknown crops resolve to wheat, the region's staple.
func CropInfo(crop string, lang Code) CropKnowledge {
	byLang, ok := cropKnowledge[crop]
	if !ok {
		byLang = cropKnowledge["wheat"]
	}
	if info, ok := byLang[lang]; ok {
		return info
	}
	return byLang[English]
}

// KnownCrops lists crops with full knowledge records.
func KnownCrops() []string {
	return []string{"wheat", "rice", "potato"}
}

// WeatherAdvice keys: hot, cold, rainy, normal.
var WeatherAdvice = map[string]map[Code]string{
	"hot": {
		English: "High temperature requires more irrigation. Monitor soil moisture.",
		Hindi:   "गर्मी में अधिक सिंचाई की आवश्यकता। मिट्टी की नमी की निगरानी करें।",
		Punjabi: "ਉੱਚ ਤਾਪਮਾਨ ਵਿੱਚ ਵਧੇਰੇ ਸਿੰਚਾਈ ਦੀ ਲੋੜ। ਮਿੱਟੀ ਦੀ ਨਮੀ ਦੀ ਨਿਗਰਾਨੀ ਕਰੋ।",
	},
	"cold": {
		English: "Cold weather requires crop protection. Watch for frost.",
		Hindi:   "सर्दी में फसल सुरक्षा की आवश्यकता। पाला पड़ने की संभावना।",
		Punjabi: "ਠੰਡੇ ਮੌਸਮ ਵਿੱਚ ਫਸਲ ਸੁਰੱਖਿਆ ਦੀ ਲੋੜ। ਪਾਲਾ ਪੈਣ ਦੀ ਸੰਭਾਵਨਾ।",
	},
	"rainy": {
		English: "Rainy weather requires drainage. Protect crops from waterlogging.",
		Hindi:   "बारिश में जल निकासी की आवश्यकता। फसल को जलभराव से बचाएं।",
		Punjabi: "ਬਾਰਸ਼ੀ ਮੌਸਮ ਵਿੱਚ ਜਲ ਨਿਕਾਸੀ ਦੀ ਲੋੜ। ਫਸਲ ਨੂੰ ਜਲਭਰਾਵ ਤੋਂ ਬਚਾਓ।",
	},
	"normal": {
		English: "Conditions are normal. Maintain regular irrigation and monitoring.",
		Hindi:   "स्थितियां सामान्य हैं। नियमित सिंचाई और निगरानी बनाए रखें।",
		Punjabi: "ਹਾਲਾਤ ਆਮ ਹਨ। ਨਿਯਮਿਤ ਸਿੰਚਾਈ ਅਤੇ ਨਿਗਰਾਨੀ ਜਾਰੀ ਰੱਖੋ।",
	},
}

// MarketInsight keys: rising, falling, stable.
var MarketInsight = map[string]map[Code]string{
	"rising": {
		English: "Prices are rising. Good time to sell.",
		Hindi:   "कीमतें बढ़ रही हैं। बेचने का अच्छा समय।",
		Punjabi: "ਕੀਮਤਾਂ ਵਧ ਰਹੀਆਂ ਹਨ। ਵੇਚਣ ਦਾ ਚੰਗਾ ਸਮਾਂ।",
	},
	"falling": {
		English: "Prices are falling. Wait for better rates.",
		Hindi:   "कीमतें गिर रही हैं। बेहतर दरों का इंतजार करें।",
		Punjabi: "ਕੀਮਤਾਂ ਘਟ ਰਹੀਆਂ ਹਨ। ਬਿਹਤਰ ਦਰਾਂ ਦਾ ਇੰਤਜ਼ਾਰ ਕਰੋ।",
	},
	"stable": {
		English: "Prices are stable. Monitor market trends.",
		Hindi:   "कीमतें स्थिर हैं। बाजार ट्रेंड की निगरानी करें।",
		Punjabi: "ਕੀਮਤਾਂ ਸਥਿਰ ਹਨ। ਬਾਜ਼ਾਰ ਟ੍ਰੈਂਡ ਦੀ ਨਿਗਰਾਨੀ ਕਰੋ।",
	},
}
