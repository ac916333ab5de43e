package language

// IntentPatterns holds the per-language keyword catalog used for offline
// intent scoring. Entries include transliterated slang farmers actually
// say ("bhav", "kimat") alongside dictionary forms.
var IntentPatterns = map[Intent]map[Code][]string{
	IntentGreeting: {
		English: {"hello", "hi", "hey", "good morning", "good evening", "namaste", "pranam", "ram ram", "greetings", "good afternoon"},
		Hindi:   {"नमस्ते", "नमस्कार", "प्रणाम", "सलाम", "हाय", "हेलो", "नमस्ते जी", "नमस्तेजी", "राम राम", "प्रणाम जी", "नमस्कार जी", "नमस्ते bhai", "नमस्ते दोस्त"},
		Punjabi: {"ਸਤ ਸ੍ਰੀ ਅਕਾਲ", "ਸਤ ਸ੍ਰੀ ਅਕਾਲ ਜੀ", "ਨਮਸਤੇ", "ਹੈਲੋ", "ਹਾਇ", "ਸਤ ਸ੍ਰੀ ਅਕਾਲ ਜੀਓ", "ਸਤ ਸ੍ਰੀ ਅਕਾਲ ਭਾਈ"},
	},
	IntentPriceCheck: {
		English: {"price", "rate", "cost", "value", "market price", "mandi price", "current price", "how much", "bhav", "mandi rate", "daam", "rate kya"},
		Hindi:   {"कीमत", "दर", "मंडी", "भाव", "मूल्य", "कितना", "क्या रेट", "वर्तमान कीमत", "आज का भाव", "दाम", "भाव कितना"},
		Punjabi: {"ਕੀਮਤ", "ਦਰ", "ਮੰਡੀ", "ਭਾਵ", "ਮੁੱਲ", "ਕਿੰਨਾ", "ਕੀ ਰੇਟ", "ਵਰਤਮਾਨ ਕੀਮਤ", "ਅੱਜ ਦਾ ਭਾਵ", "kimat", "bhav"},
	},
	IntentWeatherCheck: {
		English: {"weather", "temperature", "rain", "humidity", "forecast", "climate", "mausam", "barish", "garmi", "sardi"},
		Hindi:   {"मौसम", "तापमान", "बारिश", "आर्द्रता", "पूर्वानुमान", "पानी", "गर्मी", "सर्दी", "मौसम कैसा"},
		Punjabi: {"ਮੌਸਮ", "ਤਾਪਮਾਨ", "ਬਾਰਸ਼", "ਨਮੀ", "ਪੂਰਵਾਨੁਮਾਨ", "ਪਾਣੀ", "ਗਰਮੀ", "ਸਰਦੀ", "ਮੌਸਮ ਕੈਸਾ"},
	},
	IntentStorageInfo: {
		English: {"storage", "warehouse", "godown", "store", "preserve", "shelf life", "where to store"},
		Hindi:   {"स्टोरेज", "गोदाम", "भंडारण", "संरक्षण", "रखना", "संभालना", "कहाँ रखें", "गोडाउन"},
		Punjabi: {"ਸਟੋਰੇਜ", "ਗੋਦਾਮ", "ਭੰਡਾਰਣ", "ਸੁਰੱਖਿਆ", "ਰੱਖਣਾ", "ਸੰਭਾਲਣਾ", "ਕਿੱਥੇ ਰੱਖੀਏ", "godown"},
	},
	IntentCropAdvice: {
		English: {"crop", "farming", "agriculture", "sowing", "harvesting", "irrigation", "seed", "fertilizer", "pesticide"},
		Hindi:   {"फसल", "खेती", "कृषि", "बुवाई", "कटाई", "सिंचाई", "बीज", "खाद", "दवा", "कीटनाशक"},
		Punjabi: {"ਫਸਲ", "ਖੇਤੀ", "ਕਿਸਾਨੀ", "ਬੀਜਣਾ", "ਕਟਾਈ", "ਸਿੰਚਾਈ", "ਬੀਜ", "ਖਾਦ", "ਦਵਾਈ"},
	},
	IntentFinancialCalc: {
		English: {"profit", "loss", "cost", "expense", "income", "calculation", "finance", "kitna milega", "kitna kharch"},
		Hindi:   {"लाभ", "हानि", "खर्च", "आय", "गणना", "वित्त", "कितना मिलेगा", "कितना खर्च"},
		Punjabi: {"ਲਾਭ", "ਹਾਨੀ", "ਖਰਚ", "ਆਮਦਨੀ", "ਗਣਨਾ", "ਵਿੱਤ", "ਕਿੰਨਾ ਮਿਲੇਗਾ", "ਕਿੰਨਾ ਖਰਚ"},
	},
	IntentNavigation: {
		English: {"go to", "switch to", "show", "open", "navigate", "take me to", "move to"},
		Hindi:   {"जाओ", "दिखाओ", "खोलो", "ले जाओ", "स्क्रीन बदलो", "पेज खोलो", "टैब बदलो"},
		Punjabi: {"ਜਾਓ", "ਦਿਖਾਓ", "ਖੋਲ੍ਹੋ", "ਲੈ ਜਾਓ", "ਸਕ੍ਰੀਨ ਬਦਲੋ", "ਪੇਜ ਖੋਲ੍ਹੋ", "ਟੈਬ ਬਦਲੋ"},
	},
	IntentHelp: {
		English: {"help", "assist", "support", "guide", "how to", "what can you do"},
		Hindi:   {"मदद", "सहायता", "गाइड", "कैसे", "क्या कर सकते हो", "क्या सिखा सकते हो"},
		Punjabi: {"ਮਦਦ", "ਸਹਾਇਤਾ", "ਗਾਈਡ", "ਕਿਵੇਂ", "ਕੀ ਕਰ ਸਕਦੇ ਹੋ", "ਕੀ ਸਿਖਾ ਸਕਦੇ ਹੋ"},
	},
}

// Patterns returns the keyword list for an intent in a language, falling
// back to English when the language has no entries.
func Patterns(intent Intent, lang Code) []string {
	byLang, ok := IntentPatterns[intent]
	if !ok {
		return nil
	}
	if ps, ok := byLang[lang]; ok && len(ps) > 0 {
		return ps
	}
	return byLang[English]
}

// NavigationVerbs are the command verbs, across scripts and
// transliterations, that mark an utterance as a pure navigation command.
var NavigationVerbs = []string{
	"go to", "switch to", "show", "open", "navigate", "take me to",
	// Hindi
	"जाओ", "दिखाओ", "खोलो", "ले जाओ", "स्क्रीन बदलो", "पेज खोलो",
	// Punjabi (Latin)
	"dikhao", "kholo", "le jao", "tab dikhao",
	// Punjabi (Gurmukhi)
	"ਦਿਖਾਓ", "ਖੋਲੋ", "ਲੇ ਜਾਓ", "ਟੈਬ ਦਿਖਾਓ", "ਟੈਬ ਖੋਲੋ",
}
