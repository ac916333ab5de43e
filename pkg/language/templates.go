package language

// ResponseTemplates are the offline answer templates. Placeholders in
// braces are filled by the synthesizer.
var ResponseTemplates = map[Intent]map[Code]string{
	IntentGreeting: {
		English: "Hello! I'm your AI farming assistant. Ask me about prices, weather, storage, crop advice, or navigation.",
		Hindi:   "नमस्ते! मैं आपका AI कृषि सहायक हूं। कीमत, मौसम, स्टोरेज, फसल सलाह या नेविगेशन के बारे में पूछें।",
		Punjabi: "ਸਤ ਸ੍ਰੀ ਅਕਾਲ! ਮੈਂ ਤੁਹਾਡਾ AI ਕਿਸਾਨੀ ਸਹਾਇਕ ਹਾਂ। ਕੀਮਤਾਂ, ਮੌਸਮ, ਸਟੋਰੇਜ, ਫਸਲ ਸਲਾਹ ਜਾਂ ਨੈਵੀਗੇਸ਼ਨ ਬਾਰੇ ਪੁੱਛੋ।",
	},
	IntentPriceCheck: {
		English: "The current market price for {crop} in {location} is approximately ₹{price} per quintal. {trend_info} {advice}",
		Hindi:   "{location} में {crop} का वर्तमान बाजार भाव लगभग ₹{price} प्रति क्विंटल है। {trend_info} {advice}",
		Punjabi: "{location} ਵਿੱਚ {crop} ਦੀ ਵਰਤਮਾਨ ਬਾਜ਼ਾਰ ਕੀਮਤ ਲਗਭਗ ₹{price} ਪ੍ਰਤੀ ਕੁਇੰਟਲ ਹੈ। {trend_info} {advice}",
	},
	IntentWeatherCheck: {
		English: "Current weather in {location} is {temp}°C with {condition}. {advice}",
		Hindi:   "{location} में वर्तमान मौसम {temp}°C है और {condition}। {advice}",
		Punjabi: "{location} ਵਿੱਚ ਵਰਤਮਾਨ ਮੌਸਮ {temp}°C ਹੈ ਅਤੇ {condition}। {advice}",
	},
	IntentStorageInfo: {
		English: "I found {count} storage facilities near {location}. The nearest warehouse is {name} with {capacity} tons capacity. {advice}",
		Hindi:   "मैंने {location} के पास {count} स्टोरेज सुविधाएं पाई हैं। निकटतम गोदाम {name} है जिसकी क्षमता {capacity} टन है। {advice}",
		Punjabi: "ਮੈਨੂੰ {location} ਦੇ ਨੇੜੇ {count} ਸਟੋਰੇਜ ਸੁਵਿਧਾਵਾਂ ਮਿਲੀਆਂ ਹਨ। ਨਜ਼ਦੀਕੀ ਗੋਦਾਮ {name} ਹੈ ਜਿਸਦੀ ਸਮਰੱਥਾ {capacity} ਟਨ ਹੈ। {advice}",
	},
	IntentCropAdvice: {
		English: "For {crop} in {location}, I recommend {advice}. Optimal sowing time is {sowing_time}. {additional_tips}",
		Hindi:   "{location} में {crop} के लिए, मैं {advice} सलाह देता हूं। बुवाई का सर्वोत्तम समय {sowing_time} है। {additional_tips}",
		Punjabi: "{location} ਵਿੱਚ {crop} ਲਈ, ਮੈਂ {advice} ਸਲਾਹ ਦਿੰਦਾ ਹਾਂ। ਬੀਜਣ ਦਾ ਸਰਵੋਤਮ ਸਮਾਂ {sowing_time} ਹੈ। {additional_tips}",
	},
	IntentFinancialCalc: {
		English: "Based on current prices, your {quantity} tons of {crop} would fetch approximately ₹{revenue}. Estimated profit margin is {margin}%. {financial_advice}",
		Hindi:   "वर्तमान कीमतों के आधार पर, आपके {quantity} टन {crop} से लगभग ₹{revenue} मिलेंगे। अनुमानित लाभ मार्जिन {margin}% है। {financial_advice}",
		Punjabi: "ਵਰਤਮਾਨ ਕੀਮਤਾਂ ਦੇ ਆਧਾਰ ਤੇ, ਤੁਹਾਡੇ {quantity} ਟਨ {crop} ਤੋਂ ਲਗਭਗ ₹{revenue} ਮਿਲਣਗੇ। ਅਨੁਮਾਨਿਤ ਲਾਭ ਮਾਰਜਿਨ {margin}% ਹੈ। {financial_advice}",
	},
	IntentNavigation: {
		English: "Navigating to {tab_name}. {tab_description}",
		Hindi:   "{tab_name} में जा रहा हूं। {tab_description}",
		Punjabi: "{tab_name} ਵਿੱਚ ਜਾ ਰਿਹਾ ਹਾਂ। {tab_description}",
	},
	IntentHelp: {
		English: "I'm your AI farming assistant! I can help with market prices, weather updates, crop advice, financial calculations, and navigation. Just ask me anything about farming in natural language!",
		Hindi:   "मैं आपका AI कृषि सहायक हूं! मैं मंडी की कीमतों, मौसम अपडेट, फसल सलाह, वित्तीय गणना और नेविगेशन में मदद कर सकता हूं। बस मुझसे खेती के बारे में प्राकृतिक भाषा में कुछ भी पूछें!",
		Punjabi: "ਮੈਂ ਤੁਹਾਡਾ AI ਕਿਸਾਨੀ ਸਹਾਇਕ ਹਾਂ! ਮੈਂ ਮੰਡੀ ਦੀਆਂ ਕੀਮਤਾਂ, ਮੌਸਮ ਅਪਡੇਟ, ਫਸਲ ਸਲਾਹ, ਵਿੱਤੀ ਗਣਨਾ ਅਤੇ ਨੈਵੀਗੇਸ਼ਨ ਵਿੱਚ ਮਦਦ ਕਰ ਸਕਦਾ ਹਾਂ। ਬਸ ਮੈਨੂੰ ਕਿਸਾਨੀ ਬਾਰੇ ਕੁਦਰਤੀ ਭਾਸ਼ਾ ਵਿੱਚ ਕੁਝ ਵੀ ਪੁੱਛੋ!",
	},
}

// Template returns the response template for an intent in a language,
// falling back to English.
func Template(intent Intent, lang Code) string {
	byLang, ok := ResponseTemplates[intent]
	if !ok {
		return ""
	}
	if t, ok := byLang[lang]; ok && t != "" {
		return t
	}
	return byLang[English]
}

// FallbackText is the localized answer used when every other path failed.
var FallbackText = map[Code]string{
	English: "I'm sorry, I didn't understand that. Please try asking about prices, weather, crops, or navigation.",
	Hindi:   "माफ़ करें, मैं आपकी बात समझ नहीं पाया। कृपया कीमत, मौसम, फसल या नेविगेशन के बारे में पूछें।",
	Punjabi: "ਮਾਫ਼ ਕਰੋ, ਮੈਂ ਤੁਹਾਡੀ ਗੱਲ ਨਹੀਂ ਸਮਝ ਸਕਿਆ। ਕਿਰਪਾ ਕਰਕੇ ਕੀਮਤਾਂ, ਮੌਸਮ, ਫਸਲਾਂ ਜਾਂ ਨੈਵੀਗੇਸ਼ਨ ਬਾਰੇ ਪੁੱਛੋ।",
}

// PermissionDeniedText is shown when microphone access is blocked.
var PermissionDeniedText = map[Code]string{
	English: "Microphone access denied. Please allow microphone permissions.",
	Hindi:   "माइक्रोफ़ोन एक्सेस अस्वीकृत। कृपया माइक्रोफ़ोन अनुमति दें।",
	Punjabi: "ਮਾਈਕ੍ਰੋਫੋਨ ਪਹੁੰਚ ਅਸਵੀਕਾਰ। ਕਿਰਪਾ ਕਰਕੇ ਮਾਈਕ੍ਰੋਫੋਨ ਇਜਾਜ਼ਤ ਦਿਓ।",
}

// GeneralText answers in-domain utterances that matched no template.
var GeneralText = map[Code]string{
	English: "I can help you with {crop} farming in {location}. Ask about prices, weather, storage, pest control, fertilizers, or financial calculations.",
	Hindi:   "मैं {location} में {crop} की खेती में आपकी मदद कर सकता हूं। कीमत, मौसम, स्टोरेज, कीट नियंत्रण, खाद, या वित्तीय गणना के बारे में पूछें।",
	Punjabi: "ਮੈਂ {location} ਵਿੱਚ {crop} ਦੀ ਕਿਸਾਨੀ ਵਿੱਚ ਤੁਹਾਡੀ ਮਦਦ ਕਰ ਸਕਦਾ ਹਾਂ। ਕੀਮਤਾਂ, ਮੌਸਮ, ਸਟੋਰੇਜ, ਕੀੜੇ ਨਿਯੰਤਰਣ, ਖਾਦ, ਜਾਂ ਵਿੱਤੀ ਗਣਨਾ ਬਾਰੇ ਪੁੱਛੋ।",
}

// WeatherConditions are the sky descriptions used in offline weather
// answers, per language.
var WeatherConditions = map[Code][]string{
	English: {"sunny", "cloudy", "partly cloudy"},
	Hindi:   {"धूप", "बादल", "आंशिक बादल"},
	Punjabi: {"ਧੁੱਪ", "ਬੱਦਲਵਾਈ", "ਅੰਸ਼ਕ ਬੱਦਲਵਾਈ"},
}

// FinancialAdviceText is the closing advice in offline revenue estimates.
var FinancialAdviceText = map[Code]string{
	English: "Consider selling during peak season for better prices.",
	Hindi:   "बेहतर कीमतों के लिए पीक सीजन में बेचने पर विचार करें।",
	Punjabi: "ਬਿਹਤਰ ਕੀਮਤਾਂ ਲਈ ਪੀਕ ਸੀਜ਼ਨ ਵਿੱਚ ਵੇਚਣ ਬਾਰੇ ਵਿਚਾਰ ਕਰੋ।",
}

// Localized returns text for lang from a per-language table, falling
// back to English.
func Localized(table map[Code]string, lang Code) string {
	if t, ok := table[lang]; ok && t != "" {
		return t
	}
	return table[English]
}
