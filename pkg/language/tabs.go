package language

import "strings"

// Tab identifies a dashboard tab voice navigation can reach.
type Tab string

const (
	TabMarket      Tab = "market"
	TabStorage     Tab = "storage"
	TabWeather     Tab = "weather"
	TabAI          Tab = "ai"
	TabSupplyChain Tab = "supplychain"
)

// TabInfo is the localized presentation of a dashboard tab.
type TabInfo struct {
	Name        string
	Description string
}

var TabDetails = map[Tab]map[Code]TabInfo{
	TabMarket: {
		English: {Name: "Market Intelligence", Description: "View current market prices and trends"},
		Hindi:   {Name: "मार्केट इंटेलिजेंस", Description: "वर्तमान बाजार कीमतें और ट्रेंड देखें"},
		Punjabi: {Name: "ਮਾਰਕੇਟ ਇੰਟੈਲੀਜੈਂਸ", Description: "ਵਰਤਮਾਨ ਬਾਜ਼ਾਰ ਕੀਮਤਾਂ ਅਤੇ ਟ੍ਰੈਂਡ ਦੇਖੋ"},
	},
	TabStorage: {
		English: {Name: "Storage Optimization", Description: "Find storage facilities and optimization tips"},
		Hindi:   {Name: "स्टोरेज ऑप्टिमाइजेशन", Description: "स्टोरेज सुविधाएं और ऑप्टिमाइजेशन टिप्स खोजें"},
		Punjabi: {Name: "ਸਟੋਰੇਜ ਆਪਟੀਮਾਈਜ਼ੇਸ਼ਨ", Description: "ਸਟੋਰੇਜ ਸੁਵਿਧਾਵਾਂ ਅਤੇ ਆਪਟੀਮਾਈਜ਼ੇਸ਼ਨ ਟਿਪਸ ਲੱਭੋ"},
	},
	TabWeather: {
		English: {Name: "Weather & Climate", Description: "Check weather forecasts and climate data"},
		Hindi:   {Name: "मौसम और जलवायु", Description: "मौसम पूर्वानुमान और जलवायु डेटा देखें"},
		Punjabi: {Name: "ਮੌਸਮ ਅਤੇ ਜਲਵਾਯੂ", Description: "ਮੌਸਮ ਪੂਰਵਾਨੁਮਾਨ ਅਤੇ ਜਲਵਾਯੂ ਡੇਟਾ ਦੇਖੋ"},
	},
	TabAI: {
		English: {Name: "AI Insights", Description: "Get AI-powered agricultural recommendations"},
		Hindi:   {Name: "AI इनसाइट्स", Description: "AI-संचालित कृषि सिफारिशें प्राप्त करें"},
		Punjabi: {Name: "AI ਇਨਸਾਈਟਸ", Description: "AI-ਸੰਚਾਲਿਤ ਕਿਸਾਨੀ ਸਿਫਾਰਸ਼ਾਂ ਪ੍ਰਾਪਤ ਕਰੋ"},
	},
	TabSupplyChain: {
		English: {Name: "Supply Chain", Description: "Track supply chain and logistics"},
		Hindi:   {Name: "सप्लाई चेन", Description: "सप्लाई चेन और लॉजिस्टिक्स ट्रैक करें"},
		Punjabi: {Name: "ਸਪਲਾਈ ਚੇਨ", Description: "ਸਪਲਾਈ ਚੇਨ ਅਤੇ ਲਾਜਿਸਟਿਕਸ ਟ੍ਰੈਕ ਕਰੋ"},
	},
}

// Detail returns the localized tab info, falling back to English.
func Detail(tab Tab, lang Code) TabInfo {
	byLang, ok := TabDetails[tab]
	if !ok {
		byLang = TabDetails[TabMarket]
	}
	if info, ok := byLang[lang]; ok {
		return info
	}
	return byLang[English]
}

// tabKeywords map utterance substrings to a target tab. Checked in
// order; market is the default when only a navigation verb is present.
var tabKeywords = []struct {
	tab      Tab
	keywords []string
}{
	{TabStorage, []string{"storage", "warehouse", "godown", "गोदाम", "स्टोरेज", "ਸਟੋਰੇਜ", "ਗੋਦਾਮ"}},
	{TabWeather, []string{"weather", "climate", "mausam", "मौसम", "ਮੌਸਮ"}},
	{TabAI, []string{"ai", "insights", "intelligence", "इनसाइट्स", "ਇਨਸਾਈਟਸ"}},
	{TabSupplyChain, []string{"supply", "chain", "logistics", "सप्लाई", "चेन", "ਸਪਲਾਈ", "ਚੇਨ"}},
	{TabMarket, []string{"market", "price", "mandi", "bhav", "भाव", "कीमत", "मंडी", "ਮੰਡੀ", "ਕੀਮਤ"}},
}

// ResolveTab maps an utterance to the dashboard tab it names. The bool
// reports whether a tab keyword matched explicitly.
func ResolveTab(text string) (Tab, bool) {
	lower := strings.ToLower(text)
	for _, entry := range tabKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.tab, true
			}
		}
	}
	return TabMarket, false
}

// HasNavigationVerb reports whether the utterance carries an explicit
// navigation command verb.
func HasNavigationVerb(text string) bool {
	lower := strings.ToLower(text)
	for _, verb := range NavigationVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}
