package language

import "testing"

func TestNormalizeLocaleTags(t *testing.T) {
	cases := map[string]Code{
		"hi-IN":   Hindi,
		"pa_IN":   Punjabi,
		"en-US":   English,
		"HI":      Hindi,
		"":        English,
		"bogus":   English,
		"pa":      Punjabi,
		" en-IN ": English,
	}
	for tag, want := range cases {
		if got := Normalize(tag); got != want {
			t.Fatalf("Normalize(%q) = %s, want %s", tag, got, want)
		}
	}
}

func TestLocaleRoundTrip(t *testing.T) {
	for _, code := range Supported() {
		if got := Normalize(code.Locale()); got != code {
			t.Fatalf("Normalize(Locale(%s)) = %s", code, got)
		}
	}
}

func TestContainsScript(t *testing.T) {
	if !ContainsScript(Hindi, "गेहूं का भाव क्या है") {
		t.Fatal("devanagari text should pass the hindi script check")
	}
	if ContainsScript(Hindi, "what is the wheat price") {
		t.Fatal("latin text should fail the hindi script check")
	}
	if !ContainsScript(Punjabi, "ਕਣਕ ਦੀ ਕੀਮਤ") {
		t.Fatal("gurmukhi text should pass the punjabi script check")
	}
	if ContainsScript(Punjabi, "गेहूं") {
		t.Fatal("devanagari text should fail the punjabi script check")
	}
	if !ContainsScript(English, "hello") {
		t.Fatal("latin text should pass the english script check")
	}
}

func TestResolveTab(t *testing.T) {
	cases := []struct {
		text     string
		tab      Tab
		explicit bool
	}{
		{"मुझे मौसम दिखाओ", TabWeather, true},
		{"open the storage page", TabStorage, true},
		{"ਸਪਲਾਈ ਚੇਨ ਖੋਲੋ", TabSupplyChain, true},
		{"show me mandi prices", TabMarket, true},
		{"go back", TabMarket, false},
	}
	for _, tc := range cases {
		tab, ok := ResolveTab(tc.text)
		if tab != tc.tab || ok != tc.explicit {
			t.Fatalf("ResolveTab(%q) = (%s, %v), want (%s, %v)", tc.text, tab, ok, tc.tab, tc.explicit)
		}
	}
}

func TestHasNavigationVerb(t *testing.T) {
	if !HasNavigationVerb("खोलो मार्केट टैब") {
		t.Fatal("hindi navigation verb not detected")
	}
	if HasNavigationVerb("गेहूं का भाव") {
		t.Fatal("plain price question flagged as navigation")
	}
}

func TestLocalizedFallsBackToEnglish(t *testing.T) {
	if got := Localized(FallbackText, Code("xx")); got != FallbackText[English] {
		t.Fatalf("unexpected fallback text: %q", got)
	}
	for _, code := range Supported() {
		if Localized(PermissionDeniedText, code) == "" {
			t.Fatalf("missing permission text for %s", code)
		}
	}
}
