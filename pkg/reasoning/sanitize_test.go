package reasoning

import "testing"

func TestSanitizePlainTextStripsMarkdown(t *testing.T) {
	in := "## Mandi Update\n**Wheat** is at `2100` per quintal.\n- sell now\n1. check [prices](https://example.com)\n> advice\nYield: NaN"
	want := "Mandi Update Wheat is at 2100 per quintal. sell now check prices advice Yield: N/A"
	if got := SanitizePlainText(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSanitizePlainTextTables(t *testing.T) {
	in := "| crop | price |\n| wheat | 2100 |"
	got := SanitizePlainText(in)
	if got != "crop price wheat 2100" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizePlainTextIdempotent(t *testing.T) {
	samples := []string{
		"**bold** _and_ `code`",
		"plain sentence already",
		"* bullet one\n* bullet two",
		"1) first 2) not a list marker mid-line",
	}
	for _, s := range samples {
		once := SanitizePlainText(s)
		twice := SanitizePlainText(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q vs %q", s, once, twice)
		}
	}
}

func TestSanitizePlainTextKeepsDevanagari(t *testing.T) {
	in := "**गेहूं** का भाव ₹2100 है"
	if got := SanitizePlainText(in); got != "गेहूं का भाव ₹2100 है" {
		t.Fatalf("got %q", got)
	}
}
