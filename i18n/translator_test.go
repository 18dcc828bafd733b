package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodePassesThrough(t *testing.T) {
	if msg := T("never_registered", nil); msg != "never_registered" {
		t.Fatalf("expected code passthrough, got %q", msg)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "X:" + code }

func TestTranslator_Replace(t *testing.T) {
	SetTranslator(upperTranslator{})
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("expected custom translator output, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("required", nil); msg == "X:required" {
		t.Fatalf("expected reset to builtin translator")
	}
}
