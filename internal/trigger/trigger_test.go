package trigger

import "testing"

func TestParseDefaultCombo(t *testing.T) {
	c, err := Parse(DefaultCombo)
	if err != nil {
		t.Fatalf("Parse(%q): %v", DefaultCombo, err)
	}
	if got := c.String(); got != "ctrl+shift+s" {
		t.Errorf("String() = %q, want %q", got, "ctrl+shift+s")
	}
	if len(c.mods) != 2 {
		t.Errorf("modifiers = %d, want 2", len(c.mods))
	}
}

func TestParseIsCaseInsensitive(t *testing.T) {
	c, err := Parse("  Ctrl+Shift+S ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := c.String(); got != "ctrl+shift+s" {
		t.Errorf("String() = %q, want %q", got, "ctrl+shift+s")
	}
}

func TestParseDigitKey(t *testing.T) {
	if _, err := Parse("ctrl+alt+1"); err != nil {
		t.Errorf("Parse(ctrl+alt+1): %v", err)
	}
}

func TestParseRejectsBareKey(t *testing.T) {
	if _, err := Parse("s"); err == nil {
		t.Error("Parse(s) succeeded, want error: a bare key would fire on every keystroke")
	}
}

func TestParseRejectsUnknownModifier(t *testing.T) {
	if _, err := Parse("hyper+s"); err == nil {
		t.Error("Parse(hyper+s) succeeded, want error")
	}
}

func TestParseRejectsUnknownKey(t *testing.T) {
	if _, err := Parse("ctrl+f13"); err == nil {
		t.Error("Parse(ctrl+f13) succeeded, want error")
	}
}
