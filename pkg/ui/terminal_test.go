package ui

import (
	"strings"
	"testing"
)

func TestSanitizeStringASCIIPassthrough(t *testing.T) {
	in := "context scoped: 3 includes, 1 exclude"
	if got := SanitizeString(in); got != in {
		t.Errorf("SanitizeString(%q) = %q", in, got)
	}
}

func TestSanitizeStringDropsEmojiOnLegacy(t *testing.T) {
	if UnicodeTerminal() {
		t.Skip("terminal renders unicode; sanitization is a no-op")
	}
	got := SanitizeString("✅ applied context")
	if strings.ContainsRune(got, '✅') {
		t.Errorf("emoji survived sanitization: %q", got)
	}
	if !strings.Contains(got, "applied context") {
		t.Errorf("ascii text lost: %q", got)
	}
}

func TestIcon(t *testing.T) {
	got := Icon("✓", "[+]")
	if got != "✓" && got != "[+]" {
		t.Errorf("Icon returned neither variant: %q", got)
	}
}
