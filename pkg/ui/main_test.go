package ui

import (
	"os"
	"testing"

	"github.com/charmbracelet/colorprofile"

	"github.com/vanderheijden86/glossnet/pkg/debug"
)

func TestMain(m *testing.M) {
	debug.SetEnabled(false)
	// Plain output keeps rendered text searchable.
	TermProfile = colorprofile.Ascii
	// Never touch the real clipboard or browser.
	writeClipboard = func(string) error { return nil }
	openURL = func(string) error { return nil }

	os.Exit(m.Run())
}
