package export

import (
	"os"
	"testing"

	"github.com/vanderheijden86/glossnet/pkg/debug"
)

func TestMain(m *testing.M) {
	// Keep GLOSSNET_DEBUG from a developer shell out of test output.
	debug.SetEnabled(false)
	os.Exit(m.Run())
}
