package app

import (
	"os"
	"sync"
)

const testModeEnv = "INVENTORY_WEB_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	return os.Getenv(testModeEnv) == "1"
})

// InTestMode reports whether INVENTORY_WEB_TEST_MODE=1 was set when the
// process first asked. Test binaries set it through internal/testing/guard.
func InTestMode() bool {
	return testMode()
}
