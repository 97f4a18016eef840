// Package guard flips the console into test mode when imported by a test binary.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("INVENTORY_WEB_TEST_MODE") == "" {
			_ = os.Setenv("INVENTORY_WEB_TEST_MODE", "1")
		}
		if os.Getenv("GOTENBERG_URL") == "" {
			_ = os.Setenv("GOTENBERG_URL", "http://127.0.0.1:0")
		}
	})
}
