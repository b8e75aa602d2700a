package goroutine

import (
	"runtime/debug"

	"github.com/akinfotech/rma-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.WithComponent("goroutine").Errorf("panic recovered: %v\nstack:\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
