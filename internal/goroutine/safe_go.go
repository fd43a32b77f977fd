package goroutine

import (
	"context"
	"runtime/debug"
)

// Logger интерфейс для логирования ошибок
type Logger interface {
	Errorf(format string, args ...interface{})
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic.
// Возвращает канал, который закрывается по завершении fn.
func SafeGoWithContext(ctx context.Context, log Logger, name string, fn func(context.Context)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("panic in goroutine %s: %v\nstack trace:\n%s", name, r, debug.Stack())
			}
		}()
		fn(ctx)
	}()
	return done
}
