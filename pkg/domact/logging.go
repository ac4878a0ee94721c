// pkg/domact/logging.go
package domact

import (
	"go.uber.org/zap"

	"github.com/qaforge/domact/pkg/locale"
)

// zapActionLogger adapts a zap logger to the ActionLogger contract. Message
// keys are resolved through the locale package; entries carry the element
// type and logical name as structured fields.
type zapActionLogger struct {
	logger *zap.Logger
}

// NewZapActionLogger wraps a zap logger as an ActionLogger. A nil logger
// yields a no-op implementation.
func NewZapActionLogger(logger *zap.Logger) ActionLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapActionLogger{logger: logger.Named("actions")}
}

func (l *zapActionLogger) LogAction(elementType, elementName, messageKey string, args ...any) {
	l.logger.Info(locale.Message(messageKey, args...),
		zap.String("element_type", elementType),
		zap.String("element_name", elementName),
		zap.String("message_key", messageKey),
	)
}

// NopActionLogger discards every entry.
func NopActionLogger() ActionLogger { return nopActionLogger{} }

type nopActionLogger struct{}

func (nopActionLogger) LogAction(string, string, string, ...any) {}
