package notify

import (
	"log/slog"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Default toast durations per level, mirrored from the storefront UI.
const (
	SuccessDuration = 3 * time.Second
	ErrorDuration   = 5 * time.Second
	InfoDuration    = 3 * time.Second
	WarningDuration = 4 * time.Second
)

// Notifier is the notification relay the cart engine and services emit
// user-facing signals through. The UI side of the relay is an external
// collaborator; this package only defines the contract plus two in-process
// implementations.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
	Warning(message string)
}

// slogNotifier relays every signal to structured logs. Used by headless
// deployments and as the default when no feed is attached.
type slogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &slogNotifier{logger: logger}
}

func (n *slogNotifier) Success(message string) {
	n.logger.Info(message, slog.String("notification", string(LevelSuccess)))
}

func (n *slogNotifier) Error(message string) {
	n.logger.Error(message, slog.String("notification", string(LevelError)))
}

func (n *slogNotifier) Info(message string) {
	n.logger.Info(message, slog.String("notification", string(LevelInfo)))
}

func (n *slogNotifier) Warning(message string) {
	n.logger.Warn(message, slog.String("notification", string(LevelWarning)))
}
