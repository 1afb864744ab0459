package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification is a single toast entry in the feed.
type Notification struct {
	ID       uuid.UUID     `json:"id"`
	Level    Level         `json:"level"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// Feed holds the active notifications for a UI to observe. Entries expire on
// their own after their duration, or can be removed explicitly.
type Feed struct {
	mu      sync.Mutex
	active  []Notification
	timers  map[uuid.UUID]*time.Timer
	expires bool
}

func NewFeed() *Feed {
	return &Feed{
		timers:  make(map[uuid.UUID]*time.Timer),
		expires: true,
	}
}

// NewStaticFeed keeps entries until removed explicitly. Handy in tests and
// batch contexts where wall-clock expiry only gets in the way.
func NewStaticFeed() *Feed {
	return &Feed{timers: make(map[uuid.UUID]*time.Timer)}
}

func (f *Feed) Success(message string) { f.push(LevelSuccess, message, SuccessDuration) }

func (f *Feed) Error(message string) { f.push(LevelError, message, ErrorDuration) }

func (f *Feed) Info(message string) { f.push(LevelInfo, message, InfoDuration) }

func (f *Feed) Warning(message string) { f.push(LevelWarning, message, WarningDuration) }

func (f *Feed) push(level Level, message string, duration time.Duration) {
	n := Notification{
		ID:       uuid.New(),
		Level:    level,
		Message:  message,
		Duration: duration,
	}

	f.mu.Lock()
	f.active = append(f.active, n)

	if f.expires && duration > 0 {
		f.timers[n.ID] = time.AfterFunc(duration, func() {
			f.Remove(n.ID)
		})
	}
	f.mu.Unlock()
}

// Active returns a snapshot of the current notifications in emission order.
func (f *Feed) Active() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, len(f.active))
	copy(out, f.active)

	return out
}

func (f *Feed) Remove(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if timer, ok := f.timers[id]; ok {
		timer.Stop()
		delete(f.timers, id)
	}

	filtered := f.active[:0]

	for _, n := range f.active {
		if n.ID != id {
			filtered = append(filtered, n)
		}
	}

	f.active = filtered
}

func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, timer := range f.timers {
		timer.Stop()
		delete(f.timers, id)
	}

	f.active = nil
}

var _ Notifier = (*Feed)(nil)
