package clock

import "time"

// Clock позволяет внедрять источник времени в сервисы вместо чтения
// системных часов напрямую.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem возвращает часы на базе time.Now (в UTC).
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed возвращает часы, всегда показывающие один и тот же момент.
// Используется в тестах для детерминированных проверок правил.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}
