package game

import (
	"context"
	"sync"
	"time"
)

// Loop продвигает сессию по тикам с фиксированной частотой.
// Каждый тик выполняется под Lock, который разделяется с REST API.
type Loop struct {
	session *Session
	lock    sync.Locker
	rate    int
	now     func() time.Time
}

// NewLoop создаёт цикл на rate тиков в секунду
func NewLoop(s *Session, lock sync.Locker, rate int) *Loop {
	if rate <= 0 {
		rate = 60
	}
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Loop{session: s, lock: lock, rate: rate, now: time.Now}
}

// Run блокирует до отмены ctx. dt тика – реальное время с прошлого тика,
// ограничение MaxTickDelta применяет Session.Update.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(l.rate))
	defer ticker.Stop()

	last := l.now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := l.now()
			l.Step(ctx, now.Sub(last).Seconds())
			last = now
		}
	}
}

// Step выполняет один тик под блокировкой
func (l *Loop) Step(ctx context.Context, dt float64) TickStats {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.session.Update(ctx, dt)
}
