package engine

import (
	"context"
	"time"
)

// TimeManager tracks one search's wall-clock deadline. The UCI subset
// this engine exposes only ever gives a single movetime budget (never
// wtime/btime/increment), so unlike the teacher's soft/hard split this
// is a single hard deadline.
type TimeManager struct {
	start time.Time
}

// NewTimeManager derives a deadline context from movetimeMs and
// returns a TimeManager for elapsed-time reporting alongside it.
func NewTimeManager(ctx context.Context, movetimeMs int) (*TimeManager, context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	tm := &TimeManager{start: time.Now()}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(movetimeMs)*time.Millisecond)
	return tm, ctx, cancel
}

func (tm *TimeManager) ElapsedMilliseconds() int64 {
	return int64(time.Since(tm.start) / time.Millisecond)
}
