package priority

import (
	"sync/atomic"
	"time"
)

// Stats counts pushes and pops per band since queue creation.
type Stats struct {
	HighPush int64
	LowPush  int64
	HighPop  int64
	LowPop   int64
}

type Queue interface {
	TryPushHigh(f any) bool
	TryPushLow(f any) bool
	Pop() (any, bool)
	Stats() Stats
}

// PriorityQueue is a two-band queue: control frames ride the high band and
// preempt the low band, which carries audio and utterances.
type PriorityQueue struct {
	high     chan any
	low      chan any
	fairness int

	highPush atomic.Int64
	lowPush  atomic.Int64
	highPop  atomic.Int64
	lowPop   atomic.Int64
}

func New(highCap, lowCap, fairness int) *PriorityQueue {
	if fairness <= 0 {
		fairness = 3
	}
	return &PriorityQueue{
		high:     make(chan any, highCap),
		low:      make(chan any, lowCap),
		fairness: fairness,
	}
}

func (q *PriorityQueue) TryPushHigh(f any) bool {
	select {
	case q.high <- f:
		q.highPush.Add(1)
		return true
	default:
		return false
	}
}

func (q *PriorityQueue) TryPushLow(f any) bool {
	select {
	case q.low <- f:
		q.lowPush.Add(1)
		return true
	default:
		return false
	}
}

// Pop blocks until a frame is available, always preferring the high band.
func (q *PriorityQueue) Pop() (any, bool) {
	for {
		select {
		case f := <-q.high:
			q.highPop.Add(1)
			return f, true
		default:
		}
		if q.fairness > 0 {
			select {
			case f := <-q.low:
				q.lowPop.Add(1)
				return f, true
			default:
			}
		}
		time.Sleep(time.Millisecond)
	}
}

func (q *PriorityQueue) Stats() Stats {
	return Stats{
		HighPush: q.highPush.Load(),
		LowPush:  q.lowPush.Load(),
		HighPop:  q.highPop.Load(),
		LowPop:   q.lowPop.Load(),
	}
}
