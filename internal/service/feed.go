package service

import (
	"context"
	"sync"

	"github.com/efreitasn/matchbook/internal/domain"
)

// feedRequest is a submission waiting in the feed's inbox together with
// the channel its result is delivered on.
type feedRequest struct {
	req   SubmitOrderRequest
	reply chan feedReply
}

type feedReply struct {
	result *SubmitResult
	err    error
}

// Feed is a single-writer front end for an OrderService. Any number of
// producer goroutines call Submit; one goroutine running Run applies the
// requests in the order they were dequeued.
type Feed struct {
	svc   *OrderService
	inbox chan feedRequest
	done  chan struct{}
	once  sync.Once
}

// NewFeed creates a Feed whose inbox holds up to buffer pending requests.
func NewFeed(svc *OrderService, buffer int) *Feed {
	if buffer < 0 {
		buffer = 0
	}
	return &Feed{
		svc:   svc,
		inbox: make(chan feedRequest, buffer),
		done:  make(chan struct{}),
	}
}

// Run processes requests until ctx is cancelled. It must be called from
// exactly one goroutine. Requests still queued when Run returns are
// answered with domain.ErrFeedClosed.
func (f *Feed) Run(ctx context.Context) {
	f.svc.logger.Info("feed started")
	defer f.once.Do(func() { close(f.done) })

	for {
		select {
		case <-ctx.Done():
			f.drain()
			f.svc.logger.Info("feed stopped")
			return
		case r := <-f.inbox:
			res, err := f.svc.Submit(r.req)
			r.reply <- feedReply{result: res, err: err}
		}
	}
}

// drain rejects everything left in the inbox.
func (f *Feed) drain() {
	for {
		select {
		case r := <-f.inbox:
			r.reply <- feedReply{err: domain.ErrFeedClosed}
		default:
			return
		}
	}
}

// Submit enqueues req and waits for it to be processed. It returns
// ctx.Err() if ctx is cancelled first, and domain.ErrFeedClosed if the
// feed has stopped.
func (f *Feed) Submit(ctx context.Context, req SubmitOrderRequest) (*SubmitResult, error) {
	r := feedRequest{req: req, reply: make(chan feedReply, 1)}

	select {
	case <-f.done:
		return nil, domain.ErrFeedClosed
	default:
	}

	select {
	case f.inbox <- r:
	case <-f.done:
		return nil, domain.ErrFeedClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case rep := <-r.reply:
		return rep.result, rep.err
	case <-f.done:
		// Run replies before it closes done, so a processed request still
		// has its answer waiting.
		select {
		case rep := <-r.reply:
			return rep.result, rep.err
		default:
			return nil, domain.ErrFeedClosed
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
