package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"lotdesk/internal/domain"
	"lotdesk/internal/domain/entity"
	"lotdesk/pkg/contextx"
	"lotdesk/pkg/errcodes"
	"lotdesk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var (
	pollCycles = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "lotdesk_poll_cycles_total",
		Help: "Completed poll cycles, failed ones included.",
	})
	pollFailures = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "lotdesk_poll_failures_total",
		Help: "Poll cycles that ended in a transport or parse error.",
	})
)

// AllowedIntervals are the selectable poll periods, in seconds.
var AllowedIntervals = []int{5, 15, 30, 60} //nolint:gochecknoglobals

func IntervalAllowed(seconds int) bool {
	return lo.Contains(AllowedIntervals, seconds)
}

// LotFetcher runs one poll cycle against the supplier feed.
type LotFetcher interface {
	FetchLots(ctx context.Context) ([]entity.Lot, error)
}

// LotSink receives the outcome of each cycle.
type LotSink interface {
	ApplyPoll(fetched []entity.Lot)
	PollFailed(err error)
	Reset()
}

// Poller drives the periodic lot fetch while a session is active. Each
// Start or interval change spawns a fresh loop under a new generation;
// cycles of a superseded generation finish quietly and their results are
// discarded, so a stale response can never land after a restart.
type Poller struct {
	fetcher LotFetcher
	sink    LotSink

	mu              sync.Mutex
	baseCtx         context.Context //nolint:containedctx // session lifetime, handed over in Start
	cancel          context.CancelFunc
	done            chan struct{}
	running         bool
	intervalSeconds int
	generation      uint64
}

func NewPoller(fetcher LotFetcher, sink LotSink) *Poller {
	return &Poller{
		fetcher: fetcher,
		sink:    sink,
	}
}

// Start opens a session and begins polling with an immediate first cycle.
func (p *Poller) Start(ctx context.Context, intervalSeconds int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return domain.NewError(errcodes.SessionActive, "session is already active")
	}

	if !IntervalAllowed(intervalSeconds) {
		return domain.NewError(errcodes.IntervalNotAllowed, fmt.Sprintf("interval %ds is not allowed", intervalSeconds))
	}

	p.baseCtx = ctx
	p.intervalSeconds = intervalSeconds
	p.running = true
	p.launchLocked()

	logger(ctx).Info("session started", logx.FieldInterval, intervalSeconds)

	return nil
}

// SetInterval restarts the loop with a new period. The replacement cycle
// fires immediately; the old loop is cancelled and its generation retired.
func (p *Poller) SetInterval(intervalSeconds int) error {
	p.mu.Lock()

	if !p.running {
		p.mu.Unlock()
		return domain.NewError(errcodes.SessionInactive, "no active session")
	}

	if !IntervalAllowed(intervalSeconds) {
		p.mu.Unlock()
		return domain.NewError(errcodes.IntervalNotAllowed, fmt.Sprintf("interval %ds is not allowed", intervalSeconds))
	}

	oldCancel := p.cancel
	p.intervalSeconds = intervalSeconds
	p.launchLocked()

	ctx := p.baseCtx
	p.mu.Unlock()

	oldCancel()

	logger(ctx).Info("poll interval changed", logx.FieldInterval, intervalSeconds)

	return nil
}

// Stop ends the session: the loop is cancelled, waited out, and the view
// state cleared.
func (p *Poller) Stop() error {
	p.mu.Lock()

	if !p.running {
		p.mu.Unlock()
		return domain.NewError(errcodes.SessionInactive, "no active session")
	}

	p.running = false
	p.generation++
	cancel := p.cancel
	done := p.done
	ctx := p.baseCtx
	p.mu.Unlock()

	// Wait on this session's own loop; a Start racing in behind the lock
	// gets a fresh done channel and is not entangled with this drain.
	cancel()
	<-done

	p.sink.Reset()

	logger(ctx).Info("session stopped")

	return nil
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.running
}

// Interval returns the current period in seconds, 0 when stopped.
func (p *Poller) Interval() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return 0
	}

	return p.intervalSeconds
}

func (p *Poller) launchLocked() {
	p.generation++

	runCtx, cancel := context.WithCancel(p.baseCtx)
	p.cancel = cancel

	generation := p.generation
	interval := time.Duration(p.intervalSeconds) * time.Second

	done := make(chan struct{})
	p.done = done

	go p.run(runCtx, generation, interval, done)
}

func (p *Poller) run(ctx context.Context, generation uint64, interval time.Duration, done chan struct{}) {
	defer close(done)

	p.pollOnce(ctx, generation)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce(ctx, generation)
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context, generation uint64) {
	fetched, err := p.fetcher.FetchLots(ctx)

	// A cycle that outlived its loop must not touch the sink.
	if ctx.Err() != nil || !p.alive(generation) {
		return
	}

	pollCycles.Inc()

	if err != nil {
		pollFailures.Inc()
		logger(ctx).Error("poll cycle failed", logx.Error(err))
		p.sink.PollFailed(err)

		return
	}

	logger(ctx).Debug("poll cycle applied", logx.FieldLotsTotal, len(fetched))
	p.sink.ApplyPoll(fetched)
}

func (p *Poller) alive(generation uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.running && p.generation == generation
}
