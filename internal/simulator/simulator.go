// Package simulator owns the in-memory analytics snapshot, perturbs it on a
// fixed period while observed, and broadcasts each new snapshot.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/AngelCh415/adpulse/internal/metrics"
	"github.com/AngelCh415/adpulse/internal/models"
	"github.com/AngelCh415/adpulse/internal/store"
)

const DefaultPeriod = 5 * time.Second

// Observer receives every new snapshot. It runs on the ticking goroutine and
// should return quickly. It may call back into the simulator, including
// Subscribe and its own unsubscribe func.
type Observer func(models.Snapshot)

type observer struct {
	id     uuid.UUID
	fn     Observer
	active atomic.Bool

	// held for every invocation of fn, so the immediate delivery in
	// Subscribe finishes before the first tick delivery starts
	mu sync.Mutex
}

// Simulator is Idle with no observers and no ticker, and Active with one or
// more observers and a running ticker.
type Simulator struct {
	clock   clockwork.Clock
	rnd     Random
	period  time.Duration
	fetcher Fetcher
	store   *store.MemoryStore
	log     *slog.Logger
	metrics metrics.Recorder

	platformLatency time.Duration
	metricsLatency  time.Duration

	mu        sync.Mutex
	observers []*observer
	ticker    clockwork.Ticker
	stop      chan struct{}
}

type Option func(*Simulator)

func WithClock(c clockwork.Clock) Option { return func(s *Simulator) { s.clock = c } }

func WithRandom(r Random) Option { return func(s *Simulator) { s.rnd = r } }

func WithPeriod(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.period = d
		}
	}
}

func WithLatencies(platform, aggregate time.Duration) Option {
	return func(s *Simulator) {
		s.platformLatency = platform
		s.metricsLatency = aggregate
	}
}

func WithFetcher(f Fetcher) Option { return func(s *Simulator) { s.fetcher = f } }

func WithLogger(l *slog.Logger) Option { return func(s *Simulator) { s.log = l } }

func WithRecorder(r metrics.Recorder) Option { return func(s *Simulator) { s.metrics = r } }

// New builds a simulator seeded with the baseline snapshot. It starts Idle.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		clock:           clockwork.NewRealClock(),
		period:          DefaultPeriod,
		platformLatency: DefaultPlatformLatency,
		metricsLatency:  DefaultMetricsLatency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		r, err := NewRandom(0)
		if err != nil {
			r, _ = NewRandom(s.clock.Now().UnixNano())
		}
		s.rnd = r
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.log = s.log.With("component", "simulator")
	if s.metrics == nil {
		s.metrics = metrics.NewNoop()
	}
	if s.fetcher == nil {
		s.fetcher = &simulatedFetcher{
			clock:           s.clock,
			rnd:             s.rnd,
			platformLatency: s.platformLatency,
			metricsLatency:  s.metricsLatency,
		}
	}

	now := s.clock.Now()
	s.store = store.NewMemoryStore(baseline(now, s.rnd), now)
	return s
}

// GetCurrentSnapshot returns a copy of the latest snapshot that the caller
// may modify freely.
func (s *Simulator) GetCurrentSnapshot() models.Snapshot {
	return s.store.Current().Clone()
}

// Ticks returns the number of ticks applied since construction.
func (s *Simulator) Ticks() uint64 { return s.store.Seq() }

func (s *Simulator) UpdatedAt() time.Time { return s.store.UpdatedAt() }

func (s *Simulator) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// Subscribe registers fn and delivers the current snapshot to it before
// returning. The first observer starts the ticker. The returned func removes
// fn; once it returns no new delivery to fn begins. It is safe to call more
// than once.
func (s *Simulator) Subscribe(fn Observer) func() {
	o := &observer{id: uuid.New(), fn: fn}
	o.active.Store(true)

	o.mu.Lock()
	s.mu.Lock()
	s.observers = append(s.observers, o)
	n := len(s.observers)
	if n == 1 {
		s.start()
	}
	snap := s.store.Current()
	s.mu.Unlock()

	s.metrics.SetObservers(n)
	s.log.Debug("observer subscribed", "observer", o.id.String(), "observers", n)
	s.invoke(o, snap)
	o.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { s.unsubscribe(o) }) }
}

func (s *Simulator) unsubscribe(o *observer) {
	o.active.Store(false)

	s.mu.Lock()
	s.observers = slices.DeleteFunc(s.observers, func(cur *observer) bool { return cur == o })
	n := len(s.observers)
	if n == 0 {
		s.halt()
	}
	s.mu.Unlock()

	s.metrics.SetObservers(n)
	s.log.Debug("observer unsubscribed", "observer", o.id.String(), "observers", n)
}

// start moves to Active. Callers hold s.mu.
func (s *Simulator) start() {
	if s.ticker != nil {
		return
	}
	since := s.clock.Now()
	s.ticker = s.clock.NewTicker(s.period)
	s.stop = make(chan struct{})
	go s.run(s.ticker, s.stop, since)
	s.log.Info("simulator active", "period", s.period)
}

// halt moves to Idle. Callers hold s.mu.
func (s *Simulator) halt() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.ticker = nil
	s.stop = nil
	s.log.Info("simulator idle")
}

// run applies one tick per elapsed period. The ticker channel holds a single
// pending value, so when several periods pass before it is read the missed
// ticks are applied back to back, each stamped with its own period boundary.
// A ticker value left over from periods already applied is ignored.
func (s *Simulator) run(t clockwork.Ticker, stop chan struct{}, last time.Time) {
	for {
		select {
		case <-stop:
			return
		case <-t.Chan():
			n := int(s.clock.Since(last) / s.period)
			for i := 0; i < n; i++ {
				last = last.Add(s.period)
				if !s.tick(stop, last) {
					return
				}
			}
		}
	}
}

// tick replaces the snapshot and then notifies observers in registration
// order. It reports false, without mutating anything, once the activation
// it belongs to has been halted.
func (s *Simulator) tick(stop chan struct{}, now time.Time) bool {
	s.mu.Lock()
	select {
	case <-stop:
		s.mu.Unlock()
		return false
	default:
	}
	next := advance(s.store.Current(), s.rnd, now)
	seq := s.store.Replace(next, now)
	obs := slices.Clone(s.observers)
	s.mu.Unlock()

	s.metrics.ObserveTick(next)
	s.log.Debug("tick", "seq", seq, "observers", len(obs))
	for _, o := range obs {
		o.mu.Lock()
		s.invoke(o, next)
		o.mu.Unlock()
	}
	return true
}

// invoke calls one observer with its own copy of snap. Callers hold o.mu.
// A panic is logged and counted so the remaining observers still receive
// the snapshot.
func (s *Simulator) invoke(o *observer, snap models.Snapshot) {
	if !o.active.Load() {
		return
	}
	defer func() {
		if rvr := recover(); rvr != nil {
			s.metrics.IncObserverPanic()
			s.log.Error("observer panicked",
				slog.String("observer", o.id.String()),
				slog.Any("panic", rvr),
			)
		}
	}()
	o.fn(snap.Clone())
}

// FetchSimulatedPlatformData returns one freshly randomized campaign per
// platform after the platform latency. On failure it returns an empty slice.
// The shared snapshot is not affected.
func (s *Simulator) FetchSimulatedPlatformData(ctx context.Context, platforms []string) []models.CampaignRecord {
	recs, err := s.fetcher.PlatformData(ctx, platforms)
	if err != nil {
		s.fetchFailed("platforms", err)
		return []models.CampaignRecord{}
	}
	s.metrics.IncFetch("platforms", "success")
	return recs
}

// FetchSimulatedMetrics returns a freshly randomized aggregate after the
// metrics latency. On failure it returns the current snapshot's campaign
// metrics.
func (s *Simulator) FetchSimulatedMetrics(ctx context.Context) models.CampaignMetrics {
	m, err := s.fetcher.Metrics(ctx)
	if err != nil {
		s.fetchFailed("metrics", err)
		return s.store.Current().CampaignMetrics
	}
	s.metrics.IncFetch("metrics", "success")
	return m
}

func (s *Simulator) fetchFailed(op string, err error) {
	if !errors.Is(err, ErrSimulatedFetch) {
		err = fmt.Errorf("%w: %w", ErrSimulatedFetch, err)
	}
	s.metrics.IncFetch(op, "fallback")
	s.log.Warn("simulated fetch degraded to fallback", slog.String("op", op), slog.String("err", err.Error()))
}
