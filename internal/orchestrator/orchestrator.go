package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/rutaflow/rutaflow/internal/domain/model"
)

// State is the orchestrator lifecycle state.
type State string

const (
	// StateIdle means no submission has been made yet.
	StateIdle State = "idle"
	// StateSubmitting means the dispatch request is in flight.
	StateSubmitting State = "submitting"
	// StatePolling means the loop is waiting for a terminal result.
	StatePolling State = "polling"
	// StateSettled means the loop finished and will not issue further requests.
	StateSettled State = "settled"
)

// Outcome classifies how a run settled.
type Outcome string

const (
	// OutcomeSuccess means a terminal result with computed routes arrived.
	OutcomeSuccess Outcome = "success"
	// OutcomeNoSolution means the solver reported no feasible assignment.
	OutcomeNoSolution Outcome = "no_solution"
	// OutcomeError means the run stopped on a submit/poll error or teardown.
	OutcomeError Outcome = "error"
)

// Settled describes a finished run.
type Settled struct {
	Outcome        Outcome
	PendingRouteID string
	Status         model.ResultStatus
	Result         json.RawMessage
	Err            error
}

// ErrAlreadySubmitted is returned by Submit when a run was already started.
// An orchestrator drives exactly one submission; build a new one per run.
var ErrAlreadySubmitted = errors.New("orchestrator: already submitted")

// Config groups tuning knobs for the Orchestrator.
type Config struct {
	// Interval is the minimum gap between a poll completing and the next
	// poll being issued.
	Interval time.Duration
	Logger   *slog.Logger
}

// Options groups dependencies for the Orchestrator.
type Options struct {
	Client Client
	Config Config
}

const defaultPollInterval = 3 * time.Second

// Orchestrator runs one dispatch-and-poll cycle. Polls are serialized: at
// most one request is in flight, and each new poll waits at least Interval
// after the previous one completed. There is no automatic retry; any error
// settles the run.
type Orchestrator struct {
	client   Client
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	trace   []string
	settled *Settled
	cancel  context.CancelFunc
	done    chan struct{}
}

// New constructs an Orchestrator in the idle state.
func New(opts Options) *Orchestrator {
	if opts.Client == nil {
		panic("Client is required")
	}
	cfg := opts.Config
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Orchestrator{
		client:   opts.Client,
		interval: cfg.Interval,
		logger:   cfg.Logger,
		state:    StateIdle,
	}
}

// Submit starts the run. The payload must parse and pass the submit guard
// (at least one order, usable depot coordinates); a rejected payload leaves
// the orchestrator idle and issues no requests. Returns ErrAlreadySubmitted
// on any state but idle; the background loop runs until a terminal result,
// an error, or Close.
func (o *Orchestrator) Submit(ctx context.Context, payload []byte) error {
	var guard model.OptimizationPayload
	if err := json.Unmarshal(payload, &guard); err != nil {
		return fmt.Errorf("orchestrator: parse payload: %w", err)
	}
	if err := guard.Validate(); err != nil {
		return fmt.Errorf("orchestrator: invalid payload: %w", err)
	}

	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return ErrAlreadySubmitted
	}
	runCtx, cancel := context.WithCancel(ctx)
	o.state = StateSubmitting
	o.cancel = cancel
	o.done = make(chan struct{})
	done := o.done
	o.mu.Unlock()

	go func() {
		defer close(done)
		o.run(runCtx, payload)
	}()
	return nil
}

// Close tears the run down. It is idempotent and safe to call from any
// state; it returns once the loop has stopped and no request is in flight.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	done := o.done
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Wait blocks until the run settles or ctx expires.
func (o *Orchestrator) Wait(ctx context.Context) (*Settled, error) {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()

	if done == nil {
		return nil, errors.New("orchestrator: not submitted")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.settled, nil
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Trace returns a copy of the run's trace log.
func (o *Orchestrator) Trace() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.trace))
	copy(out, o.trace)
	return out
}

func (o *Orchestrator) run(ctx context.Context, payload []byte) {
	resp, err := o.client.Submit(ctx, payload)
	if err != nil {
		o.tracef("Error: %v", err)
		o.settle(&Settled{Outcome: OutcomeError, Err: err})
		return
	}

	o.tracef("Optimization dispatched: pending route %s (trigger %s)", resp.PendingRouteID, resp.GitHubDispatch)
	o.setState(StatePolling)

	// First poll goes out immediately; the interval applies between a poll
	// completing and the next one being issued.
	for {
		result, err := o.client.Poll(ctx, resp.PendingRouteID)
		switch {
		case err != nil:
			o.tracef("Error: %v", err)
			o.settle(&Settled{Outcome: OutcomeError, PendingRouteID: resp.PendingRouteID, Err: err})
			return
		case result.Found && result.Status.Terminal():
			o.settleTerminal(resp.PendingRouteID, result)
			return
		default:
			o.tracef("...still waiting...")
		}

		select {
		case <-ctx.Done():
			o.tracef("Error: %v", ctx.Err())
			o.settle(&Settled{Outcome: OutcomeError, PendingRouteID: resp.PendingRouteID, Err: ctx.Err()})
			return
		case <-time.After(o.interval):
		}
	}
}

func (o *Orchestrator) settleTerminal(pendingRouteID string, result *model.ResultResponse) {
	s := &Settled{
		PendingRouteID: pendingRouteID,
		Status:         result.Status,
		Result:         result.Result,
	}
	if result.Status == model.ResultStatusNoSolution {
		s.Outcome = OutcomeNoSolution
		o.tracef("No feasible route assignment found.")
	} else {
		s.Outcome = OutcomeSuccess
		if n, ok := vehicleCount(result.Result); ok {
			o.tracef("Routes ready. Vehicles assigned: %d", n)
		} else {
			o.tracef("Routes ready.")
		}
	}
	o.settle(s)
}

func (o *Orchestrator) settle(s *Settled) {
	o.mu.Lock()
	o.state = StateSettled
	o.settled = s
	o.mu.Unlock()

	o.logger.Info("optimization settled",
		"outcome", string(s.Outcome),
		"pending_route_id", s.PendingRouteID,
	)
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) tracef(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	o.mu.Lock()
	o.trace = append(o.trace, line)
	o.mu.Unlock()
	o.logger.Info(line)
}

// vehicleCount extracts the number of vehicles from a solver result.
func vehicleCount(result json.RawMessage) (int, bool) {
	if len(result) == 0 {
		return 0, false
	}
	var data any
	if err := json.Unmarshal(result, &data); err != nil {
		return 0, false
	}
	n, err := jmespath.Search("length(vehicles)", data)
	if err != nil {
		return 0, false
	}
	switch v := n.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
