package framegate

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	httpadapter "github.com/vigil-labs/framegate/internal/adapters/http"
	"github.com/vigil-labs/framegate/internal/adapters/httpapi"
	"github.com/vigil-labs/framegate/internal/app"
	"github.com/vigil-labs/framegate/internal/domain"
	"github.com/vigil-labs/framegate/internal/ports"
	"github.com/vigil-labs/framegate/internal/producer"
	"github.com/vigil-labs/framegate/internal/queue"
)

// Errors returned by Gateway methods.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrQueueClosed     = domain.ErrQueueClosed
)

const serverShutdownTimeout = 5 * time.Second

// Gateway ingests camera frames, batches them, and dispatches batches
// to a fall-detection inference service with bounded retries.
// Use New() to create an instance, then Start() to begin processing.
type Gateway struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	queue     *queue.Queue
	client    *httpadapter.InferenceClient
	pipeline  *app.Pipeline
	spool     *producer.Spool
	server    *http.Server
	logger    ports.Logger

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Gateway with the given configuration.
// The instance is created in StateStopped; call Start() to begin
// processing. Returns an error if the configuration is invalid.
func New(cfg Config, opts ...Option) (*Gateway, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	o := defaultOptions(httpClient)
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	lifecycle := app.NewLifecycle(logger, emitter)

	q := queue.New(cfg.QueueCapacity)
	client := httpadapter.NewInferenceClient(o.httpClient, logger, cfg.ServiceURL, cfg.AuthKey)

	var submitter ports.BatchSubmitter = client
	if o.submitter != nil {
		submitter = o.submitter
	}

	collector := app.NewCollector(q, cfg.MaxBatchSize, cfg.CollectTimeout, logger)
	dispatcher := app.NewDispatcher(submitter, cfg.MaxAttempts, cfg.BaseDelay, logger, emitter)
	pipeline := app.NewPipeline(collector, dispatcher, cfg.IdleSleep, logger)

	g := &Gateway{
		config:    cfg,
		opts:      o,
		lifecycle: lifecycle,
		queue:     q,
		client:    client,
		pipeline:  pipeline,
		logger:    logger,
	}

	if cfg.SpoolDir != "" {
		g.spool = producer.NewSpool(cfg.SpoolDir, q, logger)
	}

	if cfg.ListenAddr != "" {
		api := httpapi.NewServer(q, client, func() string {
			return pipeline.State().String()
		}, logger)
		g.server = &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: api.Handler(),
		}
	}

	return g, nil
}

// Start begins frame processing in the background.
// Returns immediately after starting the worker goroutines.
// Returns an error if already running. The provided context is used
// for the lifetime of the processing loop.
func (g *Gateway) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}

	if err := g.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	g.ctx = runCtx
	g.cancel = cancel
	g.lifecycle.SetCancel(cancel)

	if g.server != nil {
		g.lifecycle.AddWorker()
		go func() {
			defer g.lifecycle.WorkerDone()
			g.logger.Info("gateway api listening", ports.String("addr", g.server.Addr))
			if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				g.logger.Error("gateway api failed", ports.Err(err))
				g.Cancel()
			}
		}()
	}

	if g.spool != nil {
		g.lifecycle.AddWorker()
		go func() {
			defer g.lifecycle.WorkerDone()
			if err := g.spool.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				g.logger.Error("spool producer failed", ports.Err(err))
			}
		}()
	}

	g.lifecycle.AddWorker()
	go func() {
		defer g.lifecycle.WorkerDone()

		if err := g.lifecycle.TransitionTo(app.StateRunning, "pipeline starting"); err != nil {
			g.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		err := g.pipeline.Run(runCtx)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, domain.ErrQueueClosed) {
			g.logger.Error("pipeline error", ports.Err(err))
			_ = g.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the gateway. In-flight dispatch attempts
// are cancelled; frames still resident in the queue are discarded.
// Waits up to 30 seconds before forcing shutdown. Returns nil on
// graceful shutdown, ErrShutdownTimeout if forced.
func (g *Gateway) Stop() error {
	g.mu.Lock()

	if !g.lifecycle.CanStop() {
		g.mu.Unlock()
		return ErrNotRunning
	}

	if err := g.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		g.mu.Unlock()
		return err
	}

	if g.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		if err := g.server.Shutdown(shutdownCtx); err != nil {
			g.logger.Warn("gateway api shutdown", ports.Err(err))
		}
		cancel()
	}

	if g.cancel != nil {
		g.cancel()
	}
	g.queue.Close()

	g.mu.Unlock()

	err := g.lifecycle.WaitWithTimeout(app.ShutdownTimeout)
	if err != nil {
		_ = g.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = g.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// Cancel aborts processing without waiting for graceful shutdown.
func (g *Gateway) Cancel() {
	g.lifecycle.Cancel()
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (g *Gateway) Status() State {
	return convertState(g.lifecycle.State())
}

// PipelineState returns the current phase of the processing loop
// ("Idle", "Collecting", "Dispatching", or "Stopped").
func (g *Gateway) PipelineState() string {
	return g.pipeline.State().String()
}

// EnqueueFrame admits a frame for processing and returns its job ID.
// When the queue is full the oldest resident frame is evicted to make
// room; the new frame is always admitted while the gateway runs.
// Returns ErrQueueClosed after Stop().
func (g *Gateway) EnqueueFrame(payload []byte, source string) (string, error) {
	job := domain.NewFrameJob(payload, source)
	if !g.queue.TryEnqueue(job) {
		return "", ErrQueueClosed
	}
	return job.ID, nil
}

// QueueStats returns a snapshot of the frame queue counters.
func (g *Gateway) QueueStats() QueueStats {
	return g.queue.Stats()
}
