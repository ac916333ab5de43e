package vaani

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mandimitra/vaani/pkg/classify"
	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/llm"
	"github.com/mandimitra/vaani/pkg/marketdata"
	"github.com/mandimitra/vaani/pkg/metrics"
	"github.com/mandimitra/vaani/pkg/observers"
	"github.com/mandimitra/vaani/pkg/pipeline"
	"github.com/mandimitra/vaani/pkg/policy"
	"github.com/mandimitra/vaani/pkg/processors"
	"github.com/mandimitra/vaani/pkg/reasoning"
	"github.com/mandimitra/vaani/pkg/redact"
	"github.com/mandimitra/vaani/pkg/runner"
	"github.com/mandimitra/vaani/pkg/session"
	"github.com/mandimitra/vaani/pkg/synthesis"
	"github.com/mandimitra/vaani/pkg/transcript"
	"github.com/mandimitra/vaani/pkg/transports"
)

type Engine struct {
	cfg       Config
	registry  *pipeline.SessionRegistry
	transport transports.Transport
	providers *ProviderRegistry
	runner    *pipeline.Runner
	asyncObs  *metrics.AsyncObserver
	sessions  *managerSet
	ctx       context.Context
	cancel    context.CancelFunc
}

type EngineOptions struct {
	Config    Config
	Providers *ProviderRegistry
	Transport transports.Transport
	// Prices and Predictions back the internal-data fast path. Nil Prices
	// disables it (every price question escalates).
	Prices      marketdata.PriceProvider
	Predictions marketdata.PredictionProvider
	// Optional extra processors around the core dialogue chain.
	PreProcessors  []pipeline.FrameProcessor
	PostProcessors []pipeline.FrameProcessor
}

func NewEngine(opts EngineOptions) *Engine {
	cfg := opts.Config
	SetDefaultLogger(cfg.LogLevel, cfg.LogFormat)
	redact.SetEnabled(cfg.Privacy.RedactPII)

	slog.Info("vaani_init",
		"environment", cfg.Environment,
		"llm_provider", cfg.Vendors.LLM.Provider,
		"llm_secondary", cfg.Vendors.LLMSecondary.Provider,
		"stt_provider", cfg.Vendors.STT.Provider,
		"transport", cfg.Transports.Provider,
	)

	pipeline.LogConfiguration(cfg.Engine)
	latencyObs := observers.NewLatencyObserver(slog.Default())
	logObs := observers.NewLoggerObserver(slog.Default())
	var timelineObs *observers.TimelineObserver
	var costObs *observers.CostObserver
	obsList := []metrics.Observer{latencyObs, logObs}
	if dir := strings.TrimSpace(cfg.Observability.ArtifactsDir); dir != "" {
		if cfg.Observability.RetentionDays > 0 {
			_, _ = observers.PurgeArtifacts(dir, time.Duration(cfg.Observability.RetentionDays)*24*time.Hour)
		}
		timelineObs = observers.NewTimelineObserver(dir)
		costObs = observers.NewCostObserver(dir)
		obsList = append(obsList, timelineObs, costObs)
	}
	var metricsFile *os.File
	if path := strings.TrimSpace(cfg.Observability.MetricsStream); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Warn("metrics_stream_open_failed", "path", path, "error", err.Error())
		} else {
			metricsFile = f
			obsList = append(obsList, metrics.NewJSONLObserver(f))
		}
	}
	var innerObs metrics.Observer = observers.NewMultiObserver(obsList...)
	if rate := cfg.Observability.SampleRate; rate > 0 && rate < 1 {
		innerObs = metrics.NewSamplingObserver(innerObs, rate)
	}
	asyncObs := metrics.NewAsyncObserver(innerObs, 2048)

	providers := opts.Providers
	if providers == nil {
		providers = NewProviderRegistry()
		RegisterBuiltins(providers)
	}

	prices := opts.Prices
	if prices == nil {
		prices = &marketdata.StaticProvider{}
	}

	sessions := newManagerSet()

	var sink func(frames.Frame)
	if opts.Transport != nil {
		sink = func(f frames.Frame) {
			if f.Kind() == frames.KindResponse {
				if ds := sessions.get(f.Meta()[frames.MetaSessionID]); ds != nil {
					ds.mgr.EndProcessing(session.StateSpeaking)
				}
			}
			_ = opts.Transport.Send(f)
		}
	}

	registry := pipeline.NewSessionRegistry(func(ctx context.Context, sessionID, clientID, traceID string) (pipeline.Orchestrator, error) {
		log := slog.Default()

		// Remote reasoning: primary provider plus optional failover, both
		// behind circuit breakers.
		primary, err := providers.BuildLLM(cfg.Vendors.LLM)
		if err != nil {
			return nil, err
		}
		primaryCB := llm.NewCircuitBreakerAdapter(primary, nil)
		primaryCB.SetObserver(asyncObs)
		var secondary llm.LLMAdapter
		if strings.TrimSpace(cfg.Vendors.LLMSecondary.Provider) != "" {
			raw, err := providers.BuildLLM(cfg.Vendors.LLMSecondary)
			if err != nil {
				return nil, err
			}
			secondaryCB := llm.NewCircuitBreakerAdapter(raw, nil)
			secondaryCB.SetObserver(asyncObs)
			secondary = secondaryCB
		}
		retry := llm.RetryConfig{MaxAttempts: cfg.Reasoning.MaxAttempts}
		client := reasoning.NewClient(primaryCB, secondary, reasoning.Options{
			Timeout:  time.Duration(cfg.Reasoning.TimeoutMS) * time.Millisecond,
			Retry:    retry,
			Logger:   log,
			Observer: asyncObs,
		})

		fctx := synthesis.NewDialogueContext()
		syn := synthesis.New(log)
		pol := policy.New(prices, opts.Predictions, policy.Options{
			Timeout: time.Duration(cfg.Policy.InternalTimeoutMS) * time.Millisecond,
			Logger:  log,
		})

		polProc := processors.NewPolicyProcessor(pol, fctx)
		polProc.SetContext(ctx)
		reaProc := processors.NewReasoningProcessor(client, syn, fctx, log)
		reaProc.SetContext(ctx)

		agg := transcript.NewAggregator(transcript.Config{
			MinLen:       cfg.Transcript.MinLen,
			MaxHistory:   cfg.Transcript.MaxHistory,
			FlushTimeout: time.Duration(cfg.Transcript.FlushTimeoutMS) * time.Millisecond,
		})

		builder := pipeline.NewDialogueBuilder()

		// Optional server-side recognition for sessions streaming raw audio.
		var sttProc *processors.STTProcessor
		if strings.TrimSpace(cfg.Vendors.STT.Provider) != "" {
			sttFactory, err := providers.BuildSTTFactory(cfg.Vendors.STT.Provider, cfg, traceID)
			if err != nil {
				return nil, err
			}
			sttProc = processors.NewSTTProcessor(sttFactory)
			sttProc.SetForwardInterim(cfg.STT.ForwardInterim)
			sttProc.SetReplayBuffer(processors.STTReplayConfig{MaxChunks: cfg.Engine.STTReplayChunks})
			sttProc.SetObserver(asyncObs)
			sttProc.SetContext(ctx)
			builder = builder.WithCapture(sttProc)
		}

		builder = builder.WithTranscript(agg).
			WithProcessorList(opts.PreProcessors).
			WithNavigation(processors.NewNavigationProcessor(syn, fctx, log)).
			WithClassifier(processors.NewClassifierProcessor(classify.New(log), fctx)).
			WithPolicy(polProc).
			WithSynthesis(processors.NewSynthesisProcessor(syn, fctx)).
			WithReasoning(reaProc).
			WithProcessorList(opts.PostProcessors).
			WithSanitizer(processors.NewSanitizer()).
			WithLimiter(processors.NewResponseLimiter(processors.ResponseLimiterConfig{
				MaxChars:     cfg.Limits.MaxChars,
				MaxSentences: cfg.Limits.MaxSentences,
			}))

		orch := builder.Build(cfg.Pipeline)
		orch.SetContext(ctx)
		orch.SetObserver(asyncObs)
		if sink != nil {
			orch.SetSink(sink)
		}

		if sttProc != nil {
			go func() {
				<-ctx.Done()
				sttProc.CloseAll()
			}()
		}

		return orch, nil
	})

	hooks := runner.Hooks{
		OnStart: func() {
			fields := []any{"message", "Vaani Engine Ready"}
			if rr, ok := opts.Transport.(transports.ReadyReporter); ok {
				for k, v := range rr.ReadyFields() {
					fields = append(fields, k, v)
				}
			}
			slog.Info("engine_ready", fields...)
		},
		OnStop: func() {
			if asyncObs != nil {
				asyncObs.Close()
			}
			if timelineObs != nil {
				_ = timelineObs.Close()
			}
			if costObs != nil {
				_ = costObs.Close()
			}
			if metricsFile != nil {
				_ = metricsFile.Close()
			}
			slog.Info("shutdown", "goroutines", runtime.NumGoroutine(), "active_sessions", registry.Count())
		},
	}

	drainer := pipeline.DrainerFunc(func() error {
		if opts.Transport != nil {
			_ = opts.Transport.Stop()
		}
		sessions.stopAll()
		registry.SetDraining(true)
		registry.CloseAll()
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		_ = registry.WaitForEmpty(ctx, 200*time.Millisecond)
		return nil
	})

	lr := pipeline.NewDrainRunner(drainer, hooks, 30*time.Second)

	ctx, cancel := context.WithCancel(context.Background())

	return &Engine{
		cfg:       cfg,
		registry:  registry,
		transport: opts.Transport,
		providers: providers,
		runner:    lr,
		asyncObs:  asyncObs,
		sessions:  sessions,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (e *Engine) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.transport != nil {
		if err := e.transport.Start(ctx); err != nil {
			return err
		}
		go e.routeTransport(ctx)
	}
	go func() {
		_ = e.runner.Run(ctx)
	}()
	return nil
}

func (e *Engine) Stop() error {
	if e.cancel != nil {
		e.cancel()
	}
	return e.runner.Stop()
}

func (e *Engine) routeTransport(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-e.transport.Recv():
			if !ok {
				return
			}
			meta := f.Meta()
			sessionID := meta[frames.MetaSessionID]
			if sessionID == "" {
				continue
			}
			if e.asyncObs != nil && f.Kind() == frames.KindAudio {
				e.recordAudioIn(f.(frames.AudioFrame), meta)
			}
			if f.Kind() == frames.KindSystem {
				if e.handleLifecycle(f.(frames.SystemFrame), meta) {
					continue
				}
			}
			// Once BeginProcessing claims the slot, every path below must
			// either hand the frame to the pipeline (the sink releases on
			// the response) or release the slot itself.
			var claimed session.Manager
			if f.Kind() == frames.KindUtterance && frames.IsFinal(meta) {
				if ds := e.sessions.get(sessionID); ds != nil {
					ds.mgr.OnFinalTranscript()
					if !ds.mgr.BeginProcessing() {
						slog.Warn("utterance_dropped_busy", "session_id", sessionID)
						continue
					}
					claimed = ds.mgr
				}
			}
			sess, _, err := e.registry.GetOrCreate(sessionID, meta[frames.MetaClientID], meta[frames.MetaTraceID])
			if err != nil {
				if claimed != nil {
					claimed.EndProcessing(session.StateListening)
				}
				slog.Error("session_create_failed", "session_id", sessionID, "error", err.Error())
				continue
			}
			if !nonBlockingSend(sess.Orch.In(), f) {
				if claimed != nil {
					claimed.EndProcessing(session.StateListening)
				}
				slog.Warn("frame_dropped_backpressure", "session_id", sessionID, "kind", string(f.Kind()))
			}
		}
	}
}

// handleLifecycle feeds transport lifecycle events into the capture state
// machine. It reports whether the frame was fully consumed.
func (e *Engine) handleLifecycle(sf frames.SystemFrame, meta map[string]string) bool {
	sessionID := meta[frames.MetaSessionID]
	switch sf.Name() {
	case "session_start":
		lang := language.Normalize(meta[frames.MetaLanguage])
		e.sessions.start(sessionID, lang, e.cfg.Session.MaxConsecutiveRestarts, e.transport)
		return false
	case "capture_error":
		if ds := e.sessions.get(sessionID); ds != nil {
			ds.mgr.OnCaptureError(meta[frames.MetaErrorCode])
		}
		return true
	case "capture_end":
		if ds := e.sessions.get(sessionID); ds != nil {
			ds.mgr.OnCaptureEnd()
		}
		return true
	case "speech_end":
		if ds := e.sessions.get(sessionID); ds != nil {
			ds.mgr.OnSpeechEnd()
		}
		return true
	case "session_end":
		e.sessions.remove(sessionID)
		e.registry.Remove(sessionID)
		return true
	}
	return false
}

func (e *Engine) recordAudioIn(af frames.AudioFrame, meta map[string]string) {
	fields := map[string]any{
		"sample_rate": af.Rate(),
		"channels":    af.Channels(),
	}
	if e.cfg.Observability.RecordAudio {
		fields["payload_b64"] = base64.StdEncoding.EncodeToString(af.RawPayload())
	}
	e.asyncObs.RecordEvent(metrics.MetricsEvent{
		Name: "audio_in",
		Time: time.Now(),
		Tags: map[string]string{
			frames.MetaSessionID: meta[frames.MetaSessionID],
			frames.MetaTraceID:   meta[frames.MetaTraceID],
			"component":          "transport",
		},
		Fields: fields,
	})
}

func nonBlockingSend(ch chan frames.Frame, f frames.Frame) bool {
	select {
	case ch <- f:
		return true
	default:
		return false
	}
}

func SetDefaultLogger(level, format string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))
}

func (e *Engine) ProviderRegistry() *ProviderRegistry {
	return e.providers
}

func (e *Engine) Transport() transports.Transport {
	return e.transport
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Registry() *pipeline.SessionRegistry {
	return e.registry
}

func (e *Engine) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

func (e *Engine) Health() error {
	if e.transport == nil {
		return fmt.Errorf("missing transport")
	}
	return nil
}
