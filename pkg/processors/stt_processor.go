package processors

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mandimitra/vaani/pkg/adapters/stt"
	"github.com/mandimitra/vaani/pkg/errorsx"
	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/metrics"
	"github.com/mandimitra/vaani/pkg/pipeline"
	"github.com/mandimitra/vaani/pkg/redact"
	"github.com/mandimitra/vaani/pkg/resilience"
)

// STTProcessor relays dashboard audio to a streaming recognizer and emits
// utterance frames. When the recognizer is unreachable it signals fallback
// so the client can switch to browser-side recognition.
type STTProcessor struct {
	mu             sync.Mutex
	sessions       map[string]stt.StreamingSTT
	factory        func(sessionID string) stt.StreamingSTT
	langFactories  map[string]func(sessionID string) stt.StreamingSTT
	defaultLang    string
	sessionLang    map[string]string
	replayCfg      STTReplayConfig
	replay         map[string]*audioReplayBuffer
	ctx            context.Context
	obs            metrics.Observer
	trace          map[string]string
	retry          resilience.RetryPolicy
	breaker        *resilience.CircuitBreaker
	interimLogged  map[string]bool
	forwardInterim bool
	provider       string
	breakerOpen    bool
}

type STTReplayConfig struct {
	MaxChunks int
}

type audioChunk struct {
	data     []byte
	rate     int
	channels int
}

type audioReplayBuffer struct {
	maxChunks int
	chunks    []audioChunk
}

func newAudioReplayBuffer(maxChunks int) *audioReplayBuffer {
	if maxChunks <= 0 {
		maxChunks = 0
	}
	return &audioReplayBuffer{maxChunks: maxChunks}
}

func (b *audioReplayBuffer) Add(chunk audioChunk) {
	if b == nil || b.maxChunks <= 0 {
		return
	}
	b.chunks = append(b.chunks, chunk)
	if len(b.chunks) > b.maxChunks {
		b.chunks = b.chunks[len(b.chunks)-b.maxChunks:]
	}
}

func (b *audioReplayBuffer) Snapshot() []audioChunk {
	if b == nil || len(b.chunks) == 0 {
		return nil
	}
	out := make([]audioChunk, len(b.chunks))
	copy(out, b.chunks)
	return out
}

func NewSTTProcessor(factory func(sessionID string) stt.StreamingSTT) *STTProcessor {
	return &STTProcessor{
		sessions:      make(map[string]stt.StreamingSTT),
		factory:       factory,
		langFactories: make(map[string]func(sessionID string) stt.StreamingSTT),
		sessionLang:   make(map[string]string),
		replayCfg:     STTReplayConfig{MaxChunks: 50},
		replay:        make(map[string]*audioReplayBuffer),
		trace:         make(map[string]string),
		retry:         resilience.NewRetryPolicy(2, 200*time.Millisecond),
		breaker:       resilience.NewCircuitBreaker(3, 30*time.Second),
		interimLogged: make(map[string]bool),
	}
}

// SetLanguageFactories configures per-language recognizer factories so a
// Hindi session gets a Hindi model without restarting the pipeline.
func (p *STTProcessor) SetLanguageFactories(factories map[string]func(sessionID string) stt.StreamingSTT, defaultLang string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if factories == nil {
		factories = make(map[string]func(sessionID string) stt.StreamingSTT)
	}
	p.langFactories = factories
	p.defaultLang = defaultLang
}

// SetReplayBuffer configures how many recent audio chunks to replay on reconnect.
func (p *STTProcessor) SetReplayBuffer(cfg STTReplayConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cfg.MaxChunks < 0 {
		cfg.MaxChunks = 0
	}
	p.replayCfg = cfg
	if cfg.MaxChunks == 0 {
		p.replay = make(map[string]*audioReplayBuffer)
	}
}

// SetForwardInterim toggles emitting interim utterance frames downstream.
func (p *STTProcessor) SetForwardInterim(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forwardInterim = enabled
}

func (p *STTProcessor) Name() string { return "stt_processor" }

func (p *STTProcessor) SetObserver(obs metrics.Observer) { p.obs = obs }

func (p *STTProcessor) SetContext(ctx context.Context) {
	if ctx != nil {
		p.ctx = ctx
	}
}

func (p *STTProcessor) Process(f frames.Frame) ([]frames.Frame, error) {
	if f.Kind() == frames.KindSystem {
		sf := f.(frames.SystemFrame)
		meta := sf.Meta()
		sessionID := meta[frames.MetaSessionID]
		if sf.Name() == "session_end" {
			if sessionID != "" {
				p.CloseSession(sessionID)
			}
			return []frames.Frame{f}, nil
		}
		if lang := meta[frames.MetaLanguage]; sessionID != "" && lang != "" {
			p.setLanguage(sessionID, lang)
			if p.hasLangFactories() {
				p.CloseSession(sessionID)
			}
		}
		return []frames.Frame{f}, nil
	}
	if f.Kind() != frames.KindAudio {
		return []frames.Frame{f}, nil
	}
	af := f.(frames.AudioFrame)
	meta := af.Meta()
	sessionID := meta[frames.MetaSessionID]
	p.addReplay(sessionID, af)
	if v := meta[frames.MetaRequestID]; v != "" {
		p.setTrace(sessionID, v)
	}

	if !p.breaker.Allow() {
		p.recordBreaker(metrics.EventBreakerDenied, sessionID, p.getTrace(sessionID))
		p.setBreakerOpen(true, sessionID, p.getTrace(sessionID))
		slog.Info("stt_circuit_open", "session_id", sessionID, "reason_code", string(errorsx.ReasonSTTCircuitOpen))
		frames.ReleaseAudioFrame(f)
		return []frames.Frame{frames.NewControlFrame(sessionID, time.Now().UnixNano(), frames.ControlFallback, meta)}, nil
	}
	p.setBreakerOpen(false, sessionID, p.getTrace(sessionID))

	sttSession, err := p.getOrCreate(sessionID)
	if err != nil {
		err = errorsx.Wrap(err, errorsx.ReasonSTTConnect)
		slog.Info("stt_session_error", "session_id", sessionID, "reason_code", string(errorsx.Reason(err)), "error", err.Error())
		p.recordRateLimit(err, sessionID, p.getTrace(sessionID))
		p.breaker.OnError(err)
		frames.ReleaseAudioFrame(f)
		return []frames.Frame{frames.NewControlFrame(sessionID, time.Now().UnixNano(), frames.ControlFallback, meta)}, nil
	}
	p.setProviderFromSession(sttSession)
	p.record("stt_audio_in", sessionID, p.getTrace(sessionID))
	if err := sttSession.SendAudio(af); err != nil {
		err = errorsx.Wrap(err, errorsx.ReasonSTTSend)
		slog.Info("stt_send_error", "session_id", sessionID, "reason_code", string(errorsx.Reason(err)), "error", err.Error())
		replayed := false
		retryErr := p.retry.Do(func() error {
			p.CloseSession(sessionID)
			sttSession, err = p.getOrCreate(sessionID)
			if err != nil {
				return err
			}
			if !replayed {
				p.replayToSession(sessionID, sttSession)
				replayed = true
			}
			return sttSession.SendAudio(af)
		})
		if retryErr != nil {
			retryErr = errorsx.Wrap(retryErr, errorsx.ReasonSTTRetry)
			slog.Info("stt_retry_error", "session_id", sessionID, "reason_code", string(errorsx.Reason(retryErr)), "error", retryErr.Error())
			p.recordRateLimit(retryErr, sessionID, p.getTrace(sessionID))
			p.breaker.OnError(retryErr)
			frames.ReleaseAudioFrame(f)
			return []frames.Frame{frames.NewControlFrame(sessionID, time.Now().UnixNano(), frames.ControlFallback, meta)}, nil
		}
	}
	p.breaker.OnSuccess()
	frames.ReleaseAudioFrame(f)

	// Emit heartbeat to keep the pipeline clock valid
	heartbeat := frames.NewSystemFrame(sessionID, af.PTS(), "heartbeat", nil)
	out := []frames.Frame{heartbeat}

	res := p.drainResults(sttSession.Results(), sessionID)
	out = append(out, res...)
	for _, e := range out {
		if e.Kind() == frames.KindUtterance && frames.IsFinal(e.Meta()) {
			p.record("stt_final", sessionID, p.getTrace(sessionID))
			break
		}
	}
	return out, nil
}

func (p *STTProcessor) getOrCreate(sessionID string) (stt.StreamingSTT, error) {
	lang := p.getLanguage(sessionID)
	factory := p.factoryForLang(lang)
	p.mu.Lock()
	defer p.mu.Unlock()
	if sttSession, ok := p.sessions[sessionID]; ok {
		return sttSession, nil
	}
	sttSession := factory(sessionID)
	if p.ctx == nil {
		p.ctx = context.Background()
	}
	if err := sttSession.Start(p.ctx); err != nil {
		return nil, err
	}
	p.sessions[sessionID] = sttSession
	return sttSession, nil
}

func (p *STTProcessor) CloseSession(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sttSession, ok := p.sessions[sessionID]; ok {
		_ = sttSession.Close()
		delete(p.sessions, sessionID)
	}
	delete(p.trace, sessionID)
	delete(p.sessionLang, sessionID)
	delete(p.replay, sessionID)
}

func (p *STTProcessor) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, sttSession := range p.sessions {
		_ = sttSession.Close()
		delete(p.sessions, id)
	}
	p.trace = make(map[string]string)
	p.sessionLang = make(map[string]string)
	p.replay = make(map[string]*audioReplayBuffer)
}

func (p *STTProcessor) drainResults(ch <-chan frames.Frame, sessionID string) []frames.Frame {
	var out []frames.Frame
	for {
		select {
		case f, ok := <-ch:
			if !ok {
				return out
			}
			if f.Kind() == frames.KindUtterance {
				uf := f.(frames.UtteranceFrame)
				p.mu.Lock()
				forwardInterim := p.forwardInterim
				p.mu.Unlock()
				if !frames.IsFinal(uf.Meta()) {
					p.logInterim(sessionID, uf.Text())
					if forwardInterim {
						out = append(out, uf)
					}
					continue
				}
				p.logFinal(sessionID, uf.Text())
				out = append(out, uf)
				continue
			}
			out = append(out, f)
		default:
			return out
		}
	}
}

var _ pipeline.FrameProcessor = (*STTProcessor)(nil)

func (p *STTProcessor) record(name, sessionID, traceID string) {
	if p.obs == nil {
		return
	}
	tags := map[string]string{frames.MetaSessionID: sessionID, "component": "stt"}
	if traceID != "" {
		tags[frames.MetaRequestID] = traceID
	}
	if p.provider != "" {
		tags["provider"] = p.provider
	}
	p.obs.RecordEvent(metrics.MetricsEvent{
		Name: name,
		Time: time.Now(),
		Tags: tags,
	})
}

func (p *STTProcessor) setLanguage(sessionID, lang string) {
	if sessionID == "" || lang == "" {
		return
	}
	p.mu.Lock()
	p.sessionLang[sessionID] = strings.ToLower(strings.TrimSpace(lang))
	p.mu.Unlock()
}

func (p *STTProcessor) getLanguage(sessionID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if lang := p.sessionLang[sessionID]; lang != "" {
		return lang
	}
	return p.defaultLang
}

func (p *STTProcessor) factoryForLang(lang string) func(sessionID string) stt.StreamingSTT {
	p.mu.Lock()
	defer p.mu.Unlock()
	if lang != "" && p.langFactories != nil {
		if factory, ok := p.langFactories[lang]; ok && factory != nil {
			return factory
		}
	}
	return p.factory
}

func (p *STTProcessor) hasLangFactories() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.langFactories) > 0
}

func (p *STTProcessor) recordWithFields(name, sessionID, traceID string, fields map[string]any) {
	if p.obs == nil {
		return
	}
	tags := map[string]string{frames.MetaSessionID: sessionID, "component": "stt"}
	if traceID != "" {
		tags[frames.MetaRequestID] = traceID
	}
	if p.provider != "" {
		tags["provider"] = p.provider
	}
	p.obs.RecordEvent(metrics.MetricsEvent{
		Name:   name,
		Time:   time.Now(),
		Tags:   tags,
		Fields: fields,
	})
}

func (p *STTProcessor) addReplay(sessionID string, af frames.AudioFrame) {
	if sessionID == "" {
		return
	}
	p.mu.Lock()
	cfg := p.replayCfg
	buf := p.replay[sessionID]
	if cfg.MaxChunks <= 0 {
		p.mu.Unlock()
		return
	}
	if buf == nil {
		buf = newAudioReplayBuffer(cfg.MaxChunks)
		p.replay[sessionID] = buf
	}
	p.mu.Unlock()

	chunk := audioChunk{
		data:     append([]byte(nil), af.RawPayload()...),
		rate:     af.Rate(),
		channels: af.Channels(),
	}
	p.mu.Lock()
	buf.Add(chunk)
	p.mu.Unlock()
}

func (p *STTProcessor) replayToSession(sessionID string, sess stt.StreamingSTT) {
	if sess == nil || sessionID == "" {
		return
	}
	p.mu.Lock()
	buf := p.replay[sessionID]
	p.mu.Unlock()
	if buf == nil {
		return
	}
	chunks := buf.Snapshot()
	for _, chunk := range chunks {
		if len(chunk.data) == 0 {
			continue
		}
		af := frames.NewAudioFrame(sessionID, time.Now().UnixNano(), chunk.data, chunk.rate, chunk.channels, nil)
		_ = sess.SendAudio(af)
	}
}

func (p *STTProcessor) recordBreaker(name, sessionID, traceID string) {
	p.record(name, sessionID, traceID)
}

func (p *STTProcessor) recordRateLimit(err error, sessionID, traceID string) {
	if err == nil {
		return
	}
	if resilience.IsRateLimit(err) {
		p.record(metrics.EventRateLimit, sessionID, traceID)
	}
}

func (p *STTProcessor) setProviderFromSession(sess stt.StreamingSTT) {
	if sess == nil || p.provider != "" {
		return
	}
	p.provider = sess.Name()
}

func (p *STTProcessor) setBreakerOpen(open bool, sessionID, traceID string) {
	if p.breakerOpen == open {
		return
	}
	p.breakerOpen = open
	if open {
		p.recordBreaker(metrics.EventBreakerOpen, sessionID, traceID)
		return
	}
	p.recordBreaker(metrics.EventBreakerClose, sessionID, traceID)
}

func (p *STTProcessor) setTrace(sessionID, traceID string) {
	p.mu.Lock()
	p.trace[sessionID] = traceID
	p.mu.Unlock()
}

func (p *STTProcessor) getTrace(sessionID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trace[sessionID]
}

func (p *STTProcessor) logInterim(sessionID, text string) {
	p.mu.Lock()
	if p.interimLogged[sessionID] {
		p.mu.Unlock()
		return
	}
	p.interimLogged[sessionID] = true
	traceID := p.trace[sessionID]
	p.mu.Unlock()
	safe := redact.Text(text)
	slog.Info("stt_interim", "session_id", sessionID, "request_id", traceID, "text", clipText(safe))
}

func (p *STTProcessor) logFinal(sessionID, text string) {
	traceID := p.getTrace(sessionID)
	safe := redact.Text(text)
	slog.Info("stt_final", "session_id", sessionID, "request_id", traceID, "text", clipText(safe))
	p.recordWithFields("stt_final_text", sessionID, traceID, map[string]any{"text": safe})
}

func clipText(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= 120 {
		return text
	}
	return text[:120] + "..."
}
