package dashboard

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/language"
)

type Config struct {
	ServerAddr     string   `mapstructure:"server_addr"`
	PublicURL      string   `mapstructure:"public_url"`
	WebsocketPath  string   `mapstructure:"ws_path"`
	AllowAnyOrigin bool     `mapstructure:"allow_any_origin"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (c Config) withDefaults() Config {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.WebsocketPath == "" {
		c.WebsocketPath = "/ws"
	}
	if !c.AllowAnyOrigin && len(c.AllowedOrigins) == 0 {
		c.AllowAnyOrigin = true
	}
	return c
}

// Transport bridges browser dashboard clients to the pipeline over a
// websocket. The browser does its own speech capture and recognition and
// sends text utterances; raw audio chunks are accepted as well for the
// optional server-side recognition path.
type Transport struct {
	cfg      Config
	server   *http.Server
	upgrader websocket.Upgrader
	recvCh   chan frames.Frame

	mu             sync.Mutex
	sessions       map[string]*session
	clientSessions map[string]string
	clientIDs      map[string]string
	traceIDs       map[string]string
	languages      map[string]string

	draining atomic.Bool
}

func New(cfg Config) *Transport {
	cfg = cfg.withDefaults()
	t := &Transport{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		recvCh:         make(chan frames.Frame, 512),
		sessions:       make(map[string]*session),
		clientSessions: make(map[string]string),
		clientIDs:      make(map[string]string),
		traceIDs:       make(map[string]string),
		languages:      make(map[string]string),
	}
	t.upgrader.CheckOrigin = t.checkOrigin
	return t
}

func (t *Transport) Name() string { return "dashboard" }

func (t *Transport) Recv() <-chan frames.Frame { return t.recvCh }

func (t *Transport) ReadyFields() map[string]any {
	return map[string]any{
		"websocket_url": t.websocketURL(),
	}
}

func (t *Transport) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.Handle(t.cfg.WebsocketPath, t)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	t.server = &http.Server{
		Addr:              t.cfg.ServerAddr,
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           mux,
	}
	go func() {
		<-ctx.Done()
		_ = t.server.Close()
	}()
	go func() {
		if err := t.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("dashboard_transport_server_error", "error", err.Error())
		}
	}()
	return nil
}

func (t *Transport) Stop() error {
	t.draining.Store(true)
	if t.server != nil {
		_ = t.server.Close()
	}
	t.mu.Lock()
	for _, sess := range t.sessions {
		_ = sess.close()
	}
	t.sessions = make(map[string]*session)
	t.mu.Unlock()
	close(t.recvCh)
	return nil
}

func (t *Transport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if t.draining.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var sessionID string
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var evt ClientEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			continue
		}
		switch evt.Event {
		case "start":
			if evt.Start == nil {
				continue
			}
			sessionID = evt.Start.SessionID
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			traceID := uuid.NewString()
			lang := string(language.Normalize(evt.Start.Language))
			oldSession, oldSess := t.attach(sessionID, evt.Start.ClientID, traceID, lang, conn)
			if oldSess != nil {
				_ = oldSess.close()
			}
			meta := map[string]string{
				frames.MetaSessionID: sessionID,
				frames.MetaClientID:  evt.Start.ClientID,
				frames.MetaTraceID:   traceID,
				frames.MetaLanguage:  lang,
				frames.MetaSource:    "transport",
			}
			nonBlockingSend(t.recvCh, frames.NewSystemFrame(sessionID, time.Now().UnixNano(), "session_start", meta))
			if oldSession != "" {
				reconnectMeta := map[string]string{
					frames.MetaSessionID: sessionID,
					frames.MetaClientID:  evt.Start.ClientID,
					frames.MetaTraceID:   traceID,
					frames.MetaReason:    "reconnect",
					frames.MetaSource:    "transport",
				}
				nonBlockingSend(t.recvCh, frames.NewSystemFrame(sessionID, time.Now().UnixNano(), "session_reconnect", reconnectMeta))
			}
		case "utterance":
			if evt.Utterance == nil || sessionID == "" {
				continue
			}
			meta := t.metaForSession(sessionID)
			meta[frames.MetaSource] = "browser_stt"
			if evt.Utterance.IsFinal {
				meta[frames.MetaIsFinal] = "true"
			} else {
				meta[frames.MetaIsFinal] = "false"
			}
			if evt.Utterance.Language != "" {
				meta[frames.MetaLanguage] = string(language.Normalize(evt.Utterance.Language))
			}
			uf := frames.NewUtteranceFrame(sessionID, time.Now().UnixNano(), evt.Utterance.Text, meta)
			nonBlockingSend(t.recvCh, uf)
		case "audio":
			if evt.Audio == nil || sessionID == "" {
				continue
			}
			payload, err := base64.StdEncoding.DecodeString(evt.Audio.Payload)
			if err != nil {
				continue
			}
			rate := evt.Audio.SampleRate
			if rate <= 0 {
				rate = 16000
			}
			meta := t.metaForSession(sessionID)
			meta[frames.MetaSource] = "browser_mic"
			af := frames.NewAudioFrame(sessionID, time.Now().UnixNano(), payload, rate, 1, meta)
			nonBlockingSend(t.recvCh, af)
		case "control":
			if evt.Control == nil || sessionID == "" {
				continue
			}
			meta := t.metaForSession(sessionID)
			if evt.Control.Reason != "" {
				meta[frames.MetaReason] = evt.Control.Reason
			}
			// Recognizer-end and playback-done are lifecycle events, not
			// pipeline controls; everything else passes through as-is.
			if evt.Control.Code == "speech_end" || evt.Control.Code == "capture_end" {
				nonBlockingSend(t.recvCh, frames.NewSystemFrame(sessionID, time.Now().UnixNano(), evt.Control.Code, meta))
				continue
			}
			code := frames.ControlCode(evt.Control.Code)
			nonBlockingSend(t.recvCh, frames.NewControlFrame(sessionID, time.Now().UnixNano(), code, meta))
		case "error":
			if evt.Error == nil || sessionID == "" {
				continue
			}
			meta := t.metaForSession(sessionID)
			meta[frames.MetaErrorCode] = evt.Error.Code
			if evt.Error.Message != "" {
				meta[frames.MetaReason] = evt.Error.Message
			}
			nonBlockingSend(t.recvCh, frames.NewSystemFrame(sessionID, time.Now().UnixNano(), "capture_error", meta))
		case "stop":
			if sessionID == "" {
				return
			}
			meta := t.metaForSession(sessionID)
			reason := "completed"
			if evt.Stop != nil && evt.Stop.Reason != "" {
				reason = evt.Stop.Reason
			}
			meta[frames.MetaReason] = reason
			nonBlockingSend(t.recvCh, frames.NewSystemFrame(sessionID, time.Now().UnixNano(), "session_end", meta))
			t.detach(sessionID)
			return
		}
	}
	if sessionID != "" {
		meta := t.metaForSession(sessionID)
		meta[frames.MetaReason] = "transport_closed"
		nonBlockingSend(t.recvCh, frames.NewSystemFrame(sessionID, time.Now().UnixNano(), "session_end", meta))
		t.detach(sessionID)
	}
}

func (t *Transport) Send(f frames.Frame) error {
	switch f.Kind() {
	case frames.KindResponse:
		rf := f.(frames.ResponseFrame)
		meta := rf.Meta()
		sess := t.session(meta[frames.MetaSessionID])
		if sess == nil {
			return nil
		}
		resp := map[string]any{
			"text":   rf.Text(),
			"origin": meta[frames.MetaOrigin],
		}
		if v := meta[frames.MetaLanguage]; v != "" {
			resp["language"] = v
		}
		if v := meta[frames.MetaAction]; v != "" {
			resp["action"] = v
		}
		if v := meta[frames.MetaActionTab]; v != "" {
			resp["tab"] = v
		}
		if v := meta[frames.MetaRequestID]; v != "" {
			resp["requestId"] = v
		}
		msg := map[string]any{
			"event":     "response",
			"sessionId": meta[frames.MetaSessionID],
			"response":  resp,
		}
		return sess.enqueue(msg)
	case frames.KindControl:
		cf := f.(frames.ControlFrame)
		meta := cf.Meta()
		switch cf.Code() {
		case frames.ControlFallback, frames.ControlStartCapture, frames.ControlStopCapture, frames.ControlRestart:
		default:
			return nil
		}
		sess := t.session(meta[frames.MetaSessionID])
		if sess == nil {
			return nil
		}
		ctl := map[string]any{"code": string(cf.Code())}
		if v := meta[frames.MetaReason]; v != "" {
			ctl["reason"] = v
		}
		msg := map[string]any{
			"event":     "control",
			"sessionId": meta[frames.MetaSessionID],
			"control":   ctl,
		}
		return sess.enqueue(msg)
	case frames.KindSystem:
		sf := f.(frames.SystemFrame)
		meta := sf.Meta()
		if meta[frames.MetaSource] == "transport" {
			return nil
		}
		sess := t.session(meta[frames.MetaSessionID])
		if sess == nil {
			return nil
		}
		msg := map[string]any{
			"event":     "state",
			"sessionId": meta[frames.MetaSessionID],
			"state":     map[string]any{"name": sf.Name()},
		}
		return sess.enqueue(msg)
	default:
		return nil
	}
}

func (t *Transport) websocketURL() string {
	if t.cfg.PublicURL != "" {
		return "wss://" + normalizePublicURL(t.cfg.PublicURL) + t.cfg.WebsocketPath
	}
	addr := t.cfg.ServerAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "ws://" + addr + t.cfg.WebsocketPath
}

func (t *Transport) attach(sessionID, clientID, traceID, lang string, conn *websocket.Conn) (string, *session) {
	sess := &session{
		conn:   conn,
		sendCh: make(chan []byte, 256),
	}
	var oldSession string
	var oldSess *session
	t.mu.Lock()
	if clientID != "" {
		if existing := t.clientSessions[clientID]; existing != "" && existing != sessionID {
			oldSession = existing
			oldSess = t.sessions[existing]
			delete(t.sessions, existing)
			delete(t.clientIDs, existing)
			delete(t.traceIDs, existing)
			delete(t.languages, existing)
		}
		t.clientSessions[clientID] = sessionID
	}
	t.sessions[sessionID] = sess
	t.clientIDs[sessionID] = clientID
	t.traceIDs[sessionID] = traceID
	if lang != "" {
		t.languages[sessionID] = lang
	}
	t.mu.Unlock()
	go sess.loop()
	return oldSession, oldSess
}

func (t *Transport) detach(sessionID string) {
	t.mu.Lock()
	sess := t.sessions[sessionID]
	clientID := t.clientIDs[sessionID]
	delete(t.sessions, sessionID)
	delete(t.clientIDs, sessionID)
	delete(t.traceIDs, sessionID)
	delete(t.languages, sessionID)
	if clientID != "" && t.clientSessions[clientID] == sessionID {
		delete(t.clientSessions, clientID)
	}
	t.mu.Unlock()
	if sess != nil {
		_ = sess.close()
	}
}

func (t *Transport) session(sessionID string) *session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions[sessionID]
}

func (t *Transport) metaForSession(sessionID string) map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	meta := map[string]string{frames.MetaSessionID: sessionID}
	if v := t.clientIDs[sessionID]; v != "" {
		meta[frames.MetaClientID] = v
	}
	if v := t.traceIDs[sessionID]; v != "" {
		meta[frames.MetaTraceID] = v
	}
	if v := t.languages[sessionID]; v != "" {
		meta[frames.MetaLanguage] = v
	}
	return meta
}

func (t *Transport) checkOrigin(r *http.Request) bool {
	if t.cfg.AllowAnyOrigin {
		return true
	}
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	origin = strings.TrimRight(origin, "/")
	originHost := strings.TrimPrefix(origin, "https://")
	originHost = strings.TrimPrefix(originHost, "http://")
	for _, allowed := range t.cfg.AllowedOrigins {
		a := strings.TrimSpace(allowed)
		if a == "" {
			continue
		}
		a = strings.TrimRight(a, "/")
		if strings.HasPrefix(a, "http://") || strings.HasPrefix(a, "https://") {
			if strings.EqualFold(a, origin) {
				return true
			}
			continue
		}
		if strings.EqualFold(a, originHost) {
			return true
		}
	}
	return false
}

type session struct {
	conn   *websocket.Conn
	sendCh chan []byte
	closed atomic.Bool
}

func (s *session) enqueue(msg map[string]any) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case s.sendCh <- b:
	default:
	}
	return nil
}

func (s *session) loop() {
	for msg := range s.sendCh {
		_ = s.conn.WriteMessage(websocket.TextMessage, msg)
	}
}

func (s *session) close() error {
	if s.closed.CompareAndSwap(false, true) {
		close(s.sendCh)
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// ClientStart opens a dialogue session for a dashboard tab.
type ClientStart struct {
	SessionID string `json:"sessionId"`
	ClientID  string `json:"clientId"`
	Language  string `json:"language"`
}

// ClientUtterance carries a browser recognition hypothesis. Interim
// hypotheses replace earlier ones; IsFinal marks the settled transcript.
type ClientUtterance struct {
	Text     string `json:"text"`
	IsFinal  bool   `json:"isFinal"`
	Language string `json:"language"`
}

type ClientAudio struct {
	Payload    string `json:"payload"`
	SampleRate int    `json:"sampleRate"`
}

type ClientError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ClientStop struct {
	Reason string `json:"reason"`
}

// ClientControl relays browser-side pipeline signals: barge_in when the
// user talks over playback, speech_end when playback finishes.
type ClientControl struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

type ClientEvent struct {
	Event     string           `json:"event"`
	Start     *ClientStart     `json:"start,omitempty"`
	Utterance *ClientUtterance `json:"utterance,omitempty"`
	Audio     *ClientAudio     `json:"audio,omitempty"`
	Control   *ClientControl   `json:"control,omitempty"`
	Error     *ClientError     `json:"error,omitempty"`
	Stop      *ClientStop      `json:"stop,omitempty"`
}

func normalizePublicURL(v string) string {
	if v == "" {
		return ""
	}
	if len(v) >= 8 && v[:8] == "https://" {
		v = v[8:]
	} else if len(v) >= 7 && v[:7] == "http://" {
		v = v[7:]
	}
	for len(v) > 0 && v[len(v)-1] == '/' {
		v = v[:len(v)-1]
	}
	return v
}

func nonBlockingSend(ch chan frames.Frame, f frames.Frame) {
	select {
	case ch <- f:
	default:
	}
}
