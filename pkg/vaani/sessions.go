package vaani

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/session"
	"github.com/mandimitra/vaani/pkg/transports"
)

// dialogueSession pairs a capture state machine with the language the
// dashboard opened the session in.
type dialogueSession struct {
	mgr  session.Manager
	lang language.Code
}

type managerSet struct {
	mu sync.Mutex
	m  map[string]*dialogueSession
}

func newManagerSet() *managerSet {
	return &managerSet{m: make(map[string]*dialogueSession)}
}

func (s *managerSet) get(sessionID string) *dialogueSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[sessionID]
}

func (s *managerSet) start(sessionID string, lang language.Code, maxRestarts int, tr transports.Transport) {
	s.mu.Lock()
	if _, ok := s.m[sessionID]; ok {
		s.mu.Unlock()
		return
	}
	mgr := session.NewManager(&captureDriver{transport: tr, sessionID: sessionID}, session.ManagerOptions{
		MaxConsecutiveRestarts: maxRestarts,
		Logger:                 slog.Default(),
	})
	mgr.AddListener(&fatalNotifier{transport: tr, sessionID: sessionID, lang: lang})
	ds := &dialogueSession{mgr: mgr, lang: lang}
	s.m[sessionID] = ds
	s.mu.Unlock()

	if err := mgr.Start(); err != nil {
		slog.Warn("session_start_failed", "session_id", sessionID, "error", err.Error())
	}
}

func (s *managerSet) remove(sessionID string) {
	s.mu.Lock()
	ds := s.m[sessionID]
	delete(s.m, sessionID)
	s.mu.Unlock()
	if ds != nil {
		ds.mgr.Stop()
	}
}

func (s *managerSet) stopAll() {
	s.mu.Lock()
	all := make([]*dialogueSession, 0, len(s.m))
	for _, ds := range s.m {
		all = append(all, ds)
	}
	s.m = make(map[string]*dialogueSession)
	s.mu.Unlock()
	for _, ds := range all {
		ds.mgr.Stop()
	}
}

// captureDriver relays state-machine capture commands to the browser.
type captureDriver struct {
	transport transports.Transport
	sessionID string
}

func (d *captureDriver) StartCapture() error {
	if d.transport == nil {
		return nil
	}
	return d.transport.Send(frames.NewControlFrame(d.sessionID, time.Now().UnixNano(), frames.ControlStartCapture, nil))
}

func (d *captureDriver) StopCapture() {
	if d.transport == nil {
		return
	}
	_ = d.transport.Send(frames.NewControlFrame(d.sessionID, time.Now().UnixNano(), frames.ControlStopCapture, nil))
}

// fatalNotifier tells the user when the session dies for good: blocked
// microphone permission gets the localized permission message, everything
// else the generic fallback. The browser is also told to stop capturing.
type fatalNotifier struct {
	transport transports.Transport
	sessionID string
	lang      language.Code
}

func (n *fatalNotifier) OnStateChange(ev session.StateChange) {
	if ev.ToState != session.StateErrorFatal || n.transport == nil {
		return
	}
	table := language.FallbackText
	if strings.Contains(ev.Reason, session.ErrNotAllowed) || strings.Contains(ev.Reason, session.ErrServiceNotAllowed) {
		table = language.PermissionDeniedText
	}
	meta := map[string]string{
		frames.MetaOrigin:   frames.OriginFallback,
		frames.MetaLanguage: string(n.lang),
		frames.MetaReason:   ev.Reason,
	}
	_ = n.transport.Send(frames.NewResponseFrame(n.sessionID, time.Now().UnixNano(), language.Localized(table, n.lang), meta))
	_ = n.transport.Send(frames.NewControlFrame(n.sessionID, time.Now().UnixNano(), frames.ControlStopCapture, map[string]string{
		frames.MetaReason: ev.Reason,
	}))
}

var _ session.CaptureDriver = (*captureDriver)(nil)
var _ session.StateListener = (*fatalNotifier)(nil)
