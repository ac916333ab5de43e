package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mandimitra/vaani/pkg/frames"
)

func TestSendResponseEnqueuesPayload(t *testing.T) {
	tr := New(Config{})
	sess := &session{sendCh: make(chan []byte, 1)}
	tr.mu.Lock()
	tr.sessions["s-1"] = sess
	tr.mu.Unlock()

	rf := frames.NewResponseFrame("s-1", time.Now().UnixNano(), "Wheat is at 2100 per quintal.", map[string]string{
		frames.MetaOrigin:    frames.OriginInternal,
		frames.MetaAction:    "navigate",
		frames.MetaActionTab: "market",
	})
	if err := tr.Send(rf); err != nil {
		t.Fatalf("send error: %v", err)
	}

	select {
	case msg := <-sess.sendCh:
		var payload map[string]any
		if err := json.Unmarshal(msg, &payload); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt, _ := payload["event"].(string); evt != "response" {
			t.Fatalf("expected response event, got %q", evt)
		}
		resp, _ := payload["response"].(map[string]any)
		if resp["text"] != "Wheat is at 2100 per quintal." {
			t.Fatalf("unexpected text: %v", resp["text"])
		}
		if resp["origin"] != frames.OriginInternal {
			t.Fatalf("unexpected origin: %v", resp["origin"])
		}
		if resp["action"] != "navigate" || resp["tab"] != "market" {
			t.Fatalf("expected navigation payload, got %v", resp)
		}
	default:
		t.Fatalf("expected response to be enqueued")
	}
}

func TestSendFallbackControlReachesClient(t *testing.T) {
	tr := New(Config{})
	sess := &session{sendCh: make(chan []byte, 1)}
	tr.mu.Lock()
	tr.sessions["s-1"] = sess
	tr.mu.Unlock()

	cf := frames.NewControlFrame("s-1", time.Now().UnixNano(), frames.ControlFallback, map[string]string{
		frames.MetaReason: "stt_unavailable",
	})
	if err := tr.Send(cf); err != nil {
		t.Fatalf("send error: %v", err)
	}

	select {
	case msg := <-sess.sendCh:
		var payload map[string]any
		if err := json.Unmarshal(msg, &payload); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		ctl, _ := payload["control"].(map[string]any)
		if ctl["code"] != string(frames.ControlFallback) {
			t.Fatalf("expected fallback code, got %v", ctl["code"])
		}
		if ctl["reason"] != "stt_unavailable" {
			t.Fatalf("expected reason, got %v", ctl["reason"])
		}
	default:
		t.Fatalf("expected control to be enqueued")
	}
}

func TestSendDropsCancelControl(t *testing.T) {
	tr := New(Config{})
	sess := &session{sendCh: make(chan []byte, 1)}
	tr.mu.Lock()
	tr.sessions["s-1"] = sess
	tr.mu.Unlock()

	cf := frames.NewControlFrame("s-1", time.Now().UnixNano(), frames.ControlCancel, nil)
	if err := tr.Send(cf); err != nil {
		t.Fatalf("send error: %v", err)
	}
	select {
	case <-sess.sendCh:
		t.Fatalf("cancel must stay internal to the pipeline")
	default:
	}
}

func TestWebsocketSessionLifecycle(t *testing.T) {
	tr := New(Config{})
	srv := httptest.NewServer(tr)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	writeEvent(t, conn, map[string]any{
		"event": "start",
		"start": map[string]any{"sessionId": "s-7", "clientId": "c-1", "language": "hi"},
	})
	writeEvent(t, conn, map[string]any{
		"event":     "utterance",
		"utterance": map[string]any{"text": "gehu ka bhav", "isFinal": true, "language": "hi"},
	})
	writeEvent(t, conn, map[string]any{
		"event": "error",
		"error": map[string]any{"code": "no-speech", "message": "no speech detected"},
	})
	writeEvent(t, conn, map[string]any{
		"event": "stop",
		"stop":  map[string]any{"reason": "user_toggle"},
	})

	start := recvFrame(t, tr)
	sys, ok := start.(frames.SystemFrame)
	if !ok || sys.Name() != "session_start" {
		t.Fatalf("expected session_start, got %#v", start)
	}
	if sys.Meta()[frames.MetaLanguage] != "hi" {
		t.Fatalf("expected hindi session, got %q", sys.Meta()[frames.MetaLanguage])
	}

	utt := recvFrame(t, tr)
	uf, ok := utt.(frames.UtteranceFrame)
	if !ok {
		t.Fatalf("expected utterance frame, got %#v", utt)
	}
	if uf.Text() != "gehu ka bhav" || !frames.IsFinal(uf.Meta()) {
		t.Fatalf("unexpected utterance: %q meta=%v", uf.Text(), uf.Meta())
	}
	if uf.Meta()[frames.MetaSource] != "browser_stt" {
		t.Fatalf("expected browser_stt source, got %q", uf.Meta()[frames.MetaSource])
	}

	errFrame := recvFrame(t, tr)
	esys, ok := errFrame.(frames.SystemFrame)
	if !ok || esys.Name() != "capture_error" {
		t.Fatalf("expected capture_error, got %#v", errFrame)
	}
	if esys.Meta()[frames.MetaErrorCode] != "no-speech" {
		t.Fatalf("expected no-speech code, got %q", esys.Meta()[frames.MetaErrorCode])
	}

	end := recvFrame(t, tr)
	endSys, ok := end.(frames.SystemFrame)
	if !ok || endSys.Name() != "session_end" {
		t.Fatalf("expected session_end, got %#v", end)
	}
	if endSys.Meta()[frames.MetaReason] != "user_toggle" {
		t.Fatalf("expected user_toggle reason, got %q", endSys.Meta()[frames.MetaReason])
	}
}

func TestCheckOriginAllowlist(t *testing.T) {
	tr := New(Config{AllowedOrigins: []string{"dashboard.mandimitra.in"}})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://dashboard.mandimitra.in")
	if !tr.checkOrigin(req) {
		t.Fatal("expected allowlisted origin to pass")
	}

	req.Header.Set("Origin", "https://evil.example.com")
	if tr.checkOrigin(req) {
		t.Fatal("expected unknown origin to be rejected")
	}
}

func writeEvent(t *testing.T, conn *websocket.Conn, evt map[string]any) {
	t.Helper()
	b, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func recvFrame(t *testing.T, tr *Transport) frames.Frame {
	t.Helper()
	select {
	case f := <-tr.Recv():
		return f
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for frame")
		return nil
	}
}
