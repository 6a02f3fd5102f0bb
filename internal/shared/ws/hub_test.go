package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"guideadmin/internal/shared/logger"

	"github.com/gorilla/websocket"
)

func allowAll(r *http.Request) (Principal, error) {
	return Principal{UserID: "1", Role: "admin", Ctx: r.Context()}, nil
}

// startHub: setup вызывается до Run, обработчики не меняются на ходу
func startHub(t *testing.T, auth AuthFunc, setup func(*Hub)) (*Hub, context.CancelFunc, string) {
	t.Helper()
	hub := NewHub(auth, "", logger.NewWriterLogger("test", io.Discard))
	if setup != nil {
		setup(hub)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)
	return hub, cancel, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMessageHandlerRepliesToClient(t *testing.T) {
	_, _, url := startHub(t, allowAll, func(h *Hub) {
		h.SetMessageHandler(func(c *Client, msgType string, data json.RawMessage) error {
			var in struct {
				Q string `json:"q"`
			}
			if err := json.Unmarshal(data, &in); err != nil {
				return err
			}
			return c.SendJSON(map[string]string{"type": msgType, "echo": in.Q})
		})
	})

	conn := dial(t, url)
	if err := conn.WriteJSON(map[string]any{"type": "search", "data": map[string]string{"q": "kam"}}); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]string
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got["type"] != "search" || got["echo"] != "kam" {
		t.Fatalf("reply = %v", got)
	}
}

func TestUnauthorizedUpgradeRejected(t *testing.T) {
	_, _, url := startHub(t, func(*http.Request) (Principal, error) {
		return Principal{}, errors.New("no session")
	}, nil)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("dial should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("response = %+v, want 401", resp)
	}
}

func TestShutdownDisconnectsClients(t *testing.T) {
	var (
		mu           sync.Mutex
		disconnected []string
	)
	hub, cancel, url := startHub(t, allowAll, func(h *Hub) {
		h.SetDisconnectHandler(func(c *Client) {
			mu.Lock()
			defer mu.Unlock()
			disconnected = append(disconnected, c.ID)
		})
	})

	dial(t, url)
	dial(t, url)
	waitFor(t, "two clients", func() bool { return hub.Count() == 2 })

	cancel()
	select {
	case <-hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("hub did not stop")
	}

	waitFor(t, "disconnect handlers", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(disconnected) == 2
	})
	if n := hub.Count(); n != 0 {
		t.Fatalf("clients after stop = %d", n)
	}
}

func TestUpgradeAfterStopRejected(t *testing.T) {
	hub, cancel, url := startHub(t, allowAll, nil)
	cancel()
	<-hub.Done()

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("dial after stop should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("response = %+v, want 503", resp)
	}
}
