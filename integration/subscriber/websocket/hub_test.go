package websocket_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/core/dispatch"
	"github.com/dmitrymomot/fanout/core/predicate"
	wshub "github.com/dmitrymomot/fanout/integration/subscriber/websocket"
)

type event struct {
	Kind string `json:"kind"`
	Body string `json:"body"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHubBroadcastsToPeers(t *testing.T) {
	t.Parallel()

	hub := wshub.New[event]()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Peers() == 2 }, time.Second, 5*time.Millisecond)

	hub.Receive(event{Kind: "alert", Body: "disk full"})

	assert.Equal(t, event{Kind: "alert", Body: "disk full"}, readEvent(t, a))
	assert.Equal(t, event{Kind: "alert", Body: "disk full"}, readEvent(t, b))
}

func TestHubDropsDisconnectedPeers(t *testing.T) {
	t.Parallel()

	hub := wshub.New[event]()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Peers() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Peers() == 0 }, time.Second, 5*time.Millisecond)

	assert.NotPanics(t, func() { hub.Receive(event{Kind: "noop"}) })
}

func TestHubClose(t *testing.T) {
	t.Parallel()

	hub := wshub.New[event]()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Peers() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Close())
	assert.Equal(t, 0, hub.Peers())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHubWithEngine(t *testing.T) {
	t.Parallel()

	hub := wshub.New[event]()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Peers() == 1 }, time.Second, 5*time.Millisecond)

	engine, err := dispatch.New[event](2)
	require.NoError(t, err)
	defer engine.Dismiss()

	_, err = engine.Register(hub, predicate.Func[event](func(e event) bool { return e.Kind == "alert" }), "websocket")
	require.NoError(t, err)

	require.NoError(t, engine.Dispatch(event{Kind: "debug", Body: "skipped"}))
	require.NoError(t, engine.Dispatch(event{Kind: "alert", Body: "delivered"}))

	assert.Equal(t, "delivered", readEvent(t, conn).Body)
}
