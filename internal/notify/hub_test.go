package notify

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	hub := NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws/sessions/:id", hub.HandleWebSocket)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sessions/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_DeliversToSession(t *testing.T) {
	hub, srv := setupHub(t)

	mine := dial(t, srv, "s1")
	other := dial(t, srv, "s2")
	require.Eventually(t, func() bool {
		return hub.Subscribers("s1") == 1 && hub.Subscribers("s2") == 1
	}, time.Second, 10*time.Millisecond)

	n := domain.NewNotification(domain.NotifySuccess, "Script generated!")
	n.SessionID = "s1"
	hub.Publish(n)

	var got domain.Notification
	mine.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, mine.ReadJSON(&got))
	assert.Equal(t, "Script generated!", got.Message)
	assert.Equal(t, "check-circle", got.Icon)

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "other session receives nothing")
}

func TestHub_UnsubscribesOnClose(t *testing.T) {
	hub, srv := setupHub(t)

	conn := dial(t, srv, "s1")
	require.Eventually(t, func() bool { return hub.Subscribers("s1") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers("s1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_PublishWithoutSessionIsIgnored(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	hub := NewHub(logger)

	hub.Publish(domain.NewNotification(domain.NotifyInfo, "hello"))
	assert.Len(t, hub.broadcast, 0)
}

func TestHub_PublishDropsWhenFull(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	hub := NewHub(logger)

	n := domain.NewNotification(domain.NotifyInfo, "hello")
	n.SessionID = "s1"
	for i := 0; i < cap(hub.broadcast)+10; i++ {
		hub.Publish(n)
	}
	assert.Len(t, hub.broadcast, cap(hub.broadcast))
}
