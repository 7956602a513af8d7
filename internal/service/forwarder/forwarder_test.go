package forwarder

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TgBridge/entity"
	"TgBridge/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(url string, timeoutSeconds int) *config.Config {
	conf := &config.Config{}
	conf.Webhook.Url = url
	conf.Webhook.TimeoutSeconds = timeoutSeconds
	return conf
}

func testRecord() *entity.Record {
	text := "hello"
	chatID := int64(100)
	senderID := int64(42)
	return &entity.Record{
		MessageID: 10,
		Text:      &text,
		Date:      "2024-05-01T12:00:00Z",
		Chat:      entity.ChatRecord{ID: &chatID},
		Sender:    entity.SenderRecord{ID: &senderID},
	}
}

func TestDeliver_DisabledMakesNoCalls(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	// destination deliberately unset, the server above must stay silent
	f := New(testConfig("", 8), testLogger())
	assert.False(t, f.Enabled())

	for i := 0; i < 100; i++ {
		err := f.Deliver(context.Background(), testRecord())
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(0), calls.Load())
}

func TestDeliver_PostsPayload(t *testing.T) {
	var gotBody map[string]any
	var gotDeliveryID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotDeliveryID = r.Header.Get("X-Delivery-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := New(testConfig(srv.URL, 8), testLogger())
	assert.True(t, f.Enabled())

	err := f.Deliver(context.Background(), testRecord())
	require.NoError(t, err)

	assert.NotEmpty(t, gotDeliveryID)
	assert.Equal(t, float64(10), gotBody["message_id"])
	assert.Equal(t, "hello", gotBody["text"])
	assert.Equal(t, "2024-05-01T12:00:00Z", gotBody["date"])

	chat, ok := gotBody["chat"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(100), chat["id"])
	assert.Nil(t, chat["title"])

	sender, ok := gotBody["sender"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), sender["id"])
	assert.Nil(t, sender["username"])
	assert.Nil(t, sender["photo"])
}

func TestDeliver_NullTextPreserved(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := testRecord()
	rec.Text = nil

	f := New(testConfig(srv.URL, 8), testLogger())
	require.NoError(t, f.Deliver(context.Background(), rec))
	assert.Contains(t, string(raw), `"text":null`)
}

func TestDeliver_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := New(testConfig(srv.URL, 8), testLogger())
	err := f.Deliver(context.Background(), testRecord())
	assert.Error(t, err)
}

func TestDeliver_TimeoutIsBounded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	f := New(testConfig(srv.URL, 1), testLogger())

	start := time.Now()
	err := f.Deliver(context.Background(), testRecord())
	elapsed := time.Since(start)

	assert.Error(t, err)
	assert.Less(t, elapsed, 3*time.Second)
}
