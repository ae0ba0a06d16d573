package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebex_Send(t *testing.T) {
	var received WebexPayload
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "Bearer bot-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-1","roomId":"ROOM_ID_1"}`))
	}))
	defer server.Close()

	webex := NewWebex(server.URL+"/v1/messages", "bot-token")
	err := webex.Send(context.Background(), Message{
		RoomID:   "ROOM_ID_1",
		Text:     "Incident Report:\n    - Category: Facility issue",
		ReportID: "01J",
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "ROOM_ID_1", received.RoomID)
	assert.Equal(t, "Incident Report:\n    - Category: Facility issue", received.Text)
}

func TestWebex_BodyHasOnlyRoomAndText(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
	}))
	defer server.Close()

	require.NoError(t, NewWebex(server.URL, "t").Send(context.Background(), Message{RoomID: "r", Text: "x", ReportID: "id"}))
	assert.Equal(t, map[string]any{"roomId": "r", "text": "x"}, raw)
}

func TestWebex_SendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Could not find a room with provided ID.","trackingId":"ROUTER_123"}`))
	}))
	defer server.Close()

	err := NewWebex(server.URL, "t").Send(context.Background(), Message{RoomID: "bad", Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webex returned 404")
	assert.Contains(t, err.Error(), "Could not find a room")
	assert.Contains(t, err.Error(), "ROUTER_123")
}

func TestWebex_SendErrorPlainBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewWebex(server.URL, "t").Send(context.Background(), Message{RoomID: "r", Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webex returned 502: upstream down")
}

func TestWebex_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewWebex(url, "t").Send(context.Background(), Message{RoomID: "r", Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webex request")
}

func TestWebex_Name(t *testing.T) {
	assert.Equal(t, "webex", NewWebex(DefaultWebexURL, "t").Name())
}

func TestWebex_NoClientTimeout(t *testing.T) {
	assert.Zero(t, NewWebex(DefaultWebexURL, "t").client.Timeout)
}

func TestWebex_LogsResponseAtDebug(t *testing.T) {
	long := `{"id":"msg-1","text":"` + strings.Repeat("x", 2*responseLogLimit) + `"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(long))
	}))
	defer server.Close()

	var buf bytes.Buffer
	webex := NewWebex(server.URL, "t").WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	require.NoError(t, webex.Send(context.Background(), Message{RoomID: "r", Text: "x", ReportID: "01J"}))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "webex response", line["message"])
	assert.Equal(t, "01J", line["report_id"])
	assert.Equal(t, float64(http.StatusOK), line["status"])
	assert.Equal(t, long[:responseLogLimit], line["body"])

	buf.Reset()
	webex.WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))
	require.NoError(t, webex.Send(context.Background(), Message{RoomID: "r", Text: "x"}))
	assert.Empty(t, buf.String())
}
