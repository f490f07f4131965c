package coach

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questforge/internal/config"
	"questforge/internal/storage"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.CoachConfig{Endpoint: srv.URL, APIKey: "sekrit", Model: "test-model", Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)
	return c
}

func TestClientStreams(t *testing.T) {
	var got Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, part := range []string{"data: {\"choices\":[{\"delta\":{\"content\":\"Keep\"}}]}\n", "\n: ping\n\n", "data: {\"choices\":[{\"delta\":{\"content\":\" going\"}}]}\n\n", "data: [DONE]\n\n"} {
			_, _ = w.Write([]byte(part))
			flusher.Flush()
		}
	})

	var deltas []string
	res, err := c.Stream(context.Background(), Request{
		Messages:      []Message{{Role: "user", Content: "How am I doing?"}},
		PlayerContext: PlayerContext{Level: 3, Streak: 4},
		Mode:          ModeReview,
	}, func(s string) { deltas = append(deltas, s) })
	require.NoError(t, err)

	assert.Equal(t, []string{"Keep", " going"}, deltas)
	assert.Equal(t, "Keep going", res.Text)
	assert.True(t, got.Stream)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, ModeReview, got.Mode)
	assert.Equal(t, 4, got.PlayerContext.Streak)
}

func TestClientHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	_, err := c.Stream(context.Background(), Request{Mode: ModeSuggest}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestClientRejectsInvalidRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent")
	})
	_, err := c.Stream(context.Background(), Request{Mode: ModeBreakdown}, nil)
	assert.Error(t, err)
	_, err = c.Stream(context.Background(), Request{Mode: "gossip"}, nil)
	assert.Error(t, err)
}

func TestNewClientDisabled(t *testing.T) {
	_, err := NewClient(config.CoachConfig{}, nil)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestPlayerContextFrom(t *testing.T) {
	p := &storage.Player{Level: 4, XP: 12, Gold: 90, Streak: 2, QuestsCompleted: 9,
		Skills: map[string]int{"fitness": 4, "reading": 2, "chores": 2, "music": 1}}
	pc := PlayerContextFrom(p)
	assert.Equal(t, []string{"fitness", "chores", "reading"}, pc.TopSkills)
	assert.Equal(t, 9, pc.QuestsCompleted)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("remind")
	require.NoError(t, err)
	assert.Equal(t, ModeSmartReminder, m)
	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Mode(""), m)
	_, err = ParseMode("roast")
	assert.Error(t, err)
}
