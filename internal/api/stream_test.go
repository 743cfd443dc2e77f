package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sseHandler writes the given records as "data: <json>" lines and then
// returns, closing the stream.
func sseHandler(t *testing.T, lines []string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n\n", line)
			flusher.Flush()
		}
	})
}

func drain(t *testing.T, s *DebateStream) []DebateEvent {
	t.Helper()
	var events []DebateEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-s.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("stream did not finish in time")
		}
	}
}

func TestDebateStreamHappyPath(t *testing.T) {
	c := newTestClient(t, sseHandler(t, []string{
		`data: {"type":"step_header","message":"Analyzing your profile"}`,
		`data: {"type":"step_info","data":{"message":"Considering Video Editor vs Director"}}`,
		`: comment line, ignored`,
		`data: {this is not json}`,
		`data: {"type":"agent_argument","data":{"agent_name":"Advocate","role":"Video Editor","argument":"Strong visual instincts"}}`,
		`data: {"type":"final_result","data":{"recommended_role":"Video Editor","confidence":87,"reason":"best overall fit","pros":["creative"],"considerations":["long hours"],"debated_roles":["Video Editor","Director"]}}`,
	}))

	s, err := c.OpenDebateStream(context.Background(), "uuid001", "Film/TV")
	require.NoError(t, err)
	defer s.Close()

	events := drain(t, s)
	require.Len(t, events, 3, "malformed and comment lines are skipped, final_result is not forwarded")
	assert.Equal(t, EventStepHeader, events[0].Type)
	assert.Equal(t, EventStepInfo, events[1].Type)
	assert.Equal(t, EventAgentArgument, events[2].Type)
	assert.Equal(t, "Advocate", events[2].Data.AgentName)

	result, err := s.Result()
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Video Editor", result.RecommendedRole)
	assert.Equal(t, 87, result.Confidence)
	assert.Equal(t, []string{"Video Editor", "Director"}, result.DebatedRoles)
}

func TestDebateStreamErrorEvent(t *testing.T) {
	c := newTestClient(t, sseHandler(t, []string{
		`data: {"type":"step_header","message":"Analyzing"}`,
		`data: {"type":"error","message":"model quota exceeded"}`,
	}))

	s, err := c.OpenDebateStream(context.Background(), "uuid001", "Music")
	require.NoError(t, err)
	defer s.Close()

	events := drain(t, s)
	require.Len(t, events, 1)

	result, err := s.Result()
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model quota exceeded")
}

func TestDebateStreamHTTPError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no analysis for user"}`, http.StatusNotFound)
	}))

	_, err := c.OpenDebateStream(context.Background(), "uuid001", "Music")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDebateStreamCloseStopsReadLoop(t *testing.T) {
	started := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, "data: {\"type\":\"step_header\",\"message\":\"starting\"}\n\n")
		flusher.Flush()
		close(started)
		// Hold the stream open until the client disconnects; TestMain's
		// leak check fails if the read loop does not terminate.
		<-r.Context().Done()
	}))

	s, err := c.OpenDebateStream(context.Background(), "uuid001", "Sport")
	require.NoError(t, err)
	<-started

	ev, ok := <-s.Events()
	require.True(t, ok)
	assert.Equal(t, "starting", ev.Message)

	s.Close()
	s.Close() // idempotent

	events := drain(t, s)
	assert.Empty(t, events)

	result, err := s.Result()
	assert.Nil(t, result)
	assert.NoError(t, err, "local close is not a stream failure")
}

func TestDebateStreamParentContextCancel(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	s, err := c.OpenDebateStream(ctx, "uuid001", "Writing & Journalism")
	require.NoError(t, err)
	defer s.Close()

	cancel()
	drain(t, s)

	result, err := s.Result()
	assert.Nil(t, result)
	assert.NoError(t, err)
}
