package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DebateStream is a handle on a live role-debate stream. Events arrive on
// Events(); when that channel closes, Result() reports how the stream
// ended. Close() cancels the underlying request and guarantees the read
// loop terminates, so navigating away never leaks the connection.
type DebateStream struct {
	events chan DebateEvent
	cancel context.CancelFunc
	body   io.ReadCloser

	mu     sync.Mutex
	result *RoleResult
	err    error

	closeOnce sync.Once
}

// OpenDebateStream starts the streamed role-matching debate. The returned
// stream is live; the caller must drain Events() and call Close().
func (c *Client) OpenDebateStream(ctx context.Context, userID, predictedCategory string) (*DebateStream, error) {
	ctx, cancel := context.WithCancel(ctx)

	payload, err := json.Marshal(map[string]string{"predicted_category": predictedCategory})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/find-best-role-stream/"+url.PathEscape(userID), strings.NewReader(string(payload)))
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	// No client timeout here: debates run until the final_result event.
	httpClient := &http.Client{Transport: c.http.Transport}
	resp, err := httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("failed to start debate stream: %s", resp.Status)
	}

	s := &DebateStream{
		events: make(chan DebateEvent),
		cancel: cancel,
		body:   resp.Body,
	}
	go s.readLoop(ctx, c.log)
	return s, nil
}

// Events returns the ordered, append-only event sequence. The channel is
// closed when the stream ends for any reason.
func (s *DebateStream) Events() <-chan DebateEvent {
	return s.events
}

// Result reports the stream outcome. It is meaningful only after Events()
// has been closed: a populated RoleResult on final_result, an error if the
// backend emitted an error event or the transport failed, or (nil, nil)
// if the stream was closed locally before completion.
func (s *DebateStream) Result() (*RoleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.err
}

// Close cancels the stream. Safe to call multiple times and concurrently
// with the read loop.
func (s *DebateStream) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.body.Close()
	})
}

func (s *DebateStream) readLoop(ctx context.Context, log *zap.Logger) {
	defer close(s.events)
	defer s.Close()

	scanner := bufio.NewScanner(s.body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var ev DebateEvent
		if err := json.Unmarshal([]byte(line[len("data: "):]), &ev); err != nil {
			// Forgiving parser: a malformed line must not kill the debate.
			log.Warn("skipping malformed stream line", zap.Error(err))
			continue
		}

		switch ev.Type {
		case EventError:
			msg := ev.Message
			if msg == "" {
				msg = ev.Data.Message
			}
			s.setOutcome(nil, backendError(msg, "debate stream failed"))
			return
		case EventFinalResult:
			s.setOutcome(&RoleResult{
				RecommendedRole: ev.Data.RecommendedRole,
				Confidence:      ev.Data.Confidence,
				Reason:          ev.Data.Reason,
				Pros:            ev.Data.Pros,
				Considerations:  ev.Data.Considerations,
				DebatedRoles:    ev.Data.DebatedRoles,
			}, nil)
			return
		default:
			select {
			case s.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		s.setOutcome(nil, fmt.Errorf("debate stream interrupted: %w", err))
	}
}

func (s *DebateStream) setOutcome(result *RoleResult, err error) {
	s.mu.Lock()
	s.result = result
	s.err = err
	s.mu.Unlock()
}
