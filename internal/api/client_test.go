package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, zap.NewNop())
	t.Cleanup(c.http.CloseIdleConnections)
	// Stream requests share the transport; with none configured they go
	// through the default one, whose idle conns would trip the leak check.
	t.Cleanup(func() {
		if tr, ok := http.DefaultTransport.(*http.Transport); ok {
			tr.CloseIdleConnections()
		}
	})
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestUpload(t *testing.T) {
	t.Run("sends message and files as multipart", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "portfolio.txt")
		require.NoError(t, os.WriteFile(path, []byte("my short film"), 0o644))

		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/upload", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "I love editing videos", r.FormValue("message"))
			require.Len(t, r.MultipartForm.File["files"], 1)
			assert.Equal(t, "portfolio.txt", r.MultipartForm.File["files"][0].Filename)
			writeJSON(t, w, http.StatusOK, UploadResponse{Success: true, S3Keys: []string{"uploads/portfolio.txt"}})
		}))

		out, err := c.Upload(context.Background(), "I love editing videos", []string{path})
		require.NoError(t, err)
		assert.Equal(t, []string{"uploads/portfolio.txt"}, out.S3Keys)
	})

	t.Run("omits empty message field", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "demo.mp3")
		require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))

		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, hasMessage := r.MultipartForm.Value["message"]
			assert.False(t, hasMessage, "blank message must not be sent")
			writeJSON(t, w, http.StatusOK, UploadResponse{Success: true})
		}))

		_, err := c.Upload(context.Background(), "   ", []string{path})
		require.NoError(t, err)
	})

	t.Run("prefers server error message", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "AWS credentials are invalid"})
		}))

		_, err := c.Upload(context.Background(), "hello", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credentials")
	})

	t.Run("missing local file fails before any request", func(t *testing.T) {
		called := false
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		_, err := c.Upload(context.Background(), "hello", []string{"/no/such/file.txt"})
		require.Error(t, err)
		assert.False(t, called)
	})
}

func TestSubmitQuestions(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/submit-questions", r.URL.Path)
		var req SubmitQuestionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "uuid001", req.UserID)
		require.Len(t, req.Questions, 2)
		// JSON numbers decode as float64 through the any field.
		assert.Equal(t, float64(4), req.Questions[0].Response)
		assert.Equal(t, "", req.Questions[1].Response)
		writeJSON(t, w, http.StatusOK, map[string]bool{"success": true})
	}))

	err := c.SubmitQuestions(context.Background(), SubmitQuestionsRequest{
		UserID: "uuid001",
		Questions: []QuestionAnswer{
			{ID: "Q01", Question: "scale", Response: 4},
			{ID: "Q02", Question: "skipped", Response: ""},
		},
	})
	require.NoError(t, err)
}

func TestGetAnalysis(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/get-analysis/uuid001", r.URL.Path)
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success":            true,
				"predicted_category": "Film/TV",
				"analysis":           map[string]string{"user_input_summary": "loves visual storytelling"},
			})
		}))

		a, err := c.GetAnalysis(context.Background(), "uuid001")
		require.NoError(t, err)
		assert.Equal(t, "Film/TV", a.PredictedCategory)
		assert.Equal(t, "loves visual storytelling", a.UserInputSummary)
	})

	t.Run("missing category is an error", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
		}))

		_, err := c.GetAnalysis(context.Background(), "uuid001")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "category not found")
	})
}

func TestFindBestRole(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/find-best-role/uuid001", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Film/TV", req["predicted_category"])
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success":          true,
			"recommended_role": "Video Editor",
			"confidence":       87,
			"reason":           "strong visual instincts",
			"pros":             []string{"creative", "detail oriented"},
			"considerations":   []string{"long hours"},
		})
	}))

	res, err := c.FindBestRole(context.Background(), "uuid001", "Film/TV")
	require.NoError(t, err)
	assert.Equal(t, "Video Editor", res.RecommendedRole)
	assert.Equal(t, 87, res.Confidence)
	assert.Len(t, res.Pros, 2)
}

func TestChatWithMentor(t *testing.T) {
	t.Run("returns reply", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/chat-with-mentor", r.URL.Path)
			var req ChatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Video Editor", req.JobTitle)
			assert.NotEmpty(t, req.SessionID)
			writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "reply": "Start with short projects."})
		}))

		reply, err := c.ChatWithMentor(context.Background(), ChatRequest{
			JobTitle:  "Video Editor",
			Message:   "How do I start?",
			SessionID: "session-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "Start with short projects.", reply)
	})

	t.Run("backend failure", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"success": false})
		}))

		_, err := c.ChatWithMentor(context.Background(), ChatRequest{Message: "hi"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get response")
	})
}

func TestPeerMentors(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/peer-mentors/Music", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"mentors": []PeerMentor{{Name: "Sam", Role: "Sound Engineer"}},
		})
	}))

	mentors, err := c.PeerMentors(context.Background(), "Music", 3)
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "Sam", mentors[0].Name)
}

func TestHandleResponseNonJSONError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))

	err := c.SubmitQuestions(context.Background(), SubmitQuestionsRequest{UserID: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestRemediation(t *testing.T) {
	t.Parallel()

	t.Run("connection failure names the backend", func(t *testing.T) {
		// A closed server yields a *url.Error from the transport.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		c := NewClient(srv.URL, zap.NewNop())
		srv.Close()

		_, err := c.Health(context.Background())
		require.Error(t, err)
		assert.Contains(t, Remediation(err), "make sure it is running")
	})

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"credentials", errors.New("The AWS credentials are invalid"), ".env file"},
		{"access denied", errors.New("AccessDenied: not authorized"), "IAM permissions"},
		{"bucket", errors.New("the specified bucket does not exist"), "S3 bucket"},
		{"network", errors.New("a network error occurred"), "port 3001"},
		{"passthrough", errors.New("quota exceeded for model"), "quota exceeded for model"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, Remediation(tc.err), tc.want)
		})
	}

	assert.Empty(t, Remediation(nil))
}
