// Package api is the HTTP client for the CareerSpark analysis backend.
// The backend owns all intelligence (scoring, role debate, mentor chat);
// this package only speaks its JSON/multipart contracts and normalizes
// failures into messages a screen can show.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the CareerSpark backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a Client for the given base URL ("http://host:port").
// The default timeout covers every call except the debate stream, which
// manages its own lifetime via context.
func NewClient(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
}

// Upload posts the free-text message and the given files as one multipart
// request. Validation (non-empty message or at least one file) is the
// caller's job; the backend enforces it too.
func (c *Client) Upload(ctx context.Context, message string, filePaths []string) (*UploadResponse, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if strings.TrimSpace(message) != "" {
		if err := w.WriteField("message", message); err != nil {
			return nil, fmt.Errorf("write message field: %w", err)
		}
	}
	for _, path := range filePaths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		part, err := w.CreateFormFile("files", filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		f.Close()
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	c.log.Debug("uploading", zap.Int("files", len(filePaths)), zap.Bool("has_message", message != ""))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out UploadResponse
	if err := handleResponse(resp, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, backendError(out.Error, "upload failed")
	}
	return &out, nil
}

// SubmitQuestions posts the full quiz payload in one batch.
func (c *Client) SubmitQuestions(ctx context.Context, payload SubmitQuestionsRequest) error {
	var out submitQuestionsResponse
	if err := c.postJSON(ctx, "/api/submit-questions", payload, &out); err != nil {
		return err
	}
	if !out.Success {
		return backendError(out.Error, "failed to submit questions")
	}
	return nil
}

// GetAnalysis fetches the predicted category and input summary for a user.
func (c *Client) GetAnalysis(ctx context.Context, userID string) (*Analysis, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/get-analysis/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out analysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	if !out.Success || out.PredictedCategory == "" {
		return nil, backendError(out.Error, "category not found")
	}
	return &Analysis{
		PredictedCategory: out.PredictedCategory,
		UserInputSummary:  out.Analysis.UserInputSummary,
	}, nil
}

// FindBestRole is the single-shot (non-streaming) role recommendation.
func (c *Client) FindBestRole(ctx context.Context, userID, predictedCategory string) (*RoleResult, error) {
	body := map[string]string{"predicted_category": predictedCategory}
	var out findBestRoleResponse
	if err := c.postJSON(ctx, "/api/find-best-role/"+url.PathEscape(userID), body, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, backendError(out.Error, "failed to find best role")
	}
	result := out.RoleResult
	return &result, nil
}

// ChatWithMentor sends one chat turn and returns the mentor's reply.
func (c *Client) ChatWithMentor(ctx context.Context, req ChatRequest) (string, error) {
	var out chatResponse
	if err := c.postJSON(ctx, "/api/chat-with-mentor", req, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", backendError(out.Error, "failed to get response")
	}
	return out.Reply, nil
}

// PeerMentors fetches mentor recommendations for a category. limit <= 0
// uses the backend default.
func (c *Client) PeerMentors(ctx context.Context, category string, limit int) ([]PeerMentor, error) {
	u := c.baseURL + "/api/peer-mentors/" + url.PathEscape(category)
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out peerMentorsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode peer mentors response: %w", err)
	}
	if !out.Success {
		return nil, backendError(out.Error, "no peer mentors found")
	}
	return out.Mentors, nil
}

// Health pings the backend.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return &out, nil
}

// postJSON issues a JSON POST and decodes the JSON response, preferring
// the server-provided error message on non-2xx statuses.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return handleResponse(resp, out)
}

// handleResponse decodes a JSON body, preferring the server-provided
// error message on non-2xx statuses.
func handleResponse(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("backend returned %s", resp.Status)
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return backendError(e.Error, resp.Status)
		}
		return fmt.Errorf("backend returned %s", resp.Status)
	}
	return nil
}

func backendError(msg, fallback string) error {
	if strings.TrimSpace(msg) != "" {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("%s", fallback)
}
