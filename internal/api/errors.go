package api

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
)

// Remediation maps an upload failure to the human-readable guidance the
// upload screen shows. Classification mirrors the backend's known failure
// modes: connectivity, AWS credentials, IAM permissions, missing bucket.
// Anything else surfaces the server-provided message untouched.
func Remediation(err error) string {
	if err == nil {
		return ""
	}

	if isConnectionError(err) {
		return "Cannot connect to the backend server. Please make sure it is running:\n\n  python3 backend/server.py"
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "credentials"):
		return "AWS credentials are invalid. Please check the backend's .env file."
	case strings.Contains(lower, "access denied") || strings.Contains(msg, "AccessDenied"):
		return "Access denied. Please check the backend's AWS IAM permissions."
	case strings.Contains(lower, "bucket"):
		return "S3 bucket not found or not accessible."
	case strings.Contains(lower, "network"):
		return "Network error. Please make sure the backend server is running on port 3001."
	}
	return msg
}

// isConnectionError reports whether err is a transport-level failure
// (refused connection, DNS, timeout) rather than a backend response.
func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "connection refused") || strings.Contains(lower, "econnrefused")
}
