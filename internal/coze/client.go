// Package coze is a minimal client for the Coze workflow run API.
//
// A call makes exactly one attempt: no retries, no rate limiting, and no
// timeout beyond whatever the injected *http.Client carries. The outcome is
// reported as a Result rather than an error so callers can tell an upstream
// API error apart from a transport failure without inspecting error types.
package coze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Outcome classifies a workflow call.
type Outcome int

const (
	// OutcomeSuccess means the API answered with a 2xx status.
	OutcomeSuccess Outcome = iota
	// OutcomeAPIError means the API answered with a non-2xx status.
	OutcomeAPIError
	// OutcomeTransportError means no response was received.
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeAPIError:
		return "api_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// RunRequest is the body of a workflow run call.
type RunRequest struct {
	WorkflowID string         `json:"workflow_id"`
	Parameters map[string]any `json:"parameters"`
	BotID      string         `json:"bot_id,omitempty"`
	AppID      string         `json:"app_id,omitempty"`
}

// Result is the outcome of one workflow call.
type Result struct {
	Outcome Outcome
	// StatusCode is zero for transport errors.
	StatusCode int
	// Body is the raw response body, if any was read.
	Body []byte
	// Message is the upstream msg (or fallback text) for failed calls.
	Message string
	// DebugURL is the response's debug_url, if present.
	DebugURL string
}

// Text renders a successful result: the indented response body followed by
// the debug URL line.
func (r *Result) Text() string {
	debugURL := r.DebugURL
	if debugURL == "" {
		debugURL = "Not available"
	}
	return fmt.Sprintf("Workflow execution result:\n%s\n\nDebug URL: %s", prettyJSON(r.Body), debugURL)
}

// ErrorMessage renders a failed result.
func (r *Result) ErrorMessage() string {
	msg := "Coze API error: " + r.Message
	if r.DebugURL != "" {
		msg += "\nDebug URL: " + r.DebugURL
	}
	return msg
}

// Client calls the workflow run endpoint with a bearer token.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *log.Logger
}

// New returns a client for endpoint. If httpClient is nil, http.DefaultClient
// is used.
func New(endpoint, token string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{endpoint: endpoint, token: token, http: httpClient, logger: logger}
}

// Run posts req to the workflow endpoint. The returned error is reserved for
// failures that happen before anything is sent (encoding or building the
// request); every HTTP-level outcome is reported through Result.
func (c *Client) Run(ctx context.Context, req RunRequest) (*Result, error) {
	if req.Parameters == nil {
		req.Parameters = map[string]any{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding workflow request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating workflow request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	logger := c.logger.With("call_id", uuid.NewString(), "workflow_id", req.WorkflowID)
	logger.Debug("Running workflow")

	result := c.do(httpReq)
	logger.Debug("Workflow call finished",
		"outcome", result.Outcome,
		"status", result.StatusCode,
	)
	return result, nil
}

func (c *Client) do(req *http.Request) *Result {
	resp, err := c.http.Do(req)
	if err != nil {
		return &Result{Outcome: OutcomeTransportError, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Result{
			Outcome:    OutcomeTransportError,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("reading response: %v", err),
		}
	}

	fields := decodeFields(body)
	result := &Result{
		StatusCode: resp.StatusCode,
		Body:       body,
		DebugURL:   fields.DebugURL,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Outcome = OutcomeAPIError
		result.Message = fields.Msg
		if result.Message == "" {
			result.Message = fmt.Sprintf("request failed with status code %d", resp.StatusCode)
		}
		return result
	}

	result.Outcome = OutcomeSuccess
	return result
}

// responseFields are the parts of a Coze response body the proxy reads.
type responseFields struct {
	Msg      string
	DebugURL string
}

// decodeFields extracts msg and debug_url when the body is a JSON object and
// they are strings. Anything else yields empty fields.
func decodeFields(body []byte) responseFields {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return responseFields{}
	}
	msg, _ := m["msg"].(string)
	debugURL, _ := m["debug_url"].(string)
	return responseFields{Msg: msg, DebugURL: debugURL}
}

// prettyJSON indents body with two spaces. A body that is not JSON is
// rendered as a JSON string.
func prettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err == nil {
		return buf.String()
	}
	quoted, _ := json.Marshal(string(body))
	return string(quoted)
}
