package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

const (
	ActionSubmitSurvey = "submit_survey"
	ActionGetResponses = "get_survey_responses"
)

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// SubmitResult is the success payload of a submission.
type SubmitResult struct {
	Message   string `json:"message"`
	Responses int    `json:"responses"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type messageData struct {
	Message string `json:"message"`
}

const (
	submitIdle int32 = iota
	submitInFlight
	submitDone
)

// Client talks to the survey endpoints on behalf of one respondent page.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	submitState atomic.Int32
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// SubmitEnabled reports whether the submit control should be enabled.
func (c *Client) SubmitEnabled() bool {
	return c.submitState.Load() == submitIdle
}

// Nonce fetches an anti-forgery nonce for action, bound to token's respondent.
func (c *Client) Nonce(ctx context.Context, action, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/survey/nonce?action="+url.QueryEscape(action), nil)
	if err != nil {
		return "", &TransportError{Op: "nonce", Err: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	env, err := c.do(req, "nonce")
	if err != nil {
		return "", err
	}
	var data struct {
		Nonce string `json:"nonce"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Nonce == "" {
		return "", ErrMalformedResponse
	}
	return data.Nonce, nil
}

// Submit posts the form. A call made while another submission is in flight
// returns ErrSubmitInFlight without sending anything. After a success every
// further call returns ErrAlreadySubmitted; a failure re-enables submission.
func (c *Client) Submit(ctx context.Context, token string, form url.Values) (*SubmitResult, error) {
	if !c.submitState.CompareAndSwap(submitIdle, submitInFlight) {
		if c.submitState.Load() == submitDone {
			return nil, ErrAlreadySubmitted
		}
		return nil, ErrSubmitInFlight
	}

	result, err := c.submit(ctx, token, form)
	if err != nil {
		c.submitState.Store(submitIdle)
		c.logger.WarnContext(ctx, "Survey submission failed", "error", err)
		return nil, err
	}

	c.submitState.Store(submitDone)
	c.logger.InfoContext(ctx, "Survey submitted", "responses", result.Responses)
	return result, nil
}

func (c *Client) submit(ctx context.Context, token string, form url.Values) (*SubmitResult, error) {
	nonce, err := c.Nonce(ctx, ActionSubmitSurvey, token)
	if err != nil {
		return nil, err
	}

	payload := url.Values{}
	for k, v := range form {
		payload[k] = append([]string(nil), v...)
	}
	payload.Set("action", ActionSubmitSurvey)
	payload.Set("token", token)
	payload.Set("nonce", nonce)

	env, err := c.postForm(ctx, "/api/v1/survey/submit", "submit", payload)
	if err != nil {
		return nil, err
	}

	var result SubmitResult
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &result); err != nil {
			return nil, ErrMalformedResponse
		}
	}
	return &result, nil
}

// FetchSurvey loads a survey and its questions in order.
func (c *Client) FetchSurvey(ctx context.Context, token string, surveyID uint) (*models.Survey, []models.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/v1/surveys/%d", c.baseURL, surveyID), nil)
	if err != nil {
		return nil, nil, &TransportError{Op: "survey", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	env, err := c.do(req, "survey")
	if err != nil {
		return nil, nil, err
	}
	var data struct {
		Survey    *models.Survey    `json:"survey"`
		Questions []models.Question `json:"questions"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Survey == nil {
		return nil, nil, ErrMalformedResponse
	}
	return data.Survey, data.Questions, nil
}

// FetchResponses lists the respondent's submitted answers.
func (c *Client) FetchResponses(ctx context.Context, token string) ([]models.ResponseRecord, error) {
	nonce, err := c.Nonce(ctx, ActionGetResponses, token)
	if err != nil {
		return nil, err
	}

	payload := url.Values{
		"action": {ActionGetResponses},
		"token":  {token},
		"nonce":  {nonce},
	}
	env, err := c.postForm(ctx, "/api/v1/survey/responses", "responses", payload)
	if err != nil {
		return nil, err
	}

	data := strings.TrimSpace(string(env.Data))
	if !strings.HasPrefix(data, "[") {
		return nil, ErrMalformedResponse
	}
	var records []models.ResponseRecord
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, ErrMalformedResponse
	}
	return records, nil
}

func (c *Client) postForm(ctx context.Context, path, op string, payload url.Values) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(payload.Encode()))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, op)
}

// do sends req and unwraps the {success, data} envelope.
func (c *Client) do(req *http.Request, op string) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Status: resp.StatusCode, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("invalid body: %w", err)}
	}

	if !env.Success {
		var data messageData
		_ = json.Unmarshal(env.Data, &data)
		return nil, &ApplicationError{Message: data.Message}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &TransportError{Op: op, Status: resp.StatusCode, Err: errors.New("success envelope with error status")}
	}
	return &env, nil
}
