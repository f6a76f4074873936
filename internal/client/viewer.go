package client

import (
	"context"
	"html/template"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/survey-service/internal/responses"
)

type ViewerState string

const (
	ViewerIdle    ViewerState = "idle"
	ViewerLoading ViewerState = "loading"
	ViewerContent ViewerState = "content"
	ViewerError   ViewerState = "error"
)

// ResponseViewer loads and presents the respondent's own answers. One
// instance belongs to one page and is released with Close.
type ResponseViewer struct {
	client    *Client
	tokens    TokenSource
	poll      PollConfig
	presenter *responses.Presenter
	logger    *slog.Logger

	mu      sync.Mutex
	state   ViewerState
	content template.HTML
	message string
	cancel  context.CancelFunc
}

func NewResponseViewer(client *Client, tokens TokenSource, poll PollConfig, logger *slog.Logger) *ResponseViewer {
	if poll.Attempts == 0 {
		poll = DefaultPollConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseViewer{
		client:    client,
		tokens:    tokens,
		poll:      poll,
		presenter: responses.NewPresenter(),
		logger:    logger,
		state:     ViewerIdle,
	}
}

// Load waits for readiness, fetches the responses and renders them. Every
// failure ends in ViewerError with a user-facing message.
func (v *ResponseViewer) Load(ctx context.Context) ViewerState {
	ctx, cancel := context.WithCancel(ctx)
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.cancel = cancel
	v.state = ViewerLoading
	v.content = ""
	v.message = ""
	v.mu.Unlock()

	content, err := v.load(ctx)
	if err != nil {
		v.logger.WarnContext(ctx, "Failed to load responses", "error", err)
		return v.fail(err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = ViewerContent
	v.content = content
	return v.state
}

func (v *ResponseViewer) load(ctx context.Context) (template.HTML, error) {
	token, err := WaitReady(ctx, v.tokens, v.poll)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNotAuthenticated
	}

	records, err := v.client.FetchResponses(ctx, token)
	if err != nil {
		return "", err
	}
	return v.presenter.Present(records)
}

func (v *ResponseViewer) fail(err error) ViewerState {
	message := UserMessage(err, MsgLoadFailed)
	markup, renderErr := v.presenter.Error(message)
	if renderErr != nil {
		markup = ""
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = ViewerError
	v.message = message
	v.content = markup
	return v.state
}

func (v *ResponseViewer) State() ViewerState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Content is the rendered markup for the current state.
func (v *ResponseViewer) Content() template.HTML {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.content
}

// Message is the error text shown in ViewerError.
func (v *ResponseViewer) Message() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.message
}

func (v *ResponseViewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}
