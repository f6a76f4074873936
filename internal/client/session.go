package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/SAP-F-2025/survey-service/internal/feedback"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/render"
)

type SessionConfig struct {
	Client    *Client
	Tokens    TokenSource
	Poll      PollConfig
	Runner    *feedback.Runner
	Surface   feedback.Surface
	Status    *StatusLine
	Survey    *models.Survey
	Questions []models.Question
	Logger    *slog.Logger
}

// Session drives one respondent form from readiness to the post-submit
// feedback sequence. It is owned by the page and torn down with Close.
type Session struct {
	client    *Client
	tokens    TokenSource
	poll      PollConfig
	runner    *feedback.Runner
	surface   feedback.Surface
	status    *StatusLine
	survey    *models.Survey
	questions []models.Question
	logger    *slog.Logger

	mu     sync.Mutex
	token  string
	ready  bool
	cancel context.CancelFunc
}

func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Client == nil || cfg.Surface == nil || cfg.Survey == nil {
		return nil, errors.New("session requires a client, a surface and a survey")
	}
	if cfg.Tokens == nil {
		cfg.Tokens = StaticToken("")
	}
	if cfg.Poll.Attempts == 0 {
		cfg.Poll = DefaultPollConfig()
	}
	if cfg.Status == nil {
		cfg.Status = NewStatusLine(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = feedback.NewRunner(nil, feedback.DefaultTiming(), cfg.Logger)
	}

	return &Session{
		client:    cfg.Client,
		tokens:    cfg.Tokens,
		poll:      cfg.Poll,
		runner:    cfg.Runner,
		surface:   cfg.Surface,
		status:    cfg.Status,
		survey:    cfg.Survey,
		questions: cfg.Questions,
		logger:    cfg.Logger,
	}, nil
}

// Init waits for the access control. A timeout is reported on the status
// line and is not retried.
func (s *Session) Init(ctx context.Context) error {
	token, err := WaitReady(ctx, s.tokens, s.poll)
	if err != nil {
		if errors.Is(err, ErrInitializationTimeout) {
			s.status.Set(MsgInitializationTimeout)
		}
		s.logger.WarnContext(ctx, "Access control not ready", "survey_id", s.survey.ID, "error", err)
		return err
	}

	s.mu.Lock()
	s.token = token
	s.ready = true
	s.mu.Unlock()
	return nil
}

// Form renders the survey with the given answers.
func (s *Session) Form(values url.Values, disabled bool) (*render.FormView, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	return render.RenderForm(s.survey, s.questions, token, &render.RespondentState{Values: values, Disabled: disabled})
}

// SubmitEnabled reports whether the submit control is enabled.
func (s *Session) SubmitEnabled() bool {
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()
	return ready && s.client.SubmitEnabled()
}

// Submit sends the answers and, on success, plays the feedback sequence.
// A submit while another one is in flight, or after a successful one, leaves
// the status line alone.
func (s *Session) Submit(ctx context.Context, values url.Values) (*SubmitResult, error) {
	s.mu.Lock()
	token, ready := s.token, s.ready
	s.mu.Unlock()
	if !ready {
		s.status.Set(MsgInitializationTimeout)
		return nil, ErrInitializationTimeout
	}

	s.status.Clear()
	result, err := s.client.Submit(ctx, token, values)
	if err != nil {
		if !errors.Is(err, ErrSubmitInFlight) && !errors.Is(err, ErrAlreadySubmitted) {
			s.status.Error(err, MsgSubmitFailed)
		}
		return nil, err
	}

	form, err := s.Form(values, true)
	if err != nil {
		return result, fmt.Errorf("failed to render submitted form: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	s.runner.Run(runCtx, feedback.StateFromForm(form), s.surface)
	return result, nil
}

// Reset drops pending feedback steps and restores the form.
func (s *Session) Reset() {
	s.stopSequence()
	s.runner.Reset(s.surface)
	s.status.Clear()
}

// Close cancels pending steps without touching the surface.
func (s *Session) Close() {
	s.stopSequence()
	s.runner.Stop()
}

func (s *Session) stopSequence() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
