package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/client"
	"github.com/SAP-F-2025/survey-service/internal/config"
	"github.com/SAP-F-2025/survey-service/internal/feedback"
	"github.com/SAP-F-2025/survey-service/internal/utils"
)

type answerFlags url.Values

func (a answerFlags) String() string { return url.Values(a).Encode() }

// Set parses name=value. Repeating a name adds another value.
func (a answerFlags) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return fmt.Errorf("answer %q must look like q_1=value", raw)
	}
	url.Values(a).Add(name, value)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	answers := answerFlags{}
	baseURL := flag.String("url", "http://localhost:8080", "survey service base URL")
	token := flag.String("token", os.Getenv("SURVEY_TOKEN"), "respondent bearer token")
	surveyID := flag.Uint("survey", 0, "survey to answer")
	mode := flag.String("mode", "submit", "submit or responses")
	flag.Var(answers, "answer", "form answer as name=value, repeatable")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := utils.NewLogger(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(client.Config{BaseURL: *baseURL, Logger: logger})
	tokens := client.StaticToken(*token)

	switch *mode {
	case "responses":
		return showResponses(ctx, c, tokens, cfg.Survey, logger)
	case "submit":
		if *surveyID == 0 {
			return errors.New("-survey is required")
		}
		return submit(ctx, c, tokens, uint(*surveyID), url.Values(answers), cfg.Survey, logger)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}

func showResponses(ctx context.Context, c *client.Client, tokens client.TokenSource, cfg config.SurveyConfig, logger *slog.Logger) error {
	viewer := client.NewResponseViewer(c, tokens, cfg.ReadinessPoll(), logger)
	defer viewer.Close()

	if viewer.Load(ctx) == client.ViewerError {
		return errors.New(viewer.Message())
	}
	fmt.Println(viewer.Content())
	return nil
}

func submit(ctx context.Context, c *client.Client, tokens client.TokenSource, surveyID uint, values url.Values, cfg config.SurveyConfig, logger *slog.Logger) error {
	token, _ := tokens.Token()
	survey, questions, err := c.FetchSurvey(ctx, token, surveyID)
	if err != nil {
		return fmt.Errorf("failed to load survey: %s", client.UserMessage(err, client.MsgSubmitFailed))
	}

	timing := cfg.FeedbackTiming()
	surface := newConsoleSurface()
	session, err := client.NewSession(client.SessionConfig{
		Client:    c,
		Tokens:    tokens,
		Poll:      cfg.ReadinessPoll(),
		Runner:    feedback.NewRunner(nil, timing, logger),
		Surface:   surface,
		Status:    client.NewStatusLine(func(text string) { fmt.Fprintln(os.Stderr, text) }),
		Survey:    survey,
		Questions: questions,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Init(ctx); err != nil {
		return err
	}
	result, err := session.Submit(ctx, values)
	if err != nil {
		return errors.New(client.UserMessage(err, client.MsgSubmitFailed))
	}
	logger.Debug("Submitted", "survey_id", surveyID, "responses", result.Responses)

	wait := max(timing.SuccessDelay, timing.FeedbackFadeDelay) + timing.FadeDuration
	select {
	case <-surface.done:
		fmt.Println(result.Message)
	case <-time.After(wait):
	case <-ctx.Done():
	}
	return nil
}

// consoleSurface prints the feedback sequence instead of animating a page.
type consoleSurface struct {
	done chan struct{}
}

func newConsoleSurface() *consoleSurface {
	return &consoleSurface{done: make(chan struct{})}
}

func (s *consoleSurface) RevealFeedback(targets []feedback.Target) {
	for _, t := range targets {
		fmt.Printf("feedback: question %d, option %d\n", t.QuestionID, t.ItemIndex+1)
	}
}

func (s *consoleSurface) DisableInputs() {}

func (s *consoleSurface) ScrollTo(feedback.Target, int, time.Duration) {}

func (s *consoleSurface) ShowSuccess([]uint, time.Duration) { close(s.done) }

func (s *consoleSurface) FadeFeedback([]feedback.Target, time.Duration) {}

func (s *consoleSurface) Reset() {}
