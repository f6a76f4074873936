package feedback

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Surface is the form the sequence is played on.
type Surface interface {
	RevealFeedback(targets []Target)
	DisableInputs()
	ScrollTo(target Target, offset int, duration time.Duration)
	ShowSuccess(hide []uint, fade time.Duration)
	FadeFeedback(targets []Target, fade time.Duration)
	Reset()
}

type Timer interface {
	Stop() bool
}

type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock schedules on real time.
func SystemClock() Clock { return systemClock{} }

// Runner plays planned steps on a Surface. Surface calls are serialized.
type Runner struct {
	clock  Clock
	timing Timing
	logger *slog.Logger

	mu     sync.Mutex
	timers []Timer
}

func NewRunner(clock Clock, timing Timing, logger *slog.Logger) *Runner {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{clock: clock, timing: timing, logger: logger}
}

// Run executes the immediate steps and schedules the delayed ones.
// Cancelling ctx drops steps that have not fired yet.
func (r *Runner) Run(ctx context.Context, state FormState, s Surface) []Step {
	steps := Plan(state, r.timing)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, step := range steps {
		if step.At <= 0 {
			r.apply(step, s)
			continue
		}
		step := step
		t := r.clock.AfterFunc(step.At, func() {
			if ctx.Err() != nil {
				return
			}
			r.mu.Lock()
			defer r.mu.Unlock()
			r.apply(step, s)
		})
		r.timers = append(r.timers, t)
	}

	r.logger.Debug("Submission feedback sequence started",
		"steps", len(steps),
		"success_delay", r.timing.SuccessDelay,
		"fade_delay", r.timing.FeedbackFadeDelay)

	return steps
}

// Stop cancels every pending step.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// Reset cancels pending steps and restores the form.
func (r *Runner) Reset(s Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	s.Reset()
}

func (r *Runner) stopLocked() {
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}

func (r *Runner) apply(step Step, s Surface) {
	switch step.Kind {
	case StepRevealFeedback:
		s.RevealFeedback(step.Targets)
	case StepDisableInputs:
		s.DisableInputs()
	case StepScrollTo:
		if len(step.Targets) > 0 {
			s.ScrollTo(step.Targets[0], r.timing.ScrollOffset, r.timing.ScrollDuration)
		}
	case StepShowSuccess:
		s.ShowSuccess(step.Hide, r.timing.FadeDuration)
	case StepFadeFeedback:
		s.FadeFeedback(step.Targets, r.timing.FadeDuration)
	}
}
