package feedback

import (
	"time"

	"github.com/SAP-F-2025/survey-service/internal/render"
)

// Timing holds the pacing of the post-submission sequence.
type Timing struct {
	// SuccessDelay runs from the submission acknowledgment to the success message.
	SuccessDelay time.Duration
	// FeedbackFadeDelay runs from the feedback reveal to the feedback fade-out.
	FeedbackFadeDelay time.Duration
	FadeDuration      time.Duration
	ScrollDuration    time.Duration
	ScrollOffset      int
}

const (
	DefaultSuccessDelay      = 2000 * time.Millisecond
	DefaultFeedbackFadeDelay = 1500 * time.Millisecond
	DefaultFadeDuration      = 300 * time.Millisecond
	DefaultScrollDuration    = 500 * time.Millisecond
	DefaultScrollOffset      = 100
)

func DefaultTiming() Timing {
	return Timing{
		SuccessDelay:      DefaultSuccessDelay,
		FeedbackFadeDelay: DefaultFeedbackFadeDelay,
		FadeDuration:      DefaultFadeDuration,
		ScrollDuration:    DefaultScrollDuration,
		ScrollOffset:      DefaultScrollOffset,
	}
}

type StepKind string

const (
	StepRevealFeedback StepKind = "reveal_feedback"
	StepDisableInputs  StepKind = "disable_inputs"
	StepScrollTo       StepKind = "scroll_to"
	StepShowSuccess    StepKind = "show_success"
	StepFadeFeedback   StepKind = "fade_feedback"
)

// Target identifies one matching row feedback block.
type Target struct {
	QuestionID uint `json:"question_id"`
	ItemIndex  int  `json:"item_index"`
}

// Step is one scheduled action. At is measured from the acknowledgment,
// which is also when feedback is revealed.
type Step struct {
	At      time.Duration `json:"at"`
	Kind    StepKind      `json:"kind"`
	Targets []Target      `json:"targets,omitempty"`
	// Hide lists the question blocks replaced by the success message.
	Hide []uint `json:"hide,omitempty"`
}

type Row struct {
	ItemIndex   int
	Selected    bool
	HasFeedback bool
}

type Block struct {
	QuestionID uint
	Rows       []Row
}

// FormState is what the protocol needs to know about a submitted form.
type FormState struct {
	Blocks []Block
}

// StateFromForm derives the form state from a form rendered with the
// submitted values.
func StateFromForm(form *render.FormView) FormState {
	var state FormState
	for _, q := range form.Questions {
		b := Block{QuestionID: q.QuestionID}
		for _, row := range q.Matching {
			b.Rows = append(b.Rows, Row{
				ItemIndex:   row.Index,
				Selected:    row.Selected(),
				HasFeedback: row.HasFeedback(),
			})
		}
		state.Blocks = append(state.Blocks, b)
	}
	return state
}

// Plan lists the steps of the sequence in protocol order.
func Plan(state FormState, timing Timing) []Step {
	var revealed []Target
	var hide []uint
	for _, b := range state.Blocks {
		visible := false
		for _, r := range b.Rows {
			if r.Selected && r.HasFeedback {
				revealed = append(revealed, Target{QuestionID: b.QuestionID, ItemIndex: r.ItemIndex})
				visible = true
			}
		}
		if !visible {
			hide = append(hide, b.QuestionID)
		}
	}

	steps := []Step{
		{At: 0, Kind: StepRevealFeedback, Targets: revealed},
		{At: 0, Kind: StepDisableInputs},
	}
	if len(revealed) > 0 {
		steps = append(steps, Step{At: 0, Kind: StepScrollTo, Targets: revealed[:1]})
	}
	steps = append(steps, Step{At: timing.SuccessDelay, Kind: StepShowSuccess, Hide: hide})
	if len(revealed) > 0 {
		steps = append(steps, Step{At: timing.FeedbackFadeDelay, Kind: StepFadeFeedback, Targets: revealed})
	}
	return steps
}
