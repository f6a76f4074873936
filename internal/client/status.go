package client

import "sync"

// StatusLine is the single visible status element of a page.
type StatusLine struct {
	mu       sync.Mutex
	text     string
	onChange func(string)
}

func NewStatusLine(onChange func(string)) *StatusLine {
	return &StatusLine{onChange: onChange}
}

func (s *StatusLine) Set(text string) {
	s.mu.Lock()
	s.text = text
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(text)
	}
}

// Error shows err as an error status, using fallback for messageless
// application errors.
func (s *StatusLine) Error(err error, fallback string) {
	s.Set("Error: " + UserMessage(err, fallback))
}

func (s *StatusLine) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *StatusLine) Clear() { s.Set("") }
