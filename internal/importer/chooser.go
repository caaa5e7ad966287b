package importer

import (
	"context"
	"fmt"
	"sync"

	"comicsdb/internal/services"
)

// Candidate is one option offered to a Chooser.
type Candidate struct {
	Label  string
	Detail string
}

// Chooser resolves an ambiguous match. It returns the index of the chosen
// candidate, or ok=false when none of them is right. Implementations may
// block on user input; an error aborts the import run.
type Chooser interface {
	Choose(ctx context.Context, prompt string, candidates []Candidate) (index int, ok bool, err error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, prompt string, candidates []Candidate) (int, bool, error)

func (f ChooserFunc) Choose(ctx context.Context, prompt string, candidates []Candidate) (int, bool, error) {
	return f(ctx, prompt, candidates)
}

// choose asks the configured chooser and validates its answer.
func (r *Reconciler) choose(ctx context.Context, prompt string, options []Candidate) (int, bool, error) {
	idx, ok, err := r.chooser.Choose(ctx, prompt, options)
	if err != nil {
		return 0, false, services.Wrap(services.ErrExternal, "importer", "choose", prompt, err)
	}
	if ok && (idx < 0 || idx >= len(options)) {
		return 0, false, services.Wrap(services.ErrValidation, "importer", "choose",
			fmt.Sprintf("%s: index %d out of range for %d candidates", prompt, idx, len(options)), nil)
	}
	return idx, ok, nil
}

// AutoChooser accepts a sole candidate and declines anything ambiguous. It
// backs non-interactive imports.
type AutoChooser struct{}

func (AutoChooser) Choose(_ context.Context, _ string, candidates []Candidate) (int, bool, error) {
	if len(candidates) == 1 {
		return 0, true, nil
	}
	return 0, false, nil
}

// ScriptedChooser replays a fixed sequence of answers and records every
// prompt it receives. An answer of -1 declines. Running out of answers is an
// error.
type ScriptedChooser struct {
	mu      sync.Mutex
	answers []int
	Calls   []ChoiceCall
}

// ChoiceCall records one Choose invocation.
type ChoiceCall struct {
	Prompt     string
	Candidates []Candidate
}

// NewScriptedChooser returns a chooser that answers in order.
func NewScriptedChooser(answers ...int) *ScriptedChooser {
	return &ScriptedChooser{answers: answers}
}

func (s *ScriptedChooser) Choose(_ context.Context, prompt string, candidates []Candidate) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, ChoiceCall{Prompt: prompt, Candidates: append([]Candidate(nil), candidates...)})
	if len(s.answers) == 0 {
		return 0, false, fmt.Errorf("scripted chooser: no answer left for %q", prompt)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if answer < 0 {
		return 0, false, nil
	}
	if answer >= len(candidates) {
		return 0, false, fmt.Errorf("scripted chooser: answer %d out of range for %d candidates", answer, len(candidates))
	}
	return answer, true, nil
}
