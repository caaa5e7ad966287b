package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"comicsdb/internal/importer"
)

const noneOfThese = -1

// FormChooser asks with a huh select list. Aborting the form (ctrl+c)
// aborts the import run.
type FormChooser struct {
	accessible bool
}

var _ importer.Chooser = FormChooser{}

func (c FormChooser) Choose(ctx context.Context, prompt string, candidates []importer.Candidate) (int, bool, error) {
	if len(candidates) == 0 {
		return 0, false, nil
	}
	options := make([]huh.Option[int], 0, len(candidates)+1)
	for i, candidate := range candidates {
		label := candidate.Label
		if candidate.Detail != "" {
			label = fmt.Sprintf("%s  [%s]", candidate.Label, candidate.Detail)
		}
		options = append(options, huh.NewOption(label, i))
	}
	options = append(options, huh.NewOption("None of these", noneOfThese))

	choice := noneOfThese
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(prompt).
				Options(options...).
				Value(&choice),
		),
	).WithAccessible(c.accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0, false, fmt.Errorf("selection aborted: %w", err)
		}
		return 0, false, fmt.Errorf("selection form: %w", err)
	}
	if choice == noneOfThese {
		return 0, false, nil
	}
	return choice, true, nil
}

// New returns a FormChooser when in is a terminal and a LineChooser
// otherwise. Without an input it falls back to importer.AutoChooser.
func New(in *os.File, out io.Writer) importer.Chooser {
	if in == nil {
		return importer.AutoChooser{}
	}
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return FormChooser{accessible: os.Getenv("ACCESSIBLE") != ""}
	}
	return NewLineChooser(in, out)
}
