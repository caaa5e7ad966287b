package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"comicsdb/internal/importer"
)

// LineChooser prints candidates as a numbered table and reads the selection
// from a line of input. 0 or an empty line declines; running out of input
// declines as well.
type LineChooser struct {
	in  *bufio.Reader
	out io.Writer
}

var _ importer.Chooser = (*LineChooser)(nil)

// NewLineChooser reads answers from in and writes prompts to out.
func NewLineChooser(in io.Reader, out io.Writer) *LineChooser {
	return &LineChooser{in: bufio.NewReader(in), out: out}
}

func (c *LineChooser) Choose(ctx context.Context, prompt string, candidates []importer.Candidate) (int, bool, error) {
	if len(candidates) == 0 {
		return 0, false, nil
	}
	fmt.Fprintf(c.out, "\n%s\n%s\n", prompt, renderCandidates(candidates))
	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		fmt.Fprintf(c.out, "Choose 1-%d (0 or blank for none): ", len(candidates))
		line, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, false, fmt.Errorf("read selection: %w", err)
		}
		answer := strings.TrimSpace(line)
		if answer == "" || answer == "0" {
			return 0, false, nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(candidates) {
			return n - 1, true, nil
		}
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		fmt.Fprintf(c.out, "%q is not a valid choice.\n", answer)
	}
}

func renderCandidates(candidates []importer.Candidate) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Name", "Slug"})
	for i, c := range candidates {
		tw.AppendRow(table.Row{i + 1, c.Label, c.Detail})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft}})
	return tw.Render()
}
