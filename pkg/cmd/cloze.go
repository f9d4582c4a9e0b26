package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil"
	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil/cloze"
)

type ClozeOptions struct {
	Text    string
	File    string
	Ordinal int
	Mode    string
	List    bool
}

func NewClozeOptions() *ClozeOptions {
	return &ClozeOptions{}
}

func NewClozeCmd(o *ClozeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cloze",
		Short: "Render the cloze deletions of one ordinal in field text",
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.OutOrStdout()) },
	}
	cmd.Flags().StringVar(&o.Text, "text", "", "Field text")
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "File holding the field text (- for stdin)")
	cmd.Flags().IntVar(&o.Ordinal, "ord", 1, "Cloze ordinal")
	cmd.Flags().StringVar(&o.Mode, "mode", "q", "Mode (q, a, actx)")
	cmd.Flags().BoolVar(&o.List, "list", false, "List the ordinals used in the text")
	return cmd
}

func (o *ClozeOptions) Run(out io.Writer) error {
	text, err := o.text()
	if err != nil {
		return err
	}

	if o.List {
		for _, ord := range cloze.Ordinals(text) {
			fmt.Fprintln(out, ord)
		}
		return nil
	}

	if o.Ordinal <= 0 {
		return fmt.Errorf("expected --ord to be a positive integer, got %d", o.Ordinal)
	}

	mode, err := cloze.ParseMode(o.Mode)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cardstencil.New().RenderCloze(text, o.Ordinal, mode))
	return nil
}

func (o *ClozeOptions) text() (string, error) {
	if o.File == "" {
		return o.Text, nil
	}
	if o.Text != "" {
		return "", fmt.Errorf("expected only one of --text and --file")
	}
	bs, err := readFile(o.File)
	if err != nil {
		return "", fmt.Errorf("reading field text: %w", err)
	}
	return strings.TrimSuffix(string(bs), "\n"), nil
}
