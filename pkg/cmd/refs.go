package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil"
)

type RefsOptions struct {
	TemplateFlags TemplateFlags
}

func NewRefsOptions() *RefsOptions {
	return &RefsOptions{}
}

func NewRefsCmd(o *RefsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "List the fields a card template reads",
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.OutOrStdout()) },
	}
	o.TemplateFlags.Set(cmd)
	return cmd
}

func (o *RefsOptions) Run(out io.Writer) error {
	template, err := o.TemplateFlags.Read()
	if err != nil {
		return err
	}

	for _, name := range cardstencil.ExtractReferences(template) {
		fmt.Fprintln(out, name)
	}
	return nil
}
