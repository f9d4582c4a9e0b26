package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil"
)

type ValidateOptions struct {
	TemplateFlags TemplateFlags
}

func NewValidateOptions() *ValidateOptions {
	return &ValidateOptions{}
}

func NewValidateCmd(o *ValidateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a card template without rendering it",
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.OutOrStdout()) },
	}
	o.TemplateFlags.Set(cmd)
	return cmd
}

func (o *ValidateOptions) Run(out io.Writer) error {
	template, err := o.TemplateFlags.Read()
	if err != nil {
		return err
	}

	result := cardstencil.Validate(template)
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "%s %s %s: %s\n", issue.Severity, issue.Code, issue.Tag, issue.Message)
	}

	if result.Valid {
		fmt.Fprintln(out, "Succeeded")
	}
	return result.Err()
}
