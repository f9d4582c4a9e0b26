package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil"
)

type VersionOptions struct{}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.OutOrStdout()) },
	}
	return cmd
}

func (o *VersionOptions) Run(out io.Writer) error {
	fmt.Fprintf(out, "cardstencil version %s\n", cardstencil.Version)

	return nil
}
