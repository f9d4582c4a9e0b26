package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil"
)

type RenderOptions struct {
	TemplateFlags TemplateFlags
	DataFlags     DataFlags
	Strict        bool
}

func NewRenderOptions() *RenderOptions {
	return &RenderOptions{}
}

func NewRenderCmd(o *RenderOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render",
		Aliases: []string{"r"},
		Short:   "Render a card template against note fields",
		RunE:    func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.OutOrStdout()) },
	}
	o.TemplateFlags.Set(cmd)
	o.DataFlags.Set(cmd)
	cmd.Flags().BoolVar(&o.Strict, "strict", false, "Fail on template syntax errors instead of printing {{invalid template}}")
	return cmd
}

func (o *RenderOptions) Run(out io.Writer) error {
	template, err := o.TemplateFlags.Read()
	if err != nil {
		return err
	}

	data, err := o.DataFlags.Load()
	if err != nil {
		return err
	}

	opts := []cardstencil.Option{}
	if o.Strict {
		opts = append(opts, cardstencil.WithStrictMode(true))
	}

	result, err := cardstencil.NewWithOptions(opts...).Render(template, data)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, result)
	return nil
}
