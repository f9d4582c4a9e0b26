package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-cardstencil/pkg/cardstencil"
)

type CardstencilOptions struct {
	ConfigPath string
	LogLevel   string
}

func NewDefaultCardstencilOptions() *CardstencilOptions {
	return &CardstencilOptions{}
}

func NewDefaultCardstencilCmd() *cobra.Command {
	return NewCardstencilCmd(NewDefaultCardstencilOptions())
}

func NewCardstencilCmd(o *CardstencilOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cardstencil",
		Version: cardstencil.Version,
		Short:   "cardstencil renders flashcard templates",
		Long: `cardstencil renders flashcard templates.

Templates use {{Field}} tags, {{#Field}}...{{/Field}} sections and cloze
deletions such as {{cq:1:Text}} over fields written {{c1::answer::hint}}.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return o.Apply() },
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "", "TOML configuration file")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "", "Log level (debug, info, warn, error, off)")

	cmd.AddCommand(NewRenderCmd(NewRenderOptions()))
	cmd.AddCommand(NewClozeCmd(NewClozeOptions()))
	cmd.AddCommand(NewValidateCmd(NewValidateOptions()))
	cmd.AddCommand(NewRefsCmd(NewRefsOptions()))
	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}

// Apply installs the global configuration selected by the flags: the
// environment, then the config file, then --log-level.
func (o *CardstencilOptions) Apply() error {
	config := cardstencil.ConfigFromEnvironment()

	if o.ConfigPath != "" {
		loaded, err := cardstencil.LoadConfigFile(o.ConfigPath)
		if err != nil {
			return err
		}
		config = loaded
	}

	if o.LogLevel != "" {
		config.LogLevel = o.LogLevel
	}

	if err := config.Validate(); err != nil {
		return err
	}

	cardstencil.SetGlobalConfig(config)
	cardstencil.WithFields(cardstencil.Fields{
		"config":    o.ConfigPath,
		"log_level": config.LogLevel,
	}).Debug("Configuration applied")
	return nil
}
