package cardstencil

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	goversion "github.com/hashicorp/go-version"
)

// Config contains all configuration options for the rendering engine
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// MaxRenderDepth bounds how deeply section bodies may be re-rendered
	// inside each other.
	MaxRenderDepth int
	// MaxPasses bounds the number of match-and-replace iterations of a single
	// section or tag pass. A field value that reintroduces its own tag would
	// otherwise loop forever.
	MaxPasses int
	// StrictMode makes Render return the syntax error alongside the
	// invalid-template output instead of swallowing it.
	StrictMode bool
	// ClozeClass is the class attribute of the span wrapping cloze markers.
	ClozeClass string
	// AnswerSeparator joins several answers of the same ordinal in answer
	// mode. Nil selects the default; use StringPtr("") for no separator.
	AnswerSeparator *string
}

// StringPtr returns a pointer to s, for optional Config fields.
func StringPtr(s string) *string {
	return &s
}

var (
	globalConfig      = ConfigFromEnvironment()
	globalConfigMutex sync.RWMutex
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "info",
		MaxRenderDepth:  100,
		MaxPasses:       10000,
		StrictMode:      false,
		ClozeClass:      "cloze",
		AnswerSeparator: StringPtr(", "),
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// CARDSTENCIL_LOG_LEVEL
	if val := os.Getenv("CARDSTENCIL_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// CARDSTENCIL_MAX_RENDER_DEPTH
	if val := os.Getenv("CARDSTENCIL_MAX_RENDER_DEPTH"); val != "" {
		if depth, err := strconv.Atoi(val); err == nil {
			config.MaxRenderDepth = depth
		}
	}

	// CARDSTENCIL_MAX_PASSES
	if val := os.Getenv("CARDSTENCIL_MAX_PASSES"); val != "" {
		if passes, err := strconv.Atoi(val); err == nil {
			config.MaxPasses = passes
		}
	}

	// CARDSTENCIL_STRICT_MODE
	if val := os.Getenv("CARDSTENCIL_STRICT_MODE"); val != "" {
		config.StrictMode = parseBool(val)
	}

	// CARDSTENCIL_CLOZE_CLASS
	if val := os.Getenv("CARDSTENCIL_CLOZE_CLASS"); val != "" {
		config.ClozeClass = val
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.MaxRenderDepth == 0 {
		config.MaxRenderDepth = defaults.MaxRenderDepth
	}

	if config.MaxPasses == 0 {
		config.MaxPasses = defaults.MaxPasses
	}

	if config.ClozeClass == "" {
		config.ClozeClass = defaults.ClozeClass
	}

	if config.AnswerSeparator == nil {
		config.AnswerSeparator = defaults.AnswerSeparator
	}

	return &config
}

func (c *Config) answerSeparator() string {
	if c.AnswerSeparator == nil {
		return *DefaultConfig().AnswerSeparator
	}
	return *c.AnswerSeparator
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MaxRenderDepth <= 0 {
		return errors.New("max render depth must be positive")
	}

	if c.MaxPasses <= 0 {
		return errors.New("max passes must be positive")
	}

	if strings.ContainsAny(c.ClozeClass, "<>\"") {
		return errors.New("cloze class must not contain markup characters")
	}

	return nil
}

// fileConfig mirrors Config in a TOML file. Pointer fields distinguish an
// explicit false or empty value from an absent key.
type fileConfig struct {
	Requires        string  `toml:"requires"`
	LogLevel        string  `toml:"log_level"`
	MaxRenderDepth  int     `toml:"max_render_depth"`
	MaxPasses       int     `toml:"max_passes"`
	StrictMode      *bool   `toml:"strict_mode"`
	ClozeClass      string  `toml:"cloze_class"`
	AnswerSeparator *string `toml:"answer_separator"`
}

// LoadConfigFile reads a TOML configuration file on top of the environment
// configuration. An optional `requires` key holds a version constraint
// (for example ">= 0.1, < 1.0") that the running engine must satisfy.
func LoadConfigFile(path string) (*Config, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, WithContext(err, "load config", map[string]interface{}{"path": path})
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if fc.Requires != "" {
		if err := checkVersionConstraint(fc.Requires); err != nil {
			return nil, WithContext(err, "load config", map[string]interface{}{"path": path})
		}
	}

	config := ConfigFromEnvironment()
	if fc.LogLevel != "" {
		config.LogLevel = fc.LogLevel
	}
	if fc.MaxRenderDepth != 0 {
		config.MaxRenderDepth = fc.MaxRenderDepth
	}
	if fc.MaxPasses != 0 {
		config.MaxPasses = fc.MaxPasses
	}
	if fc.StrictMode != nil {
		config.StrictMode = *fc.StrictMode
	}
	if fc.ClozeClass != "" {
		config.ClozeClass = fc.ClozeClass
	}
	if fc.AnswerSeparator != nil {
		config.AnswerSeparator = StringPtr(*fc.AnswerSeparator)
	}

	if err := config.Validate(); err != nil {
		return nil, WithContext(err, "load config", map[string]interface{}{"path": path})
	}
	return config, nil
}

func checkVersionConstraint(requires string) error {
	constraints, err := goversion.NewConstraint(requires)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", requires, err)
	}
	current, err := goversion.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("invalid engine version %q: %w", Version, err)
	}
	if !constraints.Check(current) {
		return fmt.Errorf("engine version %s does not satisfy %q", Version, requires)
	}
	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// outside the lock: the logger reads the config back
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
