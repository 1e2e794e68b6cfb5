package conf

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// Config is the driver configuration, usually read from a semc.yml file.
	Config struct {
		// Prelude loads the built-in library signatures into the global scope.
		Prelude bool `yaml:"prelude"`
		// Builtins are extra signatures declared next to the prelude.
		Builtins []Builtin `yaml:"builtins"`
		// TimeFormat is the strftime layout of the report header.
		TimeFormat string `yaml:"time_format"`
	}
	// Builtin is the signature of a function provided by the host.
	Builtin struct {
		Name    string   `yaml:"name"`
		Returns string   `yaml:"returns"`
		Params  []string `yaml:"params"`
	}
	// ValidationError collects every problem found in a configuration.
	ValidationError struct {
		Issues []string
	}
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Prelude: true, TimeFormat: DEFAULTTIMEFORMAT}
}

// Load reads the configuration at path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer func() { _ = file.Close() }()
	cfg, err := Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Decode parses a YAML configuration from src over the defaults. Unknown
// fields are rejected.
func Decode(src io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(src)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "parse")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	var errs ValidationError
	if cfg.TimeFormat == "" {
		errs.Issues = append(errs.Issues, "time_format must not be empty")
	}
	seen := map[string]bool{}
	for i, builtin := range cfg.Builtins {
		if builtin.Name == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("builtins[%d] missing name", i))
		} else if seen[builtin.Name] {
			errs.Issues = append(errs.Issues, fmt.Sprintf("builtins[%d] %s declared twice", i, builtin.Name))
		}
		seen[builtin.Name] = true
		if builtin.Returns == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("builtins[%d] missing returns", i))
		}
		for j, param := range builtin.Params {
			if param == "" {
				errs.Issues = append(errs.Issues, fmt.Sprintf("builtins[%d].params[%d] must not be empty", i, j))
			}
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Signature renders the builtin as a prototype declaration, naming the
// parameters a0, a1 and so on.
func (b Builtin) Signature() string {
	params := make([]string, len(b.Params))
	for i, param := range b.Params {
		params[i] = fmt.Sprintf("%s a%d", param, i)
	}
	return fmt.Sprintf("%s %s(%s);", b.Returns, b.Name, strings.Join(params, ", "))
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}
