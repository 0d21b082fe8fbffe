package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/carbocation/variantatlas"
	"github.com/carbocation/variantatlas/variant"
)

// EnvPrefix is prepended to the upper-cased config key to find its
// environment variable, e.g. VARIANTATLAS_PORT.
const EnvPrefix = "VARIANTATLAS_"

type Config struct {
	Port int `yaml:"port"`

	// DataRoots are searched in order for the input file. Empty means the
	// working directory and then the folder holding the binary.
	DataRoots []string `yaml:"data_roots"`

	LabelLimit int    `yaml:"label_limit"`
	Ellipsis   string `yaml:"ellipsis"`
	LogLevel   string `yaml:"log_level"`

	// GCSAnonymous reads gs:// roots without credentials, for public buckets.
	GCSAnonymous bool `yaml:"gcs_anonymous"`

	Site string `yaml:"site"`
}

func DefaultConfig() Config {
	return Config{
		Port:       9019,
		LabelLimit: variant.DefaultLabelLimit,
		Ellipsis:   variant.EllipsisAlways.String(),
		LogLevel:   zerolog.InfoLevel.String(),
		Site:       "Variant Atlas",
	}
}

// LoadConfigFile overlays the YAML file at path onto cfg. Keys absent from
// the file keep their current value.
func LoadConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}

	return nil
}

// ApplyEnv overlays any VARIANTATLAS_* variables found by lookup onto cfg.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		return strings.TrimSpace(v), ok
	}

	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sPORT: %w", EnvPrefix, err)
		}
		c.Port = port
	}
	if v, ok := get("DATA_ROOTS"); ok {
		c.DataRoots = splitList(v)
	}
	if v, ok := get("LABEL_LIMIT"); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sLABEL_LIMIT: %w", EnvPrefix, err)
		}
		c.LabelLimit = limit
	}
	if v, ok := get("ELLIPSIS"); ok {
		c.Ellipsis = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := get("GCS_ANONYMOUS"); ok {
		anon, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sGCS_ANONYMOUS: %w", EnvPrefix, err)
		}
		c.GCSAnonymous = anon
	}
	if v, ok := get("SITE"); ok {
		c.Site = v
	}

	return nil
}

// Validate checks values that would otherwise fail later, at request time.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d is out of range", c.Port)
	}
	if c.LabelLimit <= 0 {
		return fmt.Errorf("config: label_limit must be positive, got %d", c.LabelLimit)
	}
	if _, err := variant.ParseEllipsisMode(c.Ellipsis); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

func (c Config) EllipsisMode() variant.EllipsisMode {
	m, _ := variant.ParseEllipsisMode(c.Ellipsis)
	return m
}

func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// parseConfig layers defaults, the optional -config YAML file, the
// environment and finally any flags given explicitly in args.
func parseConfig(args []string, lookup func(string) (string, bool), output io.Writer) (Config, error) {
	def := DefaultConfig()

	fs := flag.NewFlagSet("variantatlas", flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "(Optional) Path to a YAML config file. Values from the environment and flags take precedence.")
	port := fs.Int("port", def.Port, "Port for HTTP server")
	dataRoots := fs.String("data", "", "(Optional) Comma-separated folders searched for final_variant_data.csv, .csv.gz or .zip. May be gs:// URLs. Defaults to the working directory and then the folder holding the binary.")
	labelLimit := fs.Int("label-limit", def.LabelLimit, "Maximum number of variants offered for selection")
	ellipsis := fs.String("ellipsis", def.Ellipsis, "When to add '...' to shortened labels: 'always' or 'truncated'")
	logLevel := fs.String("log-level", def.LogLevel, "zerolog level: trace, debug, info, warn, error")
	gcsAnonymous := fs.Bool("gcs-anonymous", def.GCSAnonymous, "Read gs:// data roots without credentials")
	site := fs.String("site", def.Site, "Site name shown in page titles")

	if err := fs.Parse(args); err != nil {
		return def, err
	}

	cfg := def
	if *configPath != "" {
		if err := LoadConfigFile(&cfg, *configPath); err != nil {
			return def, err
		}
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return def, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "data":
			cfg.DataRoots = splitList(*dataRoots)
		case "label-limit":
			cfg.LabelLimit = *labelLimit
		case "ellipsis":
			cfg.Ellipsis = *ellipsis
		case "log-level":
			cfg.LogLevel = *logLevel
		case "gcs-anonymous":
			cfg.GCSAnonymous = *gcsAnonymous
		case "site":
			cfg.Site = *site
		}
	})

	for i, root := range cfg.DataRoots {
		expanded, err := variantatlas.ExpandHome(root)
		if err != nil {
			return def, fmt.Errorf("config: data root %q: %w", root, err)
		}
		cfg.DataRoots[i] = expanded
	}

	return cfg, cfg.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if len(v) > 1 {
			v = strings.TrimSuffix(v, "/")
		}
		if v != "" {
			out = append(out, v)
		}
	}

	return out
}
