package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/predictor/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	// GeneratedFile is where the setup wizard writes its result.
	GeneratedFile = "config.gen.yaml"

	envAPIURL = "PREDICTOR_API_URL"
	envMode   = "PREDICTOR_MODE"
)

// Catalog sources.
const (
	CatalogStatic  = "static"
	CatalogBinance = "binance"
)

type Config struct {
	APIURL         string          `yaml:"api_url" default:"http://127.0.0.1:8000" validate:"required,url"`
	RequestTimeout time.Duration   `yaml:"request_timeout" default:"5s" validate:"gt=0"`
	DemoDelay      time.Duration   `yaml:"demo_delay" default:"500ms" validate:"gte=0"`
	Mode           domain.Mode     `yaml:"mode" default:"live" validate:"oneof=live demo"`
	Symbol         domain.Symbol   `yaml:"symbol" default:"DOGEBTC" validate:"required"`
	Symbols        []domain.Symbol `yaml:"symbols,omitempty" validate:"dive,required"`
	CatalogSource  string          `yaml:"catalog_source" default:"static" validate:"oneof=static binance"`
	FetchOnStart   bool            `yaml:"fetch_on_start"`
	WebAddr        string          `yaml:"web_addr,omitempty" validate:"omitempty,hostname_port"`
	JournalDir     string          `yaml:"journal_dir" default:"./wal/lookups"`
	LogFile        string          `yaml:"log_file" default:"predictor.log"`
	Debug          bool            `yaml:"debug"`

	// command line only
	Setup bool `yaml:"-"`
	Once  bool `yaml:"-"`
}

// Get parses the command line and loads the configuration it points to.
// Precedence, lowest first: defaults, yaml file, environment, flags.
func Get() (Config, error) {
	return parse(os.Args[1:], os.Getenv)
}

func parse(args []string, getenv func(string) string) (Config, error) {
	fs := flag.NewFlagSet("predictor", flag.ContinueOnError)
	path := fs.String("config", "", "path to yaml config")
	setup := fs.Bool("setup", false, "run the configuration wizard and write "+GeneratedFile)
	once := fs.Bool("once", false, "fetch a single prediction, print it and exit")
	apiURL := fs.String("api", "", "prediction service base URL, example: http://127.0.0.1:8000")
	symbol := fs.String("symbol", "", "symbol to select on start, example: BTCUSDT")
	demo := fs.Bool("demo", false, "start in demo mode")
	webAddr := fs.String("web", "", "web dashboard listen address, example: :8080")
	debug := fs.Bool("debug", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var (
		cfg Config
		err error
	)
	if *path != "" {
		cfg, err = FromFile(*path)
		if err != nil {
			return Config{}, err
		}
	} else if err = defaults.Set(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to apply config defaults")
	}

	if v := getenv(envAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := getenv(envMode); v != "" {
		mode, err := domain.ParseMode(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return Config{}, errors.Wrap(err, envMode)
		}
		cfg.Mode = mode
	}

	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *symbol != "" {
		cfg.Symbol = domain.Symbol(*symbol)
	}
	if *demo {
		cfg.Mode = domain.ModeDemo
	}
	if *webAddr != "" {
		cfg.WebAddr = *webAddr
	}
	if *debug {
		cfg.Debug = true
	}
	cfg.Setup = *setup
	cfg.Once = *once

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// FromFile reads a yaml config; keys missing from the file keep their defaults.
func FromFile(path string) (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to apply config defaults")
	}

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "incorrect yaml in config %s", path)
	}

	return cfg, nil
}

// Write stores cfg as yaml at path.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to generate yaml")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to save config file %s", path)
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "invalid config")
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt", "gte":
		return fmt.Sprintf("%s must be positive", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
