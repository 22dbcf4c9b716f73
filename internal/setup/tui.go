package setup

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/predictor/config"
	"github.com/vadiminshakov/predictor/internal/domain"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

const wizardTitle = "PREDICTOR CONFIG WIZARD"

// RunTUI launches the terminal configuration wizard, starting from base,
// and writes the result to config.GeneratedFile. It returns the saved config.
func RunTUI(base config.Config) (config.Config, error) {
	var (
		mode          = base.Mode.String()
		apiURL        = base.APIURL
		symbol        = base.Symbol.String()
		timeoutStr    = base.RequestTimeout.String()
		catalogSource = base.CatalogSource
		webAddr       = base.WebAddr
		fetchOnStart  = base.FetchOnStart
		confirm       bool
	)

	// step 1: data source
	clearScreen()
	fmt.Println(headerStyle.Render(wizardTitle))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Pick where predictions come from.\n"))
	fmt.Println(stepStyle.Render("STEP 1: DATA SOURCE"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mode").
				Options(
					huh.NewOption("Live (prediction service)", domain.ModeLive.String()),
					huh.NewOption("Demo (sample data)", domain.ModeDemo.String()),
				).
				Value(&mode),
		),
	).Run()
	if err != nil {
		return config.Config{}, err
	}

	// step 2: service
	if mode == domain.ModeLive.String() {
		clearScreen()
		fmt.Println(headerStyle.Render(wizardTitle))
		fmt.Println(stepStyle.Render("STEP 2: PREDICTION SERVICE"))
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Service URL").
					Description("Base URL, /predict is appended").
					Value(&apiURL).
					Validate(validateURL),
				huh.NewInput().
					Title("Request Timeout").
					Description("e.g. 5s").
					Value(&timeoutStr).
					Validate(validateTimeout),
			),
		).Run()
		if err != nil {
			return config.Config{}, err
		}
	}

	// step 3: symbols
	clearScreen()
	fmt.Println(headerStyle.Render(wizardTitle))
	fmt.Println(stepStyle.Render("STEP 3: SYMBOLS"))
	symbolOptions := make([]huh.Option[string], 0, len(domain.PopularSymbols))
	for _, s := range domain.PopularSymbols {
		symbolOptions = append(symbolOptions, huh.NewOption(s.String(), s.String()))
	}
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Initial Symbol").
				Options(symbolOptions...).
				Value(&symbol),
			huh.NewSelect[string]().
				Title("Symbol Catalog").
				Options(
					huh.NewOption("Static list", config.CatalogStatic),
					huh.NewOption("Filter by Binance trading status", config.CatalogBinance),
				).
				Value(&catalogSource),
			huh.NewConfirm().
				Title("Fetch on start?").
				Value(&fetchOnStart),
		),
	).Run()
	if err != nil {
		return config.Config{}, err
	}

	// step 4: web dashboard
	clearScreen()
	fmt.Println(headerStyle.Render(wizardTitle))
	fmt.Println(stepStyle.Render("STEP 4: WEB DASHBOARD"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen Address").
				Description("Leave empty to disable (e.g. :8080)").
				Value(&webAddr).
				Validate(validateAddr),
		),
	).Run()
	if err != nil {
		return config.Config{}, err
	}

	// confirmation
	clearScreen()
	fmt.Println(headerStyle.Render(wizardTitle))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Mode: %s\nService: %s\nTimeout: %s\nSymbol: %s\nCatalog: %s\nWeb: %s\n",
		mode, apiURL, timeoutStr, symbol, catalogSource, orDisabled(webAddr),
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return config.Config{}, err
	}
	if !confirm {
		return config.Config{}, errors.New("setup cancelled by user")
	}

	cfg, err := apply(base, mode, apiURL, timeoutStr, symbol, catalogSource, webAddr, fetchOnStart)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.Write(config.GeneratedFile, cfg); err != nil {
		return config.Config{}, err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s", config.GeneratedFile)))
	time.Sleep(time.Second) // small pause to read success message

	return cfg, nil
}

// apply merges wizard answers into base and validates the result.
func apply(base config.Config, mode, apiURL, timeoutStr, symbol, catalogSource, webAddr string, fetchOnStart bool) (config.Config, error) {
	cfg := base

	m, err := domain.ParseMode(mode)
	if err != nil {
		return config.Config{}, err
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "invalid request timeout")
	}

	cfg.Mode = m
	cfg.APIURL = apiURL
	cfg.RequestTimeout = timeout
	cfg.Symbol = domain.Symbol(symbol)
	cfg.CatalogSource = catalogSource
	cfg.WebAddr = webAddr
	cfg.FetchOnStart = fetchOnStart

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL, e.g. http://127.0.0.1:8000")
	}
	return nil
}

func validateTimeout(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("must be a duration, e.g. 5s")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateAddr(s string) error {
	if s == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(s); err != nil {
		return fmt.Errorf("must be host:port, e.g. :8080")
	}
	return nil
}

func orDisabled(s string) string {
	if s == "" {
		return "disabled"
	}
	return s
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}
