package internal

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vadiminshakov/predictor/config"
	"github.com/vadiminshakov/predictor/internal/controller"
	"github.com/vadiminshakov/predictor/internal/domain"
	"github.com/vadiminshakov/predictor/internal/events"
	"github.com/vadiminshakov/predictor/internal/metrics"
	"github.com/vadiminshakov/predictor/internal/services/prediction"
	"github.com/vadiminshakov/predictor/internal/storage/lookups"
	"github.com/vadiminshakov/predictor/internal/tui"
	"github.com/vadiminshakov/predictor/internal/web"
)

const catalogTimeout = 10 * time.Second

// Predictor wires the controller to its sources and surfaces.
type Predictor struct {
	Config      config.Config
	logger      *zap.Logger
	controller  *controller.Controller
	broadcaster *events.SnapshotBroadcaster
	catalog     symbolCatalog
	journal     *lookups.WALStore
	registry    *prometheus.Registry
}

// NewPredictor creates a predictor instance from conf.
func NewPredictor(conf config.Config, logger *zap.Logger) (*Predictor, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	live, demo := newSources(conf)
	executor, err := prediction.NewExecutor(logger, live, demo, prediction.WithRecorder(metrics.New(registry)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create executor")
	}

	symbolCatalog, err := newCatalog(conf.CatalogSource, conf.Symbols, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create symbol catalog")
	}

	p := &Predictor{
		Config:      conf,
		logger:      logger,
		broadcaster: events.NewSnapshotBroadcaster(64),
		catalog:     symbolCatalog,
		registry:    registry,
	}

	opts := []controller.Option{controller.WithPublisher(p.broadcaster)}
	if conf.JournalDir != "" {
		p.journal, err = lookups.NewWALStore(conf.JournalDir)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open lookup journal")
		}
		opts = append(opts, controller.WithJournal(p.journal))
	}

	p.controller = controller.New(logger, executor, conf.Symbol, conf.Mode, opts...)

	return p, nil
}

// Close stops the request in flight and closes the journal.
func (p *Predictor) Close() {
	p.controller.Close()
	if p.journal != nil {
		if err := p.journal.Close(); err != nil {
			p.logger.Warn("failed to close lookup journal", zap.Error(err))
		}
	}
}

// Run serves the web dashboard (when configured) and the terminal UI until the user quits or ctx ends.
func (p *Predictor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	webErr := p.startWeb(ctx)

	catalogCtx, cancelCatalog := context.WithTimeout(ctx, catalogTimeout)
	symbols, err := p.catalog.Symbols(catalogCtx)
	cancelCatalog()
	if err != nil {
		return errors.Wrap(err, "failed to load symbol catalog")
	}

	sub := p.broadcaster.Subscribe()
	defer p.broadcaster.Unsubscribe(sub)

	if p.Config.FetchOnStart {
		p.controller.Retry()
	}

	p.logger.Info("starting terminal UI",
		zap.String("symbol", p.Config.Symbol.String()),
		zap.String("mode", p.Config.Mode.String()),
		zap.Int("symbols", len(symbols)))

	program := tea.NewProgram(tui.New(p.controller, symbols, sub), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "terminal UI failed")
	}

	cancel()
	return <-webErr
}

// RunOnce fetches the configured symbol once and writes the rendered card to w.
// The returned error is non-nil when the lookup ends in the Error state.
func (p *Predictor) RunOnce(ctx context.Context, w io.Writer) error {
	var state domain.DisplayState
	select {
	case s, ok := <-p.controller.Retry():
		if !ok {
			return errors.New("lookup was cancelled")
		}
		state = s
	case <-ctx.Done():
		return ctx.Err()
	}

	fmt.Fprintf(w, "%s (%s)\n", p.Config.Symbol, p.Config.Mode)
	if banner := tui.RenderBanner(state); banner != "" {
		fmt.Fprintln(w, banner)
	}
	fmt.Fprintln(w, tui.RenderCard(state, p.Config.Mode))

	if state.Kind() == domain.StateError {
		return fmt.Errorf("prediction failed: %s", state.Message())
	}
	return nil
}

// startWeb starts the web server in the background; the channel yields its result.
func (p *Predictor) startWeb(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	if p.Config.WebAddr == "" {
		done <- nil
		return done
	}

	var journal interface {
		EventsAfter(index uint64) ([]domain.LookupEventRecord, error)
	}
	if p.journal != nil {
		journal = p.journal
	}

	srv := web.NewServer(p.Config.WebAddr, p.logger, p.controller, p.catalog, p.broadcaster, journal,
		promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
	go func() {
		err := srv.Start(ctx)
		if err != nil {
			p.logger.Error("web server stopped", zap.Error(err))
		}
		done <- err
	}()

	return done
}
