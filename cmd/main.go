// Command predictor shows price predictions for crypto trading pairs, either from
// a remote prediction service or from a built-in demo dataset.
//
// Usage:
//
//	predictor --config config.yaml
//	predictor --demo --symbol BTCUSDT
//	predictor --once --symbol ETHUSDT
//	predictor --setup
//
// Environment variables:
//
//	PREDICTOR_API_URL overrides the service base URL
//	PREDICTOR_MODE    overrides the start mode (live or demo)
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vadiminshakov/predictor/config"
	"github.com/vadiminshakov/predictor/internal"
	"github.com/vadiminshakov/predictor/internal/setup"
)

func main() {
	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	if conf.Setup {
		once := conf.Once
		conf, err = setup.RunTUI(conf)
		if err != nil {
			log.Fatal(err)
		}
		conf.Once = once
	}

	logger, err := newLogger(conf)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := internal.NewPredictor(conf, logger)
	if err != nil {
		logger.Fatal("failed to create predictor", zap.Error(err))
	}

	if conf.Once {
		err = p.RunOnce(ctx, os.Stdout)
		p.Close()
		if err != nil {
			logger.Error("lookup failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	err = p.Run(ctx)
	p.Close()
	if err != nil {
		logger.Fatal("predictor stopped", zap.Error(err))
	}
}

// newLogger logs to stderr in one-shot mode; otherwise the terminal UI owns the
// screen and logs go to conf.LogFile.
func newLogger(conf config.Config) (*zap.Logger, error) {
	zapConf := zap.NewProductionConfig()
	if conf.Debug {
		zapConf = zap.NewDevelopmentConfig()
	}
	zapConf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if !conf.Once && conf.LogFile != "" {
		zapConf.OutputPaths = []string{conf.LogFile}
		zapConf.ErrorOutputPaths = []string{conf.LogFile}
	}

	return zapConf.Build()
}
