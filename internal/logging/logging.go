// Package logging builds the service's zap logger from configuration.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/parisxmas/sitesurvey/internal/config"
	"github.com/parisxmas/sitesurvey/internal/gelf"
)

const serviceName = "sitesurvey"

// New returns a logger writing to stderr and, when cfg.GelfAddr is set, to a
// GELF UDP endpoint. The returned closer releases the GELF socket.
func New(cfg config.LogConfig) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	return build(cfg, level, zapcore.Lock(os.Stderr))
}

func build(cfg config.LogConfig, level zapcore.Level, sink zapcore.WriteSyncer) (*zap.Logger, io.Closer, error) {
	encCfg := zap.NewProductionEncoderConfig()
	var enc zapcore.Encoder
	if cfg.Format == "console" {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(consoleCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, sink, level)}
	var closer io.Closer = nopCloser{}
	var gelfErr error

	if cfg.GelfAddr != "" {
		w, err := gelf.New(cfg.GelfAddr, serviceName)
		if err != nil {
			gelfErr = err
		} else {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
			closer = w
		}
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).With(zap.String("service", serviceName))
	if gelfErr != nil {
		logger.Warn("GELF init failed", zap.String("addr", cfg.GelfAddr), zap.Error(gelfErr))
	} else if cfg.GelfAddr != "" {
		logger.Info("GELF logging enabled", zap.String("addr", cfg.GelfAddr))
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
