// Package utils holds small helpers shared by the aimai binaries.
package utils

import "go.uber.org/zap"

// NewLogger returns the zap logger used across aimai, named "aimai" so log
// lines from embedding applications stay distinguishable. Debug mode uses
// the development config (console encoder, debug level); otherwise the
// production config (JSON, info level).
func NewLogger(debug bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Named("aimai"), nil
}

// NewProductionLogger returns a production-config logger regardless of the
// debug setting.
func NewProductionLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger.Named("aimai"), nil
}
