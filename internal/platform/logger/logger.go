package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the service logger. Development gets a human-readable console
// logger at debug level; anything else gets production JSON.
func New(appEnv string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	if appEnv == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	return log.Named("delivery-rate-service"), nil
}
