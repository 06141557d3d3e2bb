package logging

import (
	"hrms-lite/internal/config"

	"go.uber.org/zap"
)

// New returns a production logger when APP_ENV is production and a
// development logger otherwise, tagged with the app name.
func New(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("app", cfg.AppName)), nil
}
