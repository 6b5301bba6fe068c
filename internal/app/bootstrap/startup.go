// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/longrichadmin/internal/app/resources"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the backend
// clients are built, but before the HTTP handler is. It loads the shared
// templates and applies the configured upload deadline.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	timeouts.Configure(timeouts.Config{Upload: appCfg.UploadTimeout})
	logger.Info("timeouts configured", zap.Any("timeouts", timeouts.Current()))
	return nil
}
