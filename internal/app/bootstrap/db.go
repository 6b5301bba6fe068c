// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ConnectDB builds the backend API client and, when configured, the Redis
// client. An unreachable backend is logged but does not stop startup: the
// console keeps serving its login page and /health reports the outage.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	deps := DBDeps{
		Backend: apiclient.New(appCfg.APIBaseURL, appCfg.APITimeout, logger),
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := deps.Backend.Ping(pingCtx); err != nil {
		logger.Warn("backend API not reachable at startup", zap.String("api_base_url", appCfg.APIBaseURL), zap.Error(err))
	} else {
		logger.Info("backend API reachable", zap.String("api_base_url", appCfg.APIBaseURL))
	}

	if appCfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: appCfg.RedisAddr})
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return DBDeps{}, fmt.Errorf("connect redis %s: %w", appCfg.RedisAddr, err)
		}
		logger.Info("redis connected", zap.String("addr", appCfg.RedisAddr))
		deps.Redis = rdb
	}

	return deps, nil
}

// EnsureSchema is a no-op: the backend owns its schema.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
