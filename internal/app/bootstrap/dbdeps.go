// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/longrichadmin/internal/app/store/apiclient"
	"github.com/go-redis/redis/v8"
)

// DBDeps holds the back-end dependencies for the app. The console owns no
// database: the REST API is its system of record and Redis, when
// configured, only holds login throttling counters.
type DBDeps struct {
	Backend *apiclient.Client
	Redis   *redis.Client // nil when redis_addr is blank
}
