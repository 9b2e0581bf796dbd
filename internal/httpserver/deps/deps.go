package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/vitae/internal/logger"
	"github.com/MrSnakeDoc/vitae/internal/session"
	"github.com/MrSnakeDoc/vitae/internal/store"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time // for testing, defaults to time.Now
	AllowedHosts    []string         // Host headers allowed to access the API
	AllowedCIDRS    []string         // IPs allowed to access healthz/readyz/infra endpoints
	TrustProxy      bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Session         *session.Session // the open resume
	Store           store.Store      // backend behind the session, pinged by readyz/infra
	RedisClient     *redis.Client    // nil unless the redis store is used
	PDFEngine       string           // "native" | "chrome"
	ExportBurst     int              // export rate limiter bucket size
	ExportPerMinute int              // export rate limiter refill rate
}
