package deps

import (
	"time"

	"github.com/kixhq/kix/internal/catalog"
	"github.com/kixhq/kix/internal/lifecycle"
	"github.com/kixhq/kix/internal/logger"
	"github.com/kixhq/kix/internal/telemetry"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Catalog  *catalog.Store      // game record store
	Sink     *telemetry.Sink     // telemetry event sink
	Sessions *lifecycle.Registry // active play sessions

	StoreBackend string // "memory" | "redis", reported by the debug endpoint

	AdminToken        string   // static bearer token for the admin surface
	AdminAllowedCIDRS []string // optional, restrict admin endpoints to specific IPs
	TrustProxy        bool     // true if running behind a trusted reverse proxy

	EventsBurst       int // rate-limit burst for the public events endpoint
	EventsPerIPPerMin int // rate-limit refill for the public events endpoint
}
