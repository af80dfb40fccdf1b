// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"hranalytics/internal/modkit/repokit"
	"hranalytics/internal/platform/config"
	"hranalytics/internal/platform/logger"
	pmetrics "hranalytics/internal/platform/metrics"
	ptime "hranalytics/internal/platform/time"
)

// Deps holds core dependencies passed to modules
// every field is optional, modules nil check the stores they need
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	PG repokit.TxRunner
	CH repokit.Clickhouse

	Metrics *pmetrics.Recorder
	Clock   ptime.Clock
}

// Now reads the deps clock, falling back to UTC wall time
func (d Deps) Now() time.Time { return d.Clock.Now() }
