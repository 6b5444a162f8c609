package app

import (
	"context"
	"time"

	"github.com/poppolopoppo/sqlite3src/internal/base"
	"github.com/poppolopoppo/sqlite3src/utils"
)

// WithCommandEnv runs scope with profiling when enabled, and reports the
// error it returns before handing it back to the caller. A fatal log raised
// inside scope is returned as an error.
func WithCommandEnv(prefix string, scope func(context.Context) error) error {
	startedAt := time.Now()

	defer base.FlushLog()
	defer utils.StartProfiling()()

	err := base.Recover(func() error {
		return scope(context.Background())
	})

	if err != nil {
		base.LogForwardln("")
		base.LogError(utils.LogCommand, "%s: %v", prefix, err)
	} else {
		base.LogVerbose(utils.LogCommand, "%s: done in %v", prefix, time.Since(startedAt))
	}
	return err
}
