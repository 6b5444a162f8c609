package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poppolopoppo/sqlite3src/internal/base"
)

func TestWithCommandEnvForwardsErrors(t *testing.T) {
	expected := errors.New("failed")
	err := WithCommandEnv("test", func(context.Context) error { return expected })
	if !errors.Is(err, expected) {
		t.Errorf("expected %v, got %v", expected, err)
	}
	if err := WithCommandEnv("test", func(context.Context) error { return nil }); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWithCommandEnvRecoversPanics(t *testing.T) {
	err := WithCommandEnv("test", func(context.Context) error {
		base.LogPanic(base.LogGlobal, "fatal %d", 42)
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "fatal 42") {
		t.Errorf("expected recovered panic, got %v", err)
	}
}
