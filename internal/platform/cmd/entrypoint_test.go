package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

func TestParseConfigNilTarget(t *testing.T) {
	if err := ParseConfig[struct{}](nil); err == nil {
		t.Fatal("expected error for nil config target")
	}
}

func TestParseArgsNilFlagSet(t *testing.T) {
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected error for nil flag parser")
	}
}

func TestParseArgsNilArgs(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := ParseArgs(fs, nil); err != nil {
		t.Fatalf("parse args: %v", err)
	}
}

func TestRunWithTelemetryValidation(t *testing.T) {
	noop := func(context.Context) error { return nil }

	if err := RunWithTelemetry(context.Background(), "", noop); err == nil {
		t.Fatal("expected error for empty service name")
	}
	if err := RunWithTelemetry(context.Background(), "test", nil); err == nil {
		t.Fatal("expected error for nil run function")
	}
}

func TestRunWithTelemetryPropagatesRunError(t *testing.T) {
	sentinel := errors.New("run failed")
	err := RunWithTelemetry(context.Background(), "test", func(context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected run error, got %v", err)
	}
}
