package server

import (
	"context"
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.DBPath != "demesne.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("DEMESNE_ADDR", ":9999")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "/tmp/demesne-test.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("expected env addr, got %q", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/demesne-test.db" {
		t.Fatalf("expected flag db path, got %q", cfg.DBPath)
	}
}

func TestRunRequiresSessionSecret(t *testing.T) {
	err := Run(context.Background(), Config{Addr: ":0", DBPath: t.TempDir() + "/demesne.db"})
	if err == nil {
		t.Fatal("expected error for missing session secret")
	}
}
