package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewCommand(Options{Name: "categories", Description: "Product category service"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out.String(), "categories@") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestServeFailsWithoutDatabaseConfig(t *testing.T) {
	t.Setenv("MONGODB_HOST", "")
	t.Setenv("MONGODB_USER", "")
	t.Setenv("MONGODB_PASS", "")
	t.Setenv("SHOPAPI_DATABASE_HOST", "")
	t.Setenv("SHOPAPI_DATABASE_USERNAME", "")
	t.Setenv("SHOPAPI_DATABASE_PASSWORD", "")

	cmd := NewCommand(Options{Name: "categories"})
	cmd.SetArgs([]string{"serve"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected startup failure without database configuration")
	}
	if !strings.Contains(err.Error(), "database.host") {
		t.Fatalf("unexpected error: %v", err)
	}
}
