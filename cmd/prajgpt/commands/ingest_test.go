// ABOUTME: Tests for ingest command structure
// ABOUTME: Verifies arguments, descriptions and examples

package commands

import (
	"strings"
	"testing"
)

func TestNewIngestCmd(t *testing.T) {
	cmd := NewIngestCmd()

	if cmd.Use != "ingest <directory>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "ingest <directory>")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if !strings.Contains(cmd.Long, "atomically") {
		t.Error("Long description should mention the atomic index swap")
	}

	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}

	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
}

func TestIngestCmd_Examples(t *testing.T) {
	cmd := NewIngestCmd()

	if !strings.Contains(cmd.Example, "prajgpt ingest") {
		t.Errorf("Example should show usage, got %q", cmd.Example)
	}
}
