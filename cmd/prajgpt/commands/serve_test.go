// ABOUTME: Tests for serve command structure
// ABOUTME: Verifies descriptions and examples

package commands

import (
	"strings"
	"testing"
)

func TestNewServeCmd(t *testing.T) {
	cmd := NewServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if !strings.Contains(cmd.Long, "gracefully") {
		t.Error("Long description should mention graceful shutdown")
	}

	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
}
