// ABOUTME: Tests for version command
// ABOUTME: Verifies version info display and SetVersion functionality

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
}

func TestVersionCmd_Output(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-31")
	defer SetVersion("dev", "none", "unknown")

	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := output.String()
	for _, want := range []string{"PrajGPT 1.2.3", "Commit: abc123", "Built:  2026-01-31"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSetVersion(t *testing.T) {
	defer SetVersion("dev", "none", "unknown")

	SetVersion("2.0.0", "deadbeef", "2026-06-01")

	if versionInfo.Version != "2.0.0" {
		t.Errorf("Version = %q, want %q", versionInfo.Version, "2.0.0")
	}
	if versionInfo.Commit != "deadbeef" {
		t.Errorf("Commit = %q, want %q", versionInfo.Commit, "deadbeef")
	}
	if versionInfo.Date != "2026-06-01" {
		t.Errorf("Date = %q, want %q", versionInfo.Date, "2026-06-01")
	}
}
