package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestVersion_Short(t *testing.T) {
	SetVersion("1.2.3")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version", "--short"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version --short failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "1.2.3" {
		t.Errorf("version --short = %q, want %q", got, "1.2.3")
	}
}

func TestVersion_JSON(t *testing.T) {
	SetVersion("1.2.3")
	SetBuildInfo("abc123", "2026-01-01")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version", "--json"})
	// reset flag state leaked from other tests on the shared command
	if err := versionCmd.Flags().Set("short", "false"); err != nil {
		t.Fatal(err)
	}

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version --json failed: %v", err)
	}

	var info map[string]string
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if info["version"] != "1.2.3" {
		t.Errorf("version = %q, want %q", info["version"], "1.2.3")
	}
	if info["commit"] != "abc123" {
		t.Errorf("commit = %q, want %q", info["commit"], "abc123")
	}
}
