//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// -h exits 0; run outside the PTY since it exits immediately
	out, err := exec.Command(binPath, "-h").CombinedOutput()
	require.NoError(t, err, "Help flag should run without error")

	output := string(out)
	require.Contains(t, output, "-config", "Help should document the config flag")
	require.Contains(t, output, "-api-url", "Help should document the API flag")
}

func TestInvalidAPIURLIsRejected(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	cmd := exec.Command(binPath, "-api-url", "ftp://example.com", "-config", "/nonexistent/config.toml")
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	out, err := cmd.CombinedOutput()
	require.Error(t, err, "An ftp API URL should be rejected")
	require.Contains(t, string(out), "Invalid configuration")
}
