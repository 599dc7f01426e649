//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var setupBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "setup-cpp-e2e-*")
	if err != nil {
		panic(err)
	}

	setupBinary = filepath.Join(tmpDir, "setup-cpp")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", setupBinary, "./cmd/setup-cpp")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build setup-cpp binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(setupBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	runnerTemp := filepath.Join(env.WorkDir, ".runner-temp")
	if err := os.MkdirAll(runnerTemp, 0o750); err != nil {
		return err
	}
	env.Setenv("RUNNER_TEMP", runnerTemp)

	// Pin the platform so resolved URLs do not depend on the host.
	env.Setenv("SETUP_CPP_OS", "linux")
	env.Setenv("SETUP_CPP_ARCH", "x64")

	return nil
}
