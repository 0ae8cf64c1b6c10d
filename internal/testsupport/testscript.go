package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/mindcache/item"
)

var (
	buildOnce sync.Once
	mcPath    string
	buildErr  error
)

// BuildMC builds the mc binary once and returns its path.
func BuildMC(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "mc-bin-")
		if err != nil {
			buildErr = err
			return
		}

		mcPath = filepath.Join(binDir, "mc")
		cmd := exec.Command("go", "build", "-o", mcPath, "./cmd/mc")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build mc: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return mcPath
}

// SetupScriptEnv points HOME at a fresh directory inside the script workdir
// and exposes the built binary as $MC.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("MC", BuildMC(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("USER", "ada")
	env.Setenv("MINDCACHE_CONFIG", "")
	env.Setenv("NO_COLOR", "1")
	env.Setenv("EDITOR", "")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdItemID finds an item by text in `mc list --json` output and stores its
// ID in an env var.
func CmdItemID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("itemid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: itemid FILE TEXT VAR")
	}

	var items []item.Item
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse item list: %v", err)
	}

	text := args[1]
	for _, it := range items {
		if it.Text == text {
			ts.Setenv(args[2], it.ID)
			return
		}
	}

	ts.Fatalf("item with text %q not found", text)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
