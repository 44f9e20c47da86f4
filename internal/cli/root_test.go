package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"parse", "lines", "detect", "validate", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"log-level", "log-format"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Missing persistent flag: %s", flag)
		}
	}
}

func TestRootCommand_DebugLogsToStderr(t *testing.T) {
	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader("avatar\nA1\nstar\n2025-09-01\npic\n很好用\n"))
	root.SetArgs([]string{"--log-level", "debug", "--log-format", "json", "parse", "--layout", "jd"})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout.String(), "A1,2025-09-01,很好用") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), `"message":"records parsed"`) {
		t.Errorf("stderr missing log line: %q", stderr.String())
	}
	if strings.Contains(stdout.String(), "records parsed") {
		t.Error("logs must not be written to stdout")
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--log-level", "loud", "version"})

	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for unknown log level")
	}
}
