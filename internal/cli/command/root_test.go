package command

import (
	"testing"
)

func TestApp(t *testing.T) {
	app := App()
	if app == nil {
		t.Fatal("App() returned nil")
	}

	if app.Name != "syncbridge" {
		t.Errorf("Name = %q, want %q", app.Name, "syncbridge")
	}
	if app.Usage == "" {
		t.Error("Usage should not be empty")
	}

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}

	for _, name := range []string{"fetch", "version"} {
		if !commandNames[name] {
			t.Errorf("missing required command: %s", name)
		}
	}
}

func TestAppGlobalFlags(t *testing.T) {
	app := App()

	flagNames := make(map[string]bool)
	for _, f := range app.Flags {
		flagNames[f.Names()[0]] = true
	}

	for _, name := range []string{"config", "verbose"} {
		if !flagNames[name] {
			t.Errorf("missing required flag: %s", name)
		}
	}
}
