package command

import (
	"bytes"
	"encoding/json"
	"flag"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/okvist/syncbridge/internal/infra/buildinfo"
)

func versionContext(t *testing.T, out *bytes.Buffer, args ...string) *cli.Context {
	t.Helper()

	app := App()
	app.Writer = out

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range VersionCommand().Flags {
		if err := f.Apply(set); err != nil {
			t.Fatalf("apply flag: %v", err)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("parse args: %v", err)
	}

	return cli.NewContext(app, set, nil)
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	if err := VersionCommand().Action(versionContext(t, &out)); err != nil {
		t.Fatalf("version action error: %v", err)
	}

	if !strings.Contains(out.String(), buildinfo.Version) {
		t.Errorf("output = %q, missing version", out.String())
	}
}

func TestVersionJSON(t *testing.T) {
	var out bytes.Buffer
	if err := VersionCommand().Action(versionContext(t, &out, "--json")); err != nil {
		t.Fatalf("version action error: %v", err)
	}

	var info buildinfo.Info
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, out.String())
	}
	if info.Version != buildinfo.Version {
		t.Errorf("version = %q, want %q", info.Version, buildinfo.Version)
	}
}
