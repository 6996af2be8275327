package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gookit/color"

	"github.com/samdwyer/rpgmap/internal/errors"
	"github.com/samdwyer/rpgmap/internal/ui"
)

// newTestCLI returns a CLI with captured output and an empty environment.
func newTestCLI() (*CLI, *bytes.Buffer, *bytes.Buffer) {
	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)
	c.lookupEnv = func(string) (string, bool) { return "", false }
	return c, &out, &logs
}

func execute(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestSetVersion(t *testing.T) {
	defer SetVersion("dev", "", "")

	SetVersion("1.0.0", "abc123", "2024-01-01")
	if version != "1.0.0" || commit != "abc123" || date != "2024-01-01" {
		t.Errorf("SetVersion did not update: %q %q %q", version, commit, date)
	}
	if got := versionString(); got != "1.0.0 (abc123, 2024-01-01)" {
		t.Errorf("versionString() = %q", got)
	}

	SetVersion("1.0.0", "", "")
	if got := versionString(); got != "1.0.0" {
		t.Errorf("versionString() = %q", got)
	}
}

func TestGenerateCommand(t *testing.T) {
	c, out, logs := newTestCLI()
	path := filepath.Join(t.TempDir(), "cave.png")

	err := execute(c, "generate", "-s", "cave", "-x", "20", "-y", "15", "-S", "4",
		"--seed", "7", "-o", path, "--ascii", "--grid-lines", "-v")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Errorf("image is %dx%d, want 80x60", b.Dx(), b.Dy())
	}

	text := color.ClearCode(out.String())
	if !strings.Contains(text, "Generated cave map 20x15") {
		t.Errorf("missing summary in output:\n%s", text)
	}
	if lines := strings.Split(text, "\n"); len(lines[0]) != 20 {
		t.Errorf("first text row = %q, want 20 glyphs", lines[0])
	}
	if !strings.Contains(logs.String(), "generating map") {
		t.Errorf("--verbose should log debug lines, got:\n%s", logs.String())
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	dir := t.TempDir()
	var files [2][]byte
	for i := range files {
		c, _, _ := newTestCLI()
		path := filepath.Join(dir, "map.png")
		if err := execute(c, "generate", "--seed", "99", "-x", "30", "-y", "30", "-o", path); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		files[i] = data
	}
	if !bytes.Equal(files[0], files[1]) {
		t.Error("same seed produced different images")
	}
}

func TestGenerateUsesEnvironment(t *testing.T) {
	c, out, _ := newTestCLI()
	path := filepath.Join(t.TempDir(), "env.png")
	c.lookupEnv = func(key string) (string, bool) {
		switch key {
		case "RPGMAP_STYLE":
			return "annealed", true
		case "RPGMAP_OUTPUT":
			return path, true
		}
		return "", false
	}

	if err := execute(c, "generate", "--seed", "3", "-x", "10", "-y", "10"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("env output path not used: %v", err)
	}
	if !strings.Contains(color.ClearCode(out.String()), "annealed") {
		t.Errorf("env style not used:\n%s", out.String())
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown style", []string{"generate", "-s", "maze"}, errors.ErrCodeInvalidInput},
		{"zero width", []string{"generate", "-x", "0"}, errors.ErrCodeInvalidInput},
		{"unknown route", []string{"generate", "--route", "zigzag"}, errors.ErrCodeInvalidInput},
		{"unimplemented route", []string{"generate", "-s", "halls", "--route", "diagonal", "--seed", "77"}, errors.ErrCodeUnimplementedRoute},
		{"bad output dir", []string{"generate", "-x", "5", "-y", "5", "-o", "/nonexistent/dir/map.png"}, errors.ErrCodeRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCLI()
			if err := execute(c, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("want %s, got %v", tt.code, err)
			}
		})
	}
}

func TestStylesCommand(t *testing.T) {
	c, out, _ := newTestCLI()
	if err := execute(c, "styles"); err != nil {
		t.Fatal(err)
	}
	text := color.ClearCode(out.String())
	for _, want := range []string{"Presets", "halls", "cave", "warren", "grotto"} {
		if !strings.Contains(text, want) {
			t.Errorf("styles output missing %q:\n%s", want, text)
		}
	}
}

func TestPreviewStopsOnCancel(t *testing.T) {
	c, _, _ := newTestCLI()
	c.openScreen = func() (*ui.Screen, error) {
		return ui.Wrap(tcell.NewSimulationScreen(""))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := c.RootCommand()
	root.SetArgs([]string{"preview", "--seed", "5", "-x", "20", "-y", "10"})
	err := root.ExecuteContext(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}
