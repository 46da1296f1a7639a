package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/layout"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
)

const testNetworkYAML = `nodes:
  - {id: A, degree: 3, module: 0, phylum: Firmicutes}
  - {id: B, degree: 1, module: 0, phylum: Firmicutes}
  - {id: C, degree: 1, module: 1, phylum: Bacteroidetes}
  - {id: D, degree: 1, module: 1, phylum: Bacteroidetes}
edges:
  - {source: A, target: B, correlation: 0.5}
  - {source: A, target: C, correlation: -0.3}
  - {source: A, target: D, correlation: 0.2}
`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLayoutCommandWritesLayout(t *testing.T) {
	input := writeTestFile(t, "gut.yaml", testNetworkYAML)

	if _, err := execute(t, "layout", input, "--mode", "radial", "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := graph.ReadLayoutFile(layoutPath(input))
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.Mode != layout.ModeRadial {
		t.Errorf("Mode = %q, want radial", l.Mode)
	}
	if len(l.Nodes) != 4 {
		t.Fatalf("got %d positions, want 4", len(l.Nodes))
	}
	if l.Nodes[0].ID != "A" || l.Nodes[0].X != 0 || l.Nodes[0].Y != 0 {
		t.Errorf("hub should sit at the origin, got %+v", l.Nodes[0])
	}
}

func TestRenderAndVisualizeAgree(t *testing.T) {
	input := writeTestFile(t, "gut.yaml", testNetworkYAML)
	dir := filepath.Dir(input)

	if _, err := execute(t, "render", input, "--mode", "circle", "--format", "svg", "-o", filepath.Join(dir, "direct.svg")); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := execute(t, "layout", input, "--mode", "circle"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := execute(t, "visualize", input, "-o", filepath.Join(dir, "staged.svg")); err != nil {
		t.Fatalf("visualize: %v", err)
	}

	direct, err := os.ReadFile(filepath.Join(dir, "direct.svg"))
	if err != nil {
		t.Fatal(err)
	}
	staged, err := os.ReadFile(filepath.Join(dir, "staged.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(direct, staged) {
		t.Error("render and layout+visualize should produce identical SVG")
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	input := writeTestFile(t, "gut.yaml", testNetworkYAML)
	if _, err := execute(t, "render", input, "--format", "gif"); err == nil {
		t.Fatal("expected error for gif format")
	}
}

func TestModulesCommandWritesNetwork(t *testing.T) {
	input := writeTestFile(t, "gut.yaml", testNetworkYAML)
	output := filepath.Join(filepath.Dir(input), "relabeled.json")

	if _, err := execute(t, "modules", input, "--min-corr", "0.25", "--drop-isolated", "-o", output); err != nil {
		t.Fatalf("modules: %v", err)
	}

	n, err := graph.ReadNetworkFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if n.NodeCount() != 3 || n.EdgeCount() != 2 {
		t.Errorf("got %d nodes / %d edges, want 3 / 2", n.NodeCount(), n.EdgeCount())
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	cfg := writeTestFile(t, "config.toml", `
[layout]
mode = "organic"
min_correlation = 0.4

[style]
color_mode = "taxonomy"
`)

	c := New(io.Discard, LogInfo)
	cmd := c.layoutCommand()
	opts := pipeline.Options{}
	addStyleFlags(cmd, &opts, &styleFlags{highlight: -1})
	c.configPath = cfg
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if err := cmd.ParseFlags([]string{"--mode", "circle"}); err != nil {
		t.Fatal(err)
	}
	opts.Mode = "circle"
	c.applyConfig(cmd, &opts)

	if opts.Mode != "circle" {
		t.Errorf("Mode = %q, flag should win over config", opts.Mode)
	}
	if opts.MinCorrelation != 0.4 {
		t.Errorf("MinCorrelation = %v, want config value 0.4", opts.MinCorrelation)
	}
	if opts.ColorMode != "taxonomy" {
		t.Errorf("ColorMode = %q, want config value taxonomy", opts.ColorMode)
	}
}

func TestConfigLogLevel(t *testing.T) {
	cfg := writeTestFile(t, "config.toml", "[log]\nlevel = \"error\"\n")

	tests := []struct {
		name    string
		verbose bool
		want    log.Level
	}{
		{"from file", false, log.ErrorLevel},
		{"verbose wins", true, log.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", t.TempDir())
			c := New(io.Discard, LogInfo)
			if tt.verbose {
				c.SetLogLevel(LogDebug)
			}
			root := c.RootCommand()
			root.SetOut(io.Discard)
			root.SetArgs([]string{"--config", cfg, "cache", "path"})
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if got := c.Logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	input := writeTestFile(t, "gut.yaml", testNetworkYAML)
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "layout", input)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestCachePathUsesConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "layouts")
	cfg := writeTestFile(t, "config.toml", "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(dir) {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dir)
	}
}

func TestCacheClear(t *testing.T) {
	input := writeTestFile(t, "gut.yaml", testNetworkYAML)
	dir := filepath.Join(t.TempDir(), "layouts")
	cfg := writeTestFile(t, "config.toml", "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	if _, err := execute(t, "--config", cfg, "layout", input); err != nil {
		t.Fatalf("layout: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) == 0 {
		t.Fatal("layout should populate the cache")
	}

	if _, err := execute(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestCacheStats(t *testing.T) {
	input := writeTestFile(t, "gut.yaml", testNetworkYAML)
	dir := filepath.Join(t.TempDir(), "layouts")
	cfg := writeTestFile(t, "config.toml", "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	out, err := execute(t, "--config", cfg, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	if strings.TrimSpace(out) != "0 entries, 0 B" {
		t.Errorf("stats before layout = %q", out)
	}

	if _, err := execute(t, "--config", cfg, "layout", input); err != nil {
		t.Fatalf("layout: %v", err)
	}
	out, err = execute(t, "--config", cfg, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	if strings.HasPrefix(out, "0 entries") {
		t.Errorf("stats after layout = %q, want entries", out)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestModulesTable(t *testing.T) {
	input := writeTestFile(t, "gut.yaml", testNetworkYAML)
	n, err := graph.ReadNetworkFile(input)
	if err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{}
	runner := pipeline.NewRunner(nil, nil, nil)
	res, err := runner.Modules(t.Context(), n, opts)
	if err != nil {
		t.Fatal(err)
	}

	table := modulesTable(res)
	for _, want := range []string{"Module", "Dominant phylum", "Firmicutes", "Bacteroidetes"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
}

func TestFlagCompletion(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"__complete", "layout", "--mode", ""}, []string{"circle", "radial", "organic", "force"}},
		{[]string{"__complete", "render", "--color", ""}, []string{"taxonomy", "module", "enrichment"}},
		{[]string{"__complete", "visualize", "--format", ""}, []string{"svg", "dot", "png", "json"}},
	}
	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("%v: completion %q missing %q", tt.args, out, w)
			}
		}
	}
}

func TestCompletionScript(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "ecolayout") {
		t.Error("bash script should reference the command name")
	}
}
