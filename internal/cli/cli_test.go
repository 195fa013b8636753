package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/pipeline"
)

const salesCSV = `series,Q1,Q2,Q3
Apples (US),1,3,2
Apples (EU),2,-1,
Pears (US),4,1,1
`

const groupsTOML = `default_group = "US"

[[group]]
name = "EU"
series = ["Apples (EU)"]
`

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, cacheDir string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.CacheDir = cacheDir
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"svg, json,", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/sales.csv", "data/sales"},
		{"", "https://example.com/sales.csv", "chart"},
		{"", "-", "chart"},
		{"out/chart.svg", "sales.csv", "out/chart"},
		{"out/chart", "sales.csv", "out/chart"},
		{"out/chart.v2", "sales.csv", "out/chart.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	single := filepath.Join(dir, "one", "chart.out")
	paths, err := writeArtifacts(artifacts, []string{"svg"}, "sales.csv", single)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != single {
		t.Errorf("single paths = %v", paths)
	}

	paths, err = writeArtifacts(artifacts, []string{"svg", "json"}, "sales.csv", filepath.Join(dir, "many", "chart.svg"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "many", "chart.svg"), filepath.Join(dir, "many", "chart.json")}
	if strings.Join(paths, "|") != strings.Join(want, "|") {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	b, err := os.ReadFile(want[1])
	if err != nil || string(b) != "{}" {
		t.Errorf("json artifact = %q, %v", b, err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "sales.csv", salesCSV)
	base := filepath.Join(dir, "out", "sales")

	out, err := runCLI(t, t.TempDir(), "render", data, "-f", "svg,json", "-o", base, "--title", "Sales")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Rendered") {
		t.Errorf("output = %q", out)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("Sales")) {
		t.Errorf("unexpected svg: %.80s", svg)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Error(err)
	}
}

func TestRenderToStdout(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "sales.csv", salesCSV)

	out, err := runCLI(t, "", "render", data, "-f", "json", "-o", "-", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if doc["orientation"] != "vertical" {
		t.Errorf("orientation = %v", doc["orientation"])
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "sales.csv", salesCSV)

	tests := [][]string{
		{"render", data, "-f", "gif"},
		{"render", filepath.Join(dir, "missing.csv")},
		{"render", data, "-f", "svg,json", "-o", "-"},
		{"render", data, "--orientation", "diagonal"},
		{"render"},
	}
	for _, args := range tests {
		if _, err := runCLI(t, t.TempDir(), args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestRangeCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "sales.csv", salesCSV)
	cfg := writeFile(t, dir, "chart.toml", groupsTOML)

	out, err := runCLI(t, "", "range", data, "-c", cfg, "--json", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Lower, Upper float64
		Groups       int
		Items        int
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	// US stacks 1+4 in Q1; EU drops to -1 in Q2.
	if got.Lower != -1 || got.Upper != 5 {
		t.Errorf("range = [%v, %v], want [-1, 5]", got.Lower, got.Upper)
	}
	if got.Groups != 2 || got.Items != 8 {
		t.Errorf("groups = %d, items = %d", got.Groups, got.Items)
	}

	text, err := runCLI(t, "", "range", data, "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "lower") || !strings.Contains(text, "7") {
		t.Errorf("text output = %q", text)
	}
}

func TestGroupsCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "sales.csv", salesCSV)
	cfg := writeFile(t, dir, "chart.toml", groupsTOML)

	out, err := runCLI(t, "", "groups", data, "-c", cfg, "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"US", "EU", "Apples (US), Pears (US)", "Apples (EU)"} {
		if !strings.Contains(out, want) {
			t.Errorf("groups output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "US") > strings.Index(out, "EU") {
		t.Error("default group should be listed first")
	}
}

func TestConfigInitAndCheck(t *testing.T) {
	out, err := runCLI(t, "", "config", "init")
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "chart.toml", out)

	checked, err := runCLI(t, "", "config", "check", path)
	if err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
	if !strings.Contains(checked, "is valid") {
		t.Errorf("output = %q", checked)
	}

	bad := writeFile(t, t.TempDir(), "bad.toml", "width = -5.0\n")
	if _, err := runCLI(t, "", "config", "check", bad); err == nil {
		t.Error("expected validation error")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	out, err := runCLI(t, dir, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	out, err = runCLI(t, dir, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("output = %q", out)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("v"), cache.TTLArtifact); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, dir, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := fc.Get(context.Background(), "k"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestDefaultCacheDirFollowsXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only consulted on linux")
	}
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := New(io.Discard, LogInfo).cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-cache", "stackbar"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestRenderUsesCache(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "sales.csv", salesCSV)
	cacheDir := t.TempDir()

	if _, err := runCLI(t, cacheDir, "render", data, "-o", filepath.Join(dir, "a.svg")); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, cacheDir, "render", data, "-o", filepath.Join(dir, "b.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, iconCached) {
		t.Errorf("second render should report a cache hit:\n%s", out)
	}
}

func TestCompletion(t *testing.T) {
	out, err := runCLI(t, "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "stackbar") {
		t.Error("bash completion should mention the program name")
	}
	if _, err := runCLI(t, "", "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestFlagValueCompletion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
		not  []string
	}{
		{"orientation", []string{"render", "sales.csv", "--orientation", ""}, []string{"vertical", "horizontal"}, nil},
		{"input format", []string{"range", "sales.csv", "--input-format", ""}, []string{"csv", "json"}, nil},
		{"first format", []string{"render", "sales.csv", "-f", ""}, []string{"svg", "png", "pdf", "json"}, nil},
		{"next format", []string{"render", "sales.csv", "-f", "svg,"}, []string{"svg,png", "svg,json"}, []string{"svg,svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, "", append([]string{cobra.ShellCompRequestCmd}, tt.args...)...)
			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(out, "\n")
			for _, w := range tt.want {
				if !slices.Contains(lines, w) {
					t.Errorf("completions %q missing %q", lines, w)
				}
			}
			for _, n := range tt.not {
				if slices.Contains(lines, n) {
					t.Errorf("completions %q should not offer %q", lines, n)
				}
			}
		})
	}
}

func TestValidFormatsMatchPipeline(t *testing.T) {
	for _, f := range parseFormats("svg,png,pdf,json") {
		if !pipeline.ValidFormats[f] {
			t.Errorf("format %q not accepted by the pipeline", f)
		}
	}
}
