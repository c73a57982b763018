package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schemaview/pkg/cache"
	"github.com/matzehuels/schemaview/pkg/errors"
	"github.com/matzehuels/schemaview/pkg/graph"
)

const shopJSON = `{
  "tables": [
    {"name": "orders", "columns": [{"name": "id", "type": "int", "key": "PRI"}, {"name": "customer_id", "type": "int"}]},
    {"name": "customers", "columns": [{"name": "id", "type": "int", "key": "PRI"}]},
    {"name": "audit_log"}
  ],
  "foreign_keys": [
    {"table": "orders", "column": "customer_id", "referenced_table": "customers", "referenced_column": "id", "constraint": "fk_orders_customers"}
  ]
}`

const shopEdge = "orders.customer_id->customers.id::fk_orders_customers"

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// execute runs the root command with args and returns the CLI and the
// command's own output.
func execute(t *testing.T, args ...string) (*CLI, string, error) {
	t.Helper()
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return c, out.String(), err
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "shop.json", shopJSON)

	_, out, err := execute(t, "layout", input, "--no-cache")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	for _, s := range []string{"Layout complete", "shop.frame.json", "3 tables", "1 edge", iconFresh} {
		if !strings.Contains(out, s) {
			t.Errorf("output = %q, want %q", out, s)
		}
	}

	frame, err := graph.ReadFrameFile(filepath.Join(dir, "shop.frame.json"))
	if err != nil {
		t.Fatalf("ReadFrameFile() error: %v", err)
	}
	if len(frame.Nodes) != 3 {
		t.Errorf("len(Nodes) = %d, want 3", len(frame.Nodes))
	}
	if len(frame.Edges) != 1 || frame.Edges[0].ID != shopEdge {
		t.Errorf("Edges = %+v, want one edge %s", frame.Edges, shopEdge)
	}
	if frame.Viewport == nil {
		t.Error("Viewport = nil, want fitted camera")
	}
	if frame.Hover != nil {
		t.Errorf("Hover = %+v, want nil", frame.Hover)
	}
}

func TestLayoutCommandHover(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "shop.json", shopJSON)
	output := filepath.Join(dir, "out.json")

	_, _, err := execute(t, "layout", input, "--no-cache", "--no-fit", "--hover", "orders.customer_id", "-o", output)
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}

	frame, err := graph.ReadFrameFile(output)
	if err != nil {
		t.Fatalf("ReadFrameFile() error: %v", err)
	}
	if frame.Viewport != nil {
		t.Errorf("Viewport = %+v, want nil with --no-fit", frame.Viewport)
	}
	if frame.Hover == nil || !slices.Equal(frame.Hover.Edges, []string{shopEdge}) {
		t.Errorf("Hover = %+v, want edge %s highlighted", frame.Hover, shopEdge)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "shop.json", shopJSON)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown engine", []string{"layout", input, "--no-cache", "--engine", "dot"}, errors.ErrCodeInvalidConfig},
		{"malformed hover", []string{"layout", input, "--no-cache", "--hover", "orders"}, errors.ErrCodeInvalidInput},
		{"unknown table", []string{"layout", input, "--no-cache", "--hover", "payments.id"}, errors.ErrCodeUnknownTable},
		{"negative size", []string{"layout", input, "--no-cache", "--width=-1"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("layout error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, _, err := execute(t, "layout", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("layout of a missing file succeeded, want error")
	}
}

func TestLayoutCommandCachesAndClears(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	input := writeFile(t, dir, "shop.json", shopJSON)
	cfg := writeFile(t, dir, "schemaview.toml", "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(cacheDir)+"\"\n")

	if _, _, err := execute(t, "--config", cfg, "layout", input); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if n := countJSON(t, cacheDir); n != 1 {
		t.Fatalf("cached entries = %d, want 1", n)
	}

	if _, _, err := execute(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if n := countJSON(t, cacheDir); n != 0 {
		t.Errorf("cached entries after clear = %d, want 0", n)
	}
}

func countJSON(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	return n
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "schemaview.toml", "[cache]\ndir = \"/srv/schemaview\"\n")

	_, out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "/srv/schemaview" {
		t.Errorf("cache path = %q, want %q", got, "/srv/schemaview")
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		config  string
		args    []string
		level   log.Level
		wantErr bool
	}{
		{"level from config", "[log]\nlevel = \"warn\"\n", nil, log.WarnLevel, false},
		{"verbose wins", "[log]\nlevel = \"warn\"\n", []string{"-v"}, log.DebugLevel, false},
		{"unknown key", "[log]\nlevle = \"warn\"\n", nil, 0, true},
		{"invalid value", "[route]\nbend_weight = -1\n", nil, 0, true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeFile(t, dir, tt.name+".toml", tt.config)
			args := append([]string{"--config", cfg}, tt.args...)
			args = append(args, "cache", "path")

			c, _, err := execute(t, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("case %d: error = %v, wantErr %v", i, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("error = %v, want INVALID_CONFIG", err)
				}
				return
			}
			if got := c.Logger.GetLevel(); got != tt.level {
				t.Errorf("Logger.GetLevel() = %v, want %v", got, tt.level)
			}
		})
	}

	if _, _, err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "cache", "path"); err == nil {
		t.Error("missing explicit config succeeded, want error")
	}
}

func TestJSONLogFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "schemaview.toml", "[log]\nformat = \"json\"\n")

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfg, "cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute error: %v", err)
	}

	logs.Reset()
	c.Logger.Info("hello", "tables", 3)
	if got := logs.String(); !strings.HasPrefix(got, "{") || !strings.Contains(got, `"tables":3`) {
		t.Errorf("log output = %q, want a JSON object", got)
	}
}

func TestOpenCacheDegrades(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Cache.Backend = "redis"
	c.Config.Cache.Redis.Addr = "127.0.0.1:1"

	store, err := c.openCache(context.Background(), false)
	if err != nil {
		t.Fatalf("openCache() error: %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("openCache() = %T, want *cache.NullCache", store)
	}

	store, err = c.openCache(context.Background(), true)
	if err != nil {
		t.Fatalf("openCache(noCache) error: %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("openCache(noCache) = %T, want *cache.NullCache", store)
	}
}

func TestViewOptions(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)

	opts, err := c.viewOptions("")
	if err != nil {
		t.Fatalf("viewOptions() error: %v", err)
	}
	if opts.Engine != "native" {
		t.Errorf("Engine = %q, want native", opts.Engine)
	}

	opts, err = c.viewOptions("graphviz")
	if err != nil {
		t.Fatalf("viewOptions(graphviz) error: %v", err)
	}
	if opts.Engine != "graphviz" {
		t.Errorf("Engine = %q, want graphviz", opts.Engine)
	}
	if c.Config.Layout.Engine != "native" {
		t.Errorf("Config.Layout.Engine = %q, override must not stick", c.Config.Layout.Engine)
	}
}

func TestDefaultFramePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shop.json", "shop.frame.json"},
		{"dir/shop.toml", "dir/shop.frame.json"},
		{"shop", "shop.frame.json"},
	}
	for _, tt := range tests {
		if got := defaultFramePath(tt.in); got != tt.want {
			t.Errorf("defaultFramePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompletionIgnoresBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "schemaview.toml", "not toml at all [")

	_, out, err := execute(t, "--config", cfg, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "schemaview") {
		t.Errorf("completion output does not mention schemaview")
	}
}

func TestVersionFlag(t *testing.T) {
	_, out, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.HasPrefix(out, "schemaview ") {
		t.Errorf("--version output = %q, want schemaview prefix", out)
	}
}
