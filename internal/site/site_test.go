package site

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lfmartins/atelier/internal/config"
	"github.com/lfmartins/atelier/internal/loader"
	"github.com/lfmartins/atelier/internal/render"
	"github.com/lfmartins/atelier/internal/util/compression"
)

func testConfig(t *testing.T, dir string) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Content.PostsDir = filepath.Join(dir, "content", "posts")
	cfg.Content.AboutPath = filepath.Join(dir, "content", "about.md")
	cfg.Build.OutputDir = filepath.Join(dir, "public")
	return cfg
}

func newTestSite(t *testing.T, cfg *config.Config) *Site {
	t.Helper()

	renderer := render.New(render.Options{
		SyntaxHighlighting: cfg.Theme.SyntaxHighlighting.Enabled,
		HighlightTheme:     cfg.Theme.SyntaxHighlighting.Theme,
	})
	l := loader.New(loader.Config{
		PostsDir:  cfg.Content.PostsDir,
		AboutPath: cfg.Content.AboutPath,
	}, renderer)

	s, err := New(cfg, l)
	if err != nil {
		t.Fatalf("Failed to create site: %v", err)
	}
	return s
}

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func writeSampleContent(t *testing.T, dir string) {
	t.Helper()

	writeFixture(t, filepath.Join(dir, "content", "posts", "older.md"),
		"---\ntitle: Older Post\ndate: \"2024-01-01\"\n---\n# Older\n\nbody")
	writeFixture(t, filepath.Join(dir, "content", "posts", "newer.md"),
		"---\ntitle: Newer Post\ndate: \"2024-02-01\"\n---\n# Newer\n\n```go\nfunc main() {}\n```")
	writeFixture(t, filepath.Join(dir, "content", "about.md"),
		"---\ntitle: About me\n---\nI make things.")
}

func readOutput(t *testing.T, cfg *config.Config, parts ...string) string {
	t.Helper()

	path := filepath.Join(append([]string{cfg.Build.OutputDir}, parts...)...)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	writeSampleContent(t, dir)
	cfg := testConfig(t, dir)
	s := newTestSite(t, cfg)

	stats, err := s.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if stats.Posts != 2 {
		t.Errorf("Expected 2 posts, got %d", stats.Posts)
	}

	t.Run("index lists posts most recent first", func(t *testing.T) {
		index := readOutput(t, cfg, "index.html")

		newerAt := strings.Index(index, "Newer Post")
		olderAt := strings.Index(index, "Older Post")
		if newerAt < 0 || olderAt < 0 {
			t.Fatalf("Expected both post titles in index, got %q", index)
		}
		if newerAt > olderAt {
			t.Error("Expected newer post to be listed before older post")
		}
	})

	t.Run("per-post pages", func(t *testing.T) {
		newer := readOutput(t, cfg, "posts", "newer", "index.html")
		if !strings.Contains(newer, "Newer Post") {
			t.Error("Expected post title in page")
		}
		if !strings.Contains(newer, `<div class="highlight">`) {
			t.Error("Expected highlighted code block in page")
		}

		older := readOutput(t, cfg, "posts", "older", "index.html")
		if !strings.Contains(older, "<h1") {
			t.Error("Expected rendered heading in page")
		}
	})

	t.Run("about page", func(t *testing.T) {
		about := readOutput(t, cfg, "about", "index.html")
		if !strings.Contains(about, "I make things.") {
			t.Error("Expected about body in page")
		}
	})

	t.Run("syntax stylesheet", func(t *testing.T) {
		css := readOutput(t, cfg, "static", "syntax.css")
		if !strings.Contains(css, ".chroma") {
			t.Error("Expected chroma rules in stylesheet")
		}
	})
}

func TestBuildPrecompress(t *testing.T) {
	dir := t.TempDir()
	writeSampleContent(t, dir)
	cfg := testConfig(t, dir)
	cfg.Build.Precompress.Enabled = true
	s := newTestSite(t, cfg)

	if _, err := s.Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	index := readOutput(t, cfg, "index.html")

	t.Run("gzip sibling", func(t *testing.T) {
		blob, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, "index.html.gz"))
		if err != nil {
			t.Fatalf("Expected gzip sibling: %v", err)
		}
		plain, err := compression.GzipCompressor{}.Decompress(blob)
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}
		if string(plain) != index {
			t.Error("Expected gzip sibling to decompress to the original page")
		}
	})

	t.Run("zstd sibling", func(t *testing.T) {
		blob, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, "index.html.zst"))
		if err != nil {
			t.Fatalf("Expected zstd sibling: %v", err)
		}
		plain, err := compression.ZstdCompressor{}.Decompress(blob)
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}
		if string(plain) != index {
			t.Error("Expected zstd sibling to decompress to the original page")
		}
	})
}

func TestBuildFailsOnMissingContent(t *testing.T) {
	t.Run("missing posts directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, filepath.Join(dir, "content", "about.md"), "about")
		cfg := testConfig(t, dir)
		s := newTestSite(t, cfg)

		if _, err := s.Build(); err == nil {
			t.Error("Expected build to fail without a posts directory")
		}
	})

	t.Run("missing about file", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, filepath.Join(dir, "content", "posts", "p.md"),
			"---\ntitle: P\ndate: \"2024-01-01\"\n---\nbody")
		cfg := testConfig(t, dir)
		s := newTestSite(t, cfg)

		_, err := s.Build()
		if err == nil {
			t.Fatal("Expected build to fail without the about file")
		}
		if !errors.Is(err, loader.ErrContentNotFound) {
			t.Errorf("Expected ErrContentNotFound, got %v", err)
		}
	})
}
