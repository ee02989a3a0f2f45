// Package site renders the loader's output through the page templates into
// the static output directory.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/lfmartins/atelier/internal/cache"
	"github.com/lfmartins/atelier/internal/config"
	"github.com/lfmartins/atelier/internal/loader"
	"github.com/lfmartins/atelier/internal/model"
	"github.com/lfmartins/atelier/internal/theme"
	"github.com/lfmartins/atelier/internal/util"
	"github.com/lfmartins/atelier/internal/util/compression"
)

//go:embed templates/*.html
var templatesFS embed.FS

var siteLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	siteLogger = l
}

// Stats summarizes a completed build.
type Stats struct {
	Posts    int
	Files    int
	Duration time.Duration
}

type Site struct {
	cfg       *config.Config
	loader    *loader.Loader
	templates map[string]*template.Template

	syntaxCSSHash string
}

func New(cfg *config.Config, l *loader.Loader) (*Site, error) {
	templates := make(map[string]*template.Template)
	for _, name := range []string{config.TemplateIndex, config.TemplatePost, config.TemplateAbout} {
		tmpl, err := template.ParseFS(templatesFS,
			"templates/"+config.TemplateLayout,
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Site{cfg: cfg, loader: l, templates: templates}, nil
}

// Build generates the whole site. It fails on the first content defect;
// partial output is never a success.
func (s *Site) Build() (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	outDir := s.cfg.Build.OutputDir
	if err := os.RemoveAll(outDir); err != nil {
		return nil, fmt.Errorf("cleaning output directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if err := s.writeSyntaxCSS(outDir, stats); err != nil {
		return nil, err
	}

	if err := s.buildIndex(outDir, stats); err != nil {
		return nil, err
	}
	if err := s.buildPosts(outDir, stats); err != nil {
		return nil, err
	}
	if err := s.buildAbout(outDir, stats); err != nil {
		return nil, err
	}

	if s.cfg.Build.Precompress.Enabled {
		written, err := s.precompress(outDir)
		if err != nil {
			return nil, fmt.Errorf("precompressing output: %w", err)
		}
		stats.Files += written
	}

	stats.Duration = time.Since(start)
	siteLogger.Info().
		Int("posts", stats.Posts).
		Int("files", stats.Files).
		Dur("duration", stats.Duration).
		Msg("Site build finished")
	return stats, nil
}

func (s *Site) writeSyntaxCSS(outDir string, stats *Stats) error {
	css := []byte(theme.SyntaxCSS(s.cfg.Theme.SyntaxHighlighting.Theme))

	path := filepath.Join(outDir, config.OutputStaticDir, config.SyntaxCSSFile)
	if err := writeFile(path, css); err != nil {
		return fmt.Errorf("writing syntax stylesheet: %w", err)
	}

	s.syntaxCSSHash = util.ShortHash(css)
	cache.SetStaticHash(config.OutputStaticDir+"/"+config.SyntaxCSSFile, s.syntaxCSSHash)
	stats.Files++
	return nil
}

func (s *Site) buildIndex(outDir string, stats *Stats) error {
	posts, err := s.loader.SortedPostsData()
	if err != nil {
		return err
	}

	pd := s.pageData("/")
	pd.Posts = posts

	path := filepath.Join(outDir, config.OutputIndexFile)
	if err := s.renderPage(config.TemplateIndex, path, pd); err != nil {
		return err
	}
	stats.Files++
	return nil
}

func (s *Site) buildPosts(outDir string, stats *Stats) error {
	ids, err := s.loader.AllPostIDs()
	if err != nil {
		return err
	}

	for _, id := range ids {
		post, err := s.loader.PostData(id)
		if err != nil {
			return err
		}

		pd := s.pageData("/" + config.OutputPostsDir + "/" + string(id) + "/")
		pd.Post = post

		path := filepath.Join(outDir, config.OutputPostsDir, string(id), config.OutputIndexFile)
		if err := s.renderPage(config.TemplatePost, path, pd); err != nil {
			return err
		}

		siteLogger.Debug().Str("post_id", string(id)).Msg("Rendered post page")
		stats.Posts++
		stats.Files++
	}
	return nil
}

func (s *Site) buildAbout(outDir string, stats *Stats) error {
	page, err := s.loader.AboutPageData()
	if err != nil {
		return err
	}

	pd := s.pageData("/" + config.OutputAboutDir + "/")
	pd.Page = page

	path := filepath.Join(outDir, config.OutputAboutDir, config.OutputIndexFile)
	if err := s.renderPage(config.TemplateAbout, path, pd); err != nil {
		return err
	}
	stats.Files++
	return nil
}

func (s *Site) pageData(pageURL string) *model.PageData {
	return &model.PageData{
		SiteName:        s.cfg.Site.Name,
		SiteDescription: s.cfg.Site.Description,
		Author:          s.cfg.Site.Author,
		BaseURL:         s.cfg.Site.BaseURL,
		PageURL:         pageURL,
		SyntaxTheme:     s.cfg.Theme.SyntaxHighlighting.Theme,
		SyntaxCSSHash:   s.syntaxCSSHash,
	}
}

func (s *Site) renderPage(name, path string, pd *model.PageData) error {
	tmpl, ok := s.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, config.TemplateLayout, pd); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return writeFile(path, buf.Bytes())
}

func (s *Site) precompress(outDir string) (int, error) {
	var codecs []compression.Compressor
	for _, name := range s.cfg.Build.Precompress.Algorithms {
		codec, err := compression.ForAlgorithm(name)
		if err != nil {
			return 0, err
		}
		codecs = append(codecs, codec)
	}

	written := 0
	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !compressible(path) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, codec := range codecs {
			blob, err := codec.Compress(data)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path+codec.Ext(), blob, 0o644); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	return written, err
}

func compressible(path string) bool {
	switch filepath.Ext(path) {
	case ".html", ".css", ".js", ".xml", ".txt":
		return true
	}
	return false
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
