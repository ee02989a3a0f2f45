// Package loader implements the content pipeline: read a file from disk,
// parse its front matter, render the body, and hand plain data structures to
// the presentation layer. Every operation is a single-pass transformation;
// nothing is cached or retried, and any content defect fails the build.
package loader

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lfmartins/atelier/internal/config"
	"github.com/lfmartins/atelier/internal/frontmatter"
	"github.com/lfmartins/atelier/internal/model"
	"github.com/lfmartins/atelier/internal/render"
	"github.com/lfmartins/atelier/internal/util"
)

// ErrContentNotFound is returned when a requested identifier has no
// corresponding file. Fatal for the operation; never retried.
var ErrContentNotFound = errors.New("content not found")

var loaderLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	loaderLogger = l
}

// Config pins the content locations explicitly instead of assuming the
// process working directory.
type Config struct {
	PostsDir  string
	AboutPath string
}

type Loader struct {
	postsDir  string
	aboutPath string
	renderer  *render.Renderer
}

func New(cfg Config, renderer *render.Renderer) *Loader {
	return &Loader{
		postsDir:  cfg.PostsDir,
		aboutPath: cfg.AboutPath,
		renderer:  renderer,
	}
}

// AllPostIDs enumerates the posts directory and returns one identifier per
// markdown file: the filename with its extension stripped.
func (l *Loader) AllPostIDs() ([]model.PostID, error) {
	entries, err := os.ReadDir(l.postsDir)
	if err != nil {
		return nil, fmt.Errorf("reading posts directory: %w", err)
	}

	var ids []model.PostID
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), config.MarkdownExt) {
			continue
		}
		ids = append(ids, model.PostID(strings.TrimSuffix(entry.Name(), config.MarkdownExt)))
	}

	return ids, nil
}

// SortedPostsData returns the metadata of every post, most recent first.
// Bodies are not rendered here; the listing page only needs metadata.
// Files are read and parsed concurrently, then sorted, so the result is
// deterministic regardless of enumeration order.
func (l *Loader) SortedPostsData() ([]model.PostMeta, error) {
	ids, err := l.AllPostIDs()
	if err != nil {
		return nil, err
	}

	metas := make([]model.PostMeta, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			meta, err := l.postMeta(id)
			if err != nil {
				return err
			}
			metas[i] = meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Dates are compared lexically; authors keep them in ISO-8601. Equal
	// dates fall back to the identifier so ordering never depends on the
	// filesystem.
	slices.SortFunc(metas, func(a, b model.PostMeta) int {
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})

	loaderLogger.Debug().Int("count", len(metas)).Msg("Loaded post listing")
	return metas, nil
}

// PostData loads a single post by identifier: front matter plus the body
// rendered to HTML.
func (l *Loader) PostData(id model.PostID) (*model.Post, error) {
	raw, err := readContent(l.postPath(id))
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", id, err)
	}

	matter, body, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", id, err)
	}

	html, err := l.renderer.Render(body)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", id, err)
	}

	return &model.Post{
		ID:          id,
		Matter:      matter,
		ContentHTML: template.HTML(html),
		ContentHash: util.ContentHash(raw),
	}, nil
}

// AboutPageData loads the single about document through the same pipeline as
// a post, minus the identifier.
func (l *Loader) AboutPageData() (*model.Page, error) {
	raw, err := readContent(l.aboutPath)
	if err != nil {
		return nil, fmt.Errorf("about page: %w", err)
	}

	matter, body, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("about page: %w", err)
	}

	html, err := l.renderer.Render(body)
	if err != nil {
		return nil, fmt.Errorf("about page: %w", err)
	}

	return &model.Page{
		Matter:      matter,
		ContentHTML: template.HTML(html),
		ContentHash: util.ContentHash(raw),
	}, nil
}

func (l *Loader) postPath(id model.PostID) string {
	return filepath.Join(l.postsDir, string(id)+config.MarkdownExt)
}

func (l *Loader) postMeta(id model.PostID) (model.PostMeta, error) {
	raw, err := readContent(l.postPath(id))
	if err != nil {
		return model.PostMeta{}, fmt.Errorf("post %q: %w", id, err)
	}

	matter, _, err := frontmatter.Parse(raw)
	if err != nil {
		return model.PostMeta{}, fmt.Errorf("post %q: %w", id, err)
	}

	return model.PostMeta{ID: id, Matter: matter}, nil
}

func readContent(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}
