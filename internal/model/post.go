// Package model defines the plain data shapes the content pipeline hands to
// the presentation layer.
package model

import (
	"html/template"

	"github.com/lfmartins/atelier/internal/frontmatter"
)

// PostID is a post's filename with the markdown extension stripped. It is
// the routable key for the post.
type PostID string

// PostMeta is the metadata-only view of a post used on the listing page.
// The body is deliberately not rendered for listings.
type PostMeta struct {
	ID PostID
	frontmatter.Matter
}

// Post is a fully loaded post: metadata plus rendered HTML.
type Post struct {
	ID PostID
	frontmatter.Matter

	ContentHTML template.HTML

	// Hash of the raw markdown, used for cache busting.
	// We cannot use the rendered content because it varies with renderer options.
	ContentHash string
}

// Page is a single standalone page (the about page). Same shape as Post but
// without an identifier.
type Page struct {
	frontmatter.Matter

	ContentHTML template.HTML
	ContentHash string
}
