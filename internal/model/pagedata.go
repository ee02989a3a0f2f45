package model

// PageData is the envelope every template receives: site identity plus the
// per-page payload.
type PageData struct {
	SiteName        string
	SiteDescription string
	Author          string
	BaseURL         string

	PageURL string

	SyntaxTheme string

	// Hash of the generated syntax stylesheet, used for cache busting.
	SyntaxCSSHash string

	// Exactly one of these is set depending on the page being rendered.
	Posts []PostMeta
	Post  *Post
	Page  *Page
}

func (pd *PageData) Title() string {
	switch {
	case pd.Post != nil && pd.Post.Matter.Title != "":
		return pd.Post.Matter.Title
	case pd.Page != nil && pd.Page.Matter.Title != "":
		return pd.Page.Matter.Title
	default:
		return pd.SiteName
	}
}
