package config

const (
	MarkdownExt = ".md"

	// Output layout inside Build.OutputDir.
	OutputPostsDir  = "posts"
	OutputAboutDir  = "about"
	OutputStaticDir = "static"
	OutputIndexFile = "index.html"
	SyntaxCSSFile   = "syntax.css"

	TemplateLayout = "layout.html"
	TemplateIndex  = "index.html"
	TemplatePost   = "post.html"
	TemplateAbout  = "about.html"
)
