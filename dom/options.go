package dom

// Option configures a Document.
type Option func(*config)

type config struct {
	viewportWidth  float64
	viewportHeight float64
	fontSize       float64
	lineHeight     float64
	userAgentCSS   string
}

// DefaultUserAgentCSS is the user-agent stylesheet documents start with.
// Display defaults per element type are built in and need not be listed.
const DefaultUserAgentCSS = `
body { margin: 8px; }
p, ul, ol, dl, blockquote, figure { margin-top: 1em; margin-bottom: 1em; }
ul, ol { padding-left: 40px; }
h1 { font-size: 2em; margin-top: 0.67em; margin-bottom: 0.67em; }
h2 { font-size: 1.5em; margin-top: 0.83em; margin-bottom: 0.83em; }
h3 { font-size: 1.17em; margin-top: 1em; margin-bottom: 1em; }
`

func defaultConfig() config {
	return config{
		viewportWidth:  1024,
		viewportHeight: 768,
		fontSize:       16,
		lineHeight:     1.2,
		userAgentCSS:   DefaultUserAgentCSS,
	}
}

// WithViewport sets the size of the viewport in CSS pixels. It is the
// initial containing block for layout.
func WithViewport(width, height float64) Option {
	return func(c *config) {
		if width > 0 {
			c.viewportWidth = width
		}
		if height > 0 {
			c.viewportHeight = height
		}
	}
}

// WithFontSize sets the root font size in CSS pixels.
func WithFontSize(px float64) Option {
	return func(c *config) {
		if px > 0 {
			c.fontSize = px
		}
	}
}

// WithLineHeight sets the factor used for `line-height: normal`.
func WithLineHeight(factor float64) Option {
	return func(c *config) {
		if factor > 0 {
			c.lineHeight = factor
		}
	}
}

// WithUserAgentCSS replaces the default user-agent stylesheet.
// An empty string disables user-agent styles.
func WithUserAgentCSS(css string) Option {
	return func(c *config) {
		c.userAgentCSS = css
	}
}
