package cssom

import "github.com/npillmayer/domchain/dom/style"

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple implementations of CSS-stylesheets from the
// computation of styles, we introduce an interface for CSS stylesheets.
// Clients will have to provide a concrete implementation of this interface
// (e.g., see package douceuradapter).
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is the type stylesheets consists of. Inline styles (from an element's
// `style` attribute) are represented as a rule with an empty selector.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}

// Origin denotes where a stylesheet comes from.
type Origin uint8

// Origins take part in the cascade, in ascending precedence for normal
// declarations.
const (
	UserAgentOrigin Origin = iota
	AuthorOrigin
	InlineOrigin
)

func (o Origin) String() string {
	switch o {
	case UserAgentOrigin:
		return "user-agent"
	case AuthorOrigin:
		return "author"
	case InlineOrigin:
		return "inline"
	}
	return "unknown-origin"
}
