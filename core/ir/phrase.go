package ir

import "strings"

// Inline is one run of inline content inside a paragraph or phrase.
type Inline interface {
	// Text returns the plain-text rendering of the run.
	Text() string
}

// TextRun is a literal text run.
type TextRun string

// Text returns the run itself.
func (t TextRun) Text() string { return string(t) }

// Linebreak is a structural manual line break; it carries no text.
type Linebreak struct{}

// Text returns the empty string.
func (Linebreak) Text() string { return "" }

// Phrase is a sequence of inline runs. It is also the plain, unstyled
// phrase container produced for type expressions and unlinked references.
type Phrase struct {
	Parts []Inline
}

// Text concatenates the text of all runs.
func (p Phrase) Text() string {
	var sb strings.Builder
	for _, part := range p.Parts {
		sb.WriteString(part.Text())
	}
	return sb.String()
}

// IsEmpty reports whether the phrase has no runs.
func (p Phrase) IsEmpty() bool { return len(p.Parts) == 0 }

// Emphasised is an emphasised phrase.
type Emphasised struct {
	Phrase
}

// Strong is a strongly emphasised phrase.
type Strong struct {
	Phrase
}

// Monospaced is a monospaced phrase.
type Monospaced struct {
	Phrase
}

// EntityRef is a phrase linked to a resolved entity.
type EntityRef struct {
	Phrase
	Target Entity
}

// Text returns the literal phrase text, falling back to the target's
// fully qualified name when the reference carries none.
func (r EntityRef) Text() string {
	if text := r.Phrase.Text(); text != "" {
		return text
	}
	return FullyQualifiedName(r.Target)
}

// UrlLink is a phrase linked to an external URL.
type UrlLink struct {
	Phrase
	URL string
}

// Text returns the literal phrase text, falling back to the URL.
func (u UrlLink) Text() string {
	if text := u.Phrase.Text(); text != "" {
		return text
	}
	return u.URL
}
