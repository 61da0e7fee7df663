package ir

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
)

// removeEndlines deletes carriage returns and newlines outright. The
// surrounding characters join up without a substitute space; line
// wrapping inside the source XML is not significant.
func removeEndlines(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

// phraseContent converts an element's mixed content into inline runs:
// leading text, then each child as a styled phrase followed by its tail
// text.
func phraseContent(elem *doxml.Element, idx *Index, allowMissingRefs bool) ([]Inline, error) {
	if elem == nil {
		return nil, nil
	}
	var result []Inline
	if text := elem.Text(); text != "" {
		result = append(result, TextRun(removeEndlines(text)))
	}
	for _, child := range elem.Children() {
		part, err := makePhrase(child, idx, allowMissingRefs)
		if err != nil {
			return nil, err
		}
		result = append(result, part)
		if tail := child.Tail(); tail != "" {
			result = append(result, TextRun(removeEndlines(tail)))
		}
	}
	return result, nil
}

// makePhrase converts one inline markup element. The inline vocabulary
// is closed; an unrecognized tag is a fatal input error.
func makePhrase(elem *doxml.Element, idx *Index, allowMissingRefs bool) (Inline, error) {
	switch elem.Name() {
	case "bold":
		parts, err := phraseContent(elem, idx, allowMissingRefs)
		if err != nil {
			return nil, err
		}
		return Strong{Phrase{Parts: parts}}, nil
	case "computeroutput", "verbatim":
		parts, err := phraseContent(elem, idx, allowMissingRefs)
		if err != nil {
			return nil, err
		}
		return Monospaced{Phrase{Parts: parts}}, nil
	case "emphasis":
		parts, err := phraseContent(elem, idx, allowMissingRefs)
		if err != nil {
			return nil, err
		}
		return Emphasised{Phrase{Parts: parts}}, nil
	case "ulink":
		parts, err := phraseContent(elem, idx, allowMissingRefs)
		if err != nil {
			return nil, err
		}
		return UrlLink{Phrase: Phrase{Parts: parts}, URL: elem.Attr("url")}, nil
	case "linebreak":
		return Linebreak{}, nil
	case "ref":
		return makeEntityRef(elem, idx, "", allowMissingRefs)
	default:
		return nil, fmt.Errorf("unrecognized inline element <%s>", elem.Name())
	}
}

// makeEntityRef converts a reference element into an EntityRef bound to
// the indexed target. An empty refid is malformed input. A refid the
// index does not know degrades to an unlinked phrase when
// allowMissingRefs is set (type expressions may point at undocumented
// entities), and is a fatal error otherwise.
func makeEntityRef(elem *doxml.Element, idx *Index, refid string, allowMissingRefs bool) (Inline, error) {
	if refid == "" {
		refid = elem.Attr("refid")
	}
	if refid == "" {
		return nil, fmt.Errorf("<%s> element without refid", elem.Name())
	}

	parts, err := phraseContent(elem, idx, allowMissingRefs)
	if err != nil {
		return nil, err
	}
	if target, ok := idx.Get(refid); ok {
		return EntityRef{Phrase: Phrase{Parts: parts}, Target: target}, nil
	}
	if allowMissingRefs {
		return Phrase{Parts: parts}, nil
	}
	return nil, fmt.Errorf("dangling reference %q", refid)
}

// textWithRefs converts an element's mixed content into one phrase,
// tolerating references to entities outside the documented surface.
func textWithRefs(elem *doxml.Element, idx *Index) (Phrase, error) {
	parts, err := phraseContent(elem, idx, true)
	if err != nil {
		return Phrase{}, err
	}
	return Phrase{Parts: parts}, nil
}

// resolveType converts a type expression, dropping a leading
// "constexpr" specifier. The flag is carried separately; repeating it
// inside the type text would double it up in declarations.
func resolveType(elem *doxml.Element, idx *Index) (Phrase, error) {
	result, err := textWithRefs(elem, idx)
	if err != nil {
		return Phrase{}, err
	}
	if len(result.Parts) > 0 {
		if run, ok := result.Parts[0].(TextRun); ok && strings.HasPrefix(string(run), "constexpr") {
			trimmed := strings.TrimLeft(strings.TrimPrefix(string(run), "constexpr"), " \t")
			result.Parts[0] = TextRun(trimmed)
		}
	}
	return result, nil
}
