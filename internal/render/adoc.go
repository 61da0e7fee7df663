// Package render turns the resolved symbol graph into AsciiDoc pages.
// The linearizers in this file map the Block and Phrase trees onto
// AsciiDoc markup; the page planner and template engine decide which
// entities get a page and what it looks like.
package render

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/CedarDoc/core/ir"
)

// Inline renders one inline run to AsciiDoc.
func Inline(in ir.Inline) string {
	switch v := in.(type) {
	case ir.TextRun:
		return string(v)
	case ir.Linebreak:
		return " +\n"
	case ir.Strong:
		return "*" + Inlines(v.Parts) + "*"
	case ir.Emphasised:
		return "_" + Inlines(v.Parts) + "_"
	case ir.Monospaced:
		return "`" + Inlines(v.Parts) + "`"
	case ir.EntityRef:
		return "xref:" + ir.OutputFile(v.Target) + "[" + v.Text() + "]"
	case ir.UrlLink:
		return v.URL + "[" + v.Text() + "]"
	case ir.Phrase:
		return Inlines(v.Parts)
	default:
		return in.Text()
	}
}

// Inlines renders a run sequence.
func Inlines(parts []ir.Inline) string {
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(Inline(part))
	}
	return sb.String()
}

// PhraseText renders a phrase with its cross-references intact.
func PhraseText(p ir.Phrase) string { return Inlines(p.Parts) }

// Blocks renders a block sequence, blocks separated by blank lines.
func Blocks(blocks []ir.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := adocBlock(b, 0); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func adocBlock(b ir.Block, depth int) string {
	switch v := b.(type) {
	case ir.Paragraph:
		return Inlines(v.Parts)
	case ir.List:
		return adocList(v, depth)
	case ir.Section:
		return adocSection(v, depth)
	case ir.CodeBlock:
		return "[source,cpp]\n----\n" + strings.Join(v.Lines, "\n") + "\n----"
	case ir.ParameterList:
		return adocParameterList(v)
	case ir.Table:
		return adocTable(v)
	default:
		return ""
	}
}

// orderedStyles maps the input numbering kinds onto AsciiDoc list
// styles. Arabic is the default and needs no attribute.
var orderedStyles = map[string]string{
	ir.ListLowerLatin: "loweralpha",
	ir.ListUpperLatin: "upperalpha",
	ir.ListLowerRoman: "lowerroman",
	ir.ListUpperRoman: "upperroman",
}

func adocList(list ir.List, depth int) string {
	marker := strings.Repeat("*", depth+1)
	if list.IsOrdered {
		marker = strings.Repeat(".", depth+1)
	}

	var sb strings.Builder
	if style, ok := orderedStyles[list.Kind]; ok && list.IsOrdered {
		sb.WriteString("[" + style + "]\n")
	}
	for i, item := range list.Items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(marker + " ")
		for j, block := range item {
			if j > 0 {
				sb.WriteString("\n+\n")
			}
			sb.WriteString(adocBlock(block, depth+1))
		}
	}
	return sb.String()
}

// sectionTitles maps the tagged-section vocabulary onto display titles.
// Notes, warnings, and attention callouts become admonitions instead.
var sectionTitles = map[string]string{
	ir.SectionSee:            "See Also",
	ir.SectionReturns:        "Return Value",
	ir.SectionAuthor:         "Author",
	ir.SectionAuthors:        "Authors",
	ir.SectionVersion:        "Version",
	ir.SectionSince:          "Since",
	ir.SectionDate:           "Date",
	ir.SectionPreconditions:  "Preconditions",
	ir.SectionPostconditions: "Postconditions",
	ir.SectionCopyright:      "Copyright",
	ir.SectionInvariants:     "Invariants",
	ir.SectionRemarks:        "Remarks",
	ir.SectionRCS:            "RCS",
}

var admonitions = map[string]string{
	ir.SectionNote:      "NOTE",
	ir.SectionWarning:   "WARNING",
	ir.SectionAttention: "IMPORTANT",
}

func adocSection(sec ir.Section, depth int) string {
	body := make([]string, 0, len(sec.Blocks))
	for _, b := range sec.Blocks {
		if s := adocBlock(b, depth); s != "" {
			body = append(body, s)
		}
	}
	content := strings.Join(body, "\n\n")

	if label, ok := admonitions[sec.Kind]; ok {
		return "[" + label + "]\n====\n" + content + "\n===="
	}

	title := sectionTitles[sec.Kind]
	if sec.Kind == ir.SectionCustom {
		title = Inlines(sec.Title.Parts)
	}
	if title == "" {
		return content
	}
	return "." + title + "\n[%collapsible%open]\n====\n" + content + "\n===="
}

// parameterListTitles maps the parameter-list kinds onto table titles.
var parameterListTitles = map[string]string{
	ir.ParamsList:         "Parameters",
	ir.ReturnValuesList:   "Return Values",
	ir.ExceptionsList:     "Exceptions",
	ir.TemplateParamsList: "Template Parameters",
}

func adocParameterList(pl ir.ParameterList) string {
	title := parameterListTitles[pl.Kind]
	if title == "" {
		title = "Parameters"
	}

	var sb strings.Builder
	sb.WriteString("." + title + "\n")
	sb.WriteString("[cols=\"1,3\"]\n|===\n|Name |Description\n")
	for _, item := range pl.Items {
		names := make([]string, 0, len(item.Params))
		for _, p := range item.Params {
			name := PhraseText(p.Name)
			if t := PhraseText(p.Type); t != "" {
				name = t + " " + name
			}
			names = append(names, "`"+name+"`")
		}
		sb.WriteString("\n|" + strings.Join(names, ", ") + "\n")
		sb.WriteString("|" + Blocks(item.Blocks) + "\n")
	}
	sb.WriteString("|===")
	return sb.String()
}

func adocTable(t ir.Table) string {
	var sb strings.Builder
	if t.Caption != nil {
		sb.WriteString("." + Inlines(t.Caption.Parts) + "\n")
	}
	sb.WriteString(fmt.Sprintf("[cols=%d]\n|===\n", t.Cols))
	for _, row := range t.Rows {
		sb.WriteByte('\n')
		for _, cell := range row {
			var spec string
			if cell.ColSpan > 1 {
				spec += fmt.Sprintf("%d+", cell.ColSpan)
			}
			if cell.RowSpan > 1 {
				spec += fmt.Sprintf(".%d+", cell.RowSpan)
			}
			if cell.IsHeader {
				spec += "h"
			}
			sb.WriteString(spec + "|" + Blocks(cell.Blocks) + "\n")
		}
	}
	sb.WriteString("|===")
	return sb.String()
}
