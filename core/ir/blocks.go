package ir

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/CedarDoc/core/doxml"
)

// MakeBlocks converts a description element's content into a sequence of
// blocks. Inline content accumulates into the current paragraph; block
// elements flush it first. A nil element yields no blocks.
func MakeBlocks(elem *doxml.Element, idx *Index) ([]Block, error) {
	if elem == nil {
		return nil, nil
	}

	var result []Block
	var cur []Inline

	// finishParagraph trims the accumulated runs and emits a paragraph.
	// The first text run loses leading whitespace and the last loses
	// trailing whitespace, dropping either run when nothing remains.
	// Text directly after a manual line break also loses its leading
	// whitespace, which would otherwise misrender as literal indentation.
	finishParagraph := func() {
		if len(cur) > 0 {
			if run, ok := cur[0].(TextRun); ok {
				run = TextRun(strings.TrimLeftFunc(string(run), unicode.IsSpace))
				if run == "" {
					cur = cur[1:]
				} else {
					cur[0] = run
				}
			}
		}
		if len(cur) > 0 {
			last := len(cur) - 1
			if run, ok := cur[last].(TextRun); ok {
				run = TextRun(strings.TrimRightFunc(string(run), unicode.IsSpace))
				if run == "" {
					cur = cur[:last]
				} else {
					cur[last] = run
				}
			}
		}
		for n := 1; n < len(cur); n++ {
			if _, isBreak := cur[n-1].(Linebreak); !isBreak {
				continue
			}
			if run, ok := cur[n].(TextRun); ok {
				cur[n] = TextRun(strings.TrimLeftFunc(string(run), unicode.IsSpace))
			}
		}
		if len(cur) > 0 {
			result = append(result, Paragraph{Parts: cur})
		}
		cur = nil
	}

	if text := elem.Text(); text != "" {
		cur = append(cur, TextRun(removeEndlines(text)))
	}

	for _, child := range elem.Children() {
		switch child.Name() {
		case "itemizedlist", "orderedlist":
			finishParagraph()
			block, err := makeList(child, idx)
			if err != nil {
				return nil, err
			}
			result = append(result, block)
		case "simplesect":
			finishParagraph()
			block, err := makeSection(child, idx)
			if err != nil {
				return nil, err
			}
			result = append(result, block)
		case "programlisting":
			finishParagraph()
			block, err := makeCodeBlock(child)
			if err != nil {
				return nil, err
			}
			result = append(result, block)
		case "parameterlist":
			finishParagraph()
			block, err := makeParameters(child, idx)
			if err != nil {
				return nil, err
			}
			result = append(result, block)
		case "table":
			finishParagraph()
			block, err := makeTable(child, idx)
			if err != nil {
				return nil, err
			}
			result = append(result, block)
		case "para":
			finishParagraph()
			blocks, err := MakeBlocks(child, idx)
			if err != nil {
				return nil, err
			}
			result = append(result, blocks...)
		default:
			part, err := makePhrase(child, idx, false)
			if err != nil {
				return nil, err
			}
			cur = append(cur, part)
		}
		if tail := child.Tail(); tail != "" {
			cur = append(cur, TextRun(removeEndlines(tail)))
		}
	}

	finishParagraph()
	return result, nil
}

func makeList(elem *doxml.Element, idx *Index) (List, error) {
	list := List{
		Kind:      elem.Attr("type"),
		IsOrdered: elem.Name() == "orderedlist",
	}
	for _, child := range elem.Children() {
		if child.Name() != "listitem" {
			return List{}, fmt.Errorf("unexpected <%s> inside <%s>", child.Name(), elem.Name())
		}
		blocks, err := MakeBlocks(child, idx)
		if err != nil {
			return List{}, err
		}
		list.Items = append(list.Items, ListItem(blocks))
	}
	return list, nil
}

var sectionKinds = map[string]bool{
	SectionSee:            true,
	SectionReturns:        true,
	SectionAuthor:         true,
	SectionAuthors:        true,
	SectionVersion:        true,
	SectionSince:          true,
	SectionDate:           true,
	SectionNote:           true,
	SectionWarning:        true,
	SectionPreconditions:  true,
	SectionPostconditions: true,
	SectionCopyright:      true,
	SectionInvariants:     true,
	SectionRemarks:        true,
	SectionAttention:      true,
	SectionCustom:         true,
	SectionRCS:            true,
}

func makeSection(elem *doxml.Element, idx *Index) (Section, error) {
	sec := Section{Kind: elem.Attr("kind")}
	if !sectionKinds[sec.Kind] {
		return Section{}, fmt.Errorf("unrecognized section kind %q", sec.Kind)
	}

	children := elem.Children()
	if len(children) > 0 && children[0].Name() == "title" {
		parts, err := phraseContent(children[0], idx, false)
		if err != nil {
			return Section{}, err
		}
		sec.Title = Paragraph{Parts: parts}
	}
	for _, child := range children {
		if child.Name() != "para" {
			continue
		}
		blocks, err := MakeBlocks(child, idx)
		if err != nil {
			return Section{}, err
		}
		sec.Blocks = append(sec.Blocks, blocks...)
	}
	return sec, nil
}

func makeParameters(elem *doxml.Element, idx *Index) (ParameterList, error) {
	pl := ParameterList{Kind: elem.Attr("kind")}
	for _, item := range elem.Children() {
		if item.Name() != "parameteritem" {
			return ParameterList{}, fmt.Errorf("unexpected <%s> inside <parameterlist>", item.Name())
		}

		var desc *doxml.Element
		var params []ParameterItem
		for _, part := range item.Children() {
			if part.Name() == "parameterdescription" {
				if desc != nil {
					return ParameterList{}, fmt.Errorf("parameter item with two descriptions")
				}
				desc = part
				continue
			}
			if part.Name() != "parameternamelist" {
				return ParameterList{}, fmt.Errorf("unexpected <%s> inside <parameteritem>", part.Name())
			}

			name := part.Find("parametername")
			var direction string
			if name != nil {
				direction = name.Attr("direction")
			}
			typ, err := textWithRefs(part.Find("parametertype"), idx)
			if err != nil {
				return ParameterList{}, err
			}
			text, err := textWithRefs(name, idx)
			if err != nil {
				return ParameterList{}, err
			}
			params = append(params, ParameterItem{Type: typ, Name: text, Direction: direction})
		}
		if desc == nil {
			return ParameterList{}, fmt.Errorf("parameter item without a description")
		}

		blocks, err := MakeBlocks(desc, idx)
		if err != nil {
			return ParameterList{}, err
		}
		pl.Items = append(pl.Items, ParameterDescription{Blocks: blocks, Params: params})
	}
	return pl, nil
}

// makeCodeBlock flattens a highlighted listing back into plain source
// lines. Highlight runs contribute their text, <sp> markers become
// single spaces, and references contribute their leading text only.
func makeCodeBlock(elem *doxml.Element) (CodeBlock, error) {
	var cb CodeBlock
	for _, line := range elem.Children() {
		if line.Name() != "codeline" {
			return CodeBlock{}, fmt.Errorf("unexpected <%s> inside <programlisting>", line.Name())
		}
		var text strings.Builder
		for _, hl := range line.Children() {
			if hl.Name() != "highlight" {
				return CodeBlock{}, fmt.Errorf("unexpected <%s> inside <codeline>", hl.Name())
			}
			text.WriteString(hl.Text())
			for _, part := range hl.Children() {
				switch part.Name() {
				case "sp":
					text.WriteString(" ")
				case "ref":
					text.WriteString(part.Text())
				}
				text.WriteString(part.Tail())
			}
			text.WriteString(hl.Tail())
		}
		cb.Lines = append(cb.Lines, text.String())
	}
	return cb, nil
}

func intAttr(elem *doxml.Element, name string) (int, error) {
	s := elem.Attr(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s attribute %q: %w", name, s, err)
	}
	return n, nil
}

func makeTable(elem *doxml.Element, idx *Index) (Table, error) {
	cols, err := intAttr(elem, "cols")
	if err != nil {
		return Table{}, err
	}
	t := Table{Cols: cols, Width: elem.Attr("width")}

	rows := elem.Children()
	if len(rows) > 0 && rows[0].Name() == "caption" {
		parts, err := phraseContent(rows[0], idx, false)
		if err != nil {
			return Table{}, err
		}
		caption := Paragraph{Parts: parts}
		t.Caption = &caption
		rows = rows[1:]
	}

	for _, row := range rows {
		if row.Name() != "row" {
			return Table{}, fmt.Errorf("unexpected <%s> inside <table>", row.Name())
		}
		var cells []Cell
		for _, c := range row.Children() {
			colSpan, err := intAttr(c, "colspan")
			if err != nil {
				return Table{}, err
			}
			rowSpan, err := intAttr(c, "rowspan")
			if err != nil {
				return Table{}, err
			}
			blocks, err := MakeBlocks(c, idx)
			if err != nil {
				return Table{}, err
			}
			cells = append(cells, Cell{
				Blocks:   blocks,
				ColSpan:  colSpan,
				RowSpan:  rowSpan,
				IsHeader: c.Attr("thead") == "yes",
				HAlign:   c.Attr("align"),
				VAlign:   c.Attr("valign"),
				Width:    c.Attr("width"),
				Role:     c.Attr("class"),
			})
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}
