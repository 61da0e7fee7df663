package ir

import "strings"

// Block is one block-level unit of documentation content.
type Block interface {
	isBlock()
}

// Paragraph is a sequence of inline runs.
type Paragraph struct {
	Parts []Inline
}

func (Paragraph) isBlock() {}

// Text concatenates the text of all runs.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, part := range p.Parts {
		sb.WriteString(part.Text())
	}
	return sb.String()
}

// Ordered-list numbering kinds, from the input format's type attribute.
const (
	ListArabic     = "1"
	ListLowerLatin = "a"
	ListUpperLatin = "A"
	ListLowerRoman = "i"
	ListUpperRoman = "I"
)

// ListItem is the block sequence of one list item.
type ListItem []Block

// List is an ordered or unordered list.
type List struct {
	// Kind is the numbering kind for ordered lists, "" for unordered.
	Kind      string
	IsOrdered bool
	Items     []ListItem
}

func (List) isBlock() {}

// Section kinds form a closed vocabulary.
const (
	SectionSee            = "see"
	SectionReturns        = "return"
	SectionAuthor         = "author"
	SectionAuthors        = "authors"
	SectionVersion        = "version"
	SectionSince          = "since"
	SectionDate           = "date"
	SectionNote           = "note"
	SectionWarning        = "warning"
	SectionPreconditions  = "pre"
	SectionPostconditions = "post"
	SectionCopyright      = "copyright"
	SectionInvariants     = "invariant"
	SectionRemarks        = "remark"
	SectionAttention      = "attention"
	SectionCustom         = "par"
	SectionRCS            = "rcs"
)

// Section is a tagged documentation section such as a note or warning.
type Section struct {
	Kind   string
	Title  Paragraph
	Blocks []Block
}

func (Section) isBlock() {}

// Parameter list kinds.
const (
	ParamsList         = "param"
	ReturnValuesList   = "retval"
	ExceptionsList     = "exception"
	TemplateParamsList = "templateparam"
)

// ParameterItem names one documented parameter.
type ParameterItem struct {
	Type      Phrase
	Name      Phrase
	Direction string
}

// IsIn reports whether the parameter carries input.
func (p ParameterItem) IsIn() bool {
	return p.Direction == "in" || p.Direction == "inout"
}

// IsOut reports whether the parameter carries output.
func (p ParameterItem) IsOut() bool {
	return p.Direction == "out" || p.Direction == "inout"
}

// ParameterDescription pairs one description with the parameters it covers.
type ParameterDescription struct {
	Blocks []Block
	Params []ParameterItem
}

// ParameterList documents parameters, return values, exceptions, or
// template parameters.
type ParameterList struct {
	Kind  string
	Items []ParameterDescription
}

func (ParameterList) isBlock() {}

// CodeBlock is a literal code listing, one string per line.
type CodeBlock struct {
	Lines []string
}

func (CodeBlock) isBlock() {}

// Cell is one table cell.
type Cell struct {
	Blocks   []Block
	ColSpan  int
	RowSpan  int
	IsHeader bool
	HAlign   string
	VAlign   string
	Width    string
	Role     string
}

// Table is a documentation table.
type Table struct {
	Cols    int
	Width   string
	Caption *Paragraph
	Rows    [][]Cell
}

func (Table) isBlock() {}
