package render

import (
	"strings"

	"github.com/FocuswithJustin/CedarDoc/core/ir"
)

// Declaration renders an entity's C++ synopsis declaration as plain
// text for a source listing. Overload sets list every overload.
func Declaration(e ir.Entity) string {
	switch v := e.(type) {
	case *ir.Class:
		return templateHeader(v.TemplateParameters) + v.Declarator() + " " + v.Name() + ";"
	case *ir.Namespace:
		return "namespace " + v.Name() + ";"
	case *ir.Enum:
		decl := v.Declarator() + " " + v.Name()
		if u := v.Underlying.Text(); u != "" {
			decl += " : " + u
		}
		return decl + ";"
	case *ir.TypeAlias:
		return templateHeader(v.TemplateParameters) + "using " + v.Name() + " = " + v.Aliased.Text() + ";"
	case *ir.Enumerator:
		return enumeratorDecl(v)
	case *ir.Variable:
		return variableDecl(v)
	case *ir.Function:
		return FunctionSignature(v)
	case *ir.OverloadSet:
		sigs := make([]string, len(v.Funcs))
		for i, fn := range v.Funcs {
			sigs[i] = FunctionSignature(fn)
		}
		return strings.Join(sigs, "\n\n")
	default:
		return e.EntityCore().Name() + ";"
	}
}

func templateHeader(params []*ir.Parameter) string {
	if params == nil {
		return ""
	}
	decls := make([]string, len(params))
	for i, p := range params {
		decls[i] = parameterDecl(p)
	}
	return "template<" + strings.Join(decls, ", ") + ">\n"
}

func parameterDecl(p *ir.Parameter) string {
	decl := p.Type.Text()
	if p.Name != "" {
		decl += " " + p.Name
	}
	if a := p.Array.Text(); a != "" {
		decl += a
	}
	if d := p.DefaultValue.Text(); d != "" {
		decl += " = " + d
	}
	return decl
}

func variableDecl(v *ir.Variable) string {
	var words []string
	if v.IsStatic {
		words = append(words, "static")
	}
	if v.IsConstexpr {
		words = append(words, "constexpr")
	}
	if v.IsConst && !v.IsConstexpr {
		words = append(words, "const")
	}
	if v.IsVolatile {
		words = append(words, "volatile")
	}
	words = append(words, v.Type.Text(), v.Name())
	decl := templateHeader(v.TemplateParameters) + strings.Join(words, " ")
	if val := v.Value.Text(); val != "" {
		decl += " " + val
	}
	return decl + ";"
}

func enumeratorDecl(en *ir.Enumerator) string {
	decl := en.Name()
	if val := en.Value.Text(); val != "" {
		decl += " " + val
	}
	return decl
}

// FunctionSignature renders one function declaration, template header
// included.
func FunctionSignature(fn *ir.Function) string {
	var sb strings.Builder
	sb.WriteString(templateHeader(fn.TemplateParameters))

	if fn.IsFriend() {
		sb.WriteString("friend ")
	}
	if fn.IsStatic {
		sb.WriteString("static ")
	}
	if fn.VirtualKind != ir.VirtualNone {
		sb.WriteString("virtual ")
	}
	if fn.IsExplicit {
		sb.WriteString("explicit ")
	}
	if fn.IsConstexpr {
		sb.WriteString("constexpr ")
	}
	if ret := fn.ReturnType.Text(); ret != "" {
		sb.WriteString(ret)
		sb.WriteByte(' ')
	}
	sb.WriteString(fn.Name())

	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = parameterDecl(p)
	}
	sb.WriteString("(" + strings.Join(params, ", ") + ")")

	if fn.IsConst {
		sb.WriteString(" const")
	}
	if fn.IsVolatile {
		sb.WriteString(" volatile")
	}
	switch fn.RefQual {
	case "lvalue":
		sb.WriteString(" &")
	case "rvalue":
		sb.WriteString(" &&")
	}
	if fn.IsNoexcept {
		sb.WriteString(" noexcept")
	}

	switch {
	case fn.IsDeleted:
		sb.WriteString(" = delete")
	case fn.IsDefaulted:
		sb.WriteString(" = default")
	case fn.VirtualKind == ir.VirtualPure:
		sb.WriteString(" = 0")
	}
	sb.WriteString(";")
	return sb.String()
}
