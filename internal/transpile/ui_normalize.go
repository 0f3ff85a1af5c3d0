package transpile

import (
	"strings"

	"github.com/airengine/airengine/internal/airast"
)

// BoundElement is the resolved form of a bind chain
// `element[:modifier]*[:binding|:action|:label]` (spec.md §4.6.1).
type BoundElement struct {
	Element   string
	Modifiers []string
	Binding   string // a $state or ~db reference, if any
	Action    string // a !mutation reference, if any
	Label     string // literal text content, if any
	Children  []BoundElement
}

// Mutation is a deduplicated `!name` unary node, each becoming a state
// updater function in the generated component.
type Mutation struct {
	Name string
}

// Page is a flat, per-@page:name structure ready for the page generator.
type Page struct {
	Name     string
	Elements []BoundElement
}

// Analysis is the output of NormalizeUI: a flat per-page structure plus a
// deduplicated mutation set.
type Analysis struct {
	Pages     []Page
	Root      []BoundElement // top-level nodes outside any @page scope
	Mutations []Mutation
}

// NormalizeUI walks ctx.UINodes once, resolving bind chains, collecting
// mutation names, and extracting @page/@section scoped nodes.
func NormalizeUI(nodes []airast.UINode) Analysis {
	a := Analysis{}
	seenMutations := map[string]bool{}

	var walk func(n airast.UINode) *BoundElement
	walk = func(n airast.UINode) *BoundElement {
		switch n.Kind {
		case airast.UIScoped:
			var elems []BoundElement
			for _, c := range n.ScopeChildren {
				if be := walk(c); be != nil {
					elems = append(elems, *be)
				}
			}
			if n.ScopeKind == airast.ScopePage {
				a.Pages = append(a.Pages, Page{Name: n.ScopeName, Elements: elems})
			} else {
				// A @section node resolves to a labeled element in its
				// parent's child list rather than a top-level page.
				return &BoundElement{Element: "section:" + n.ScopeName, Children: elems}
			}
			return nil

		case airast.UIElement:
			be := BoundElement{Element: n.ElementName}
			for _, c := range n.ElementChildren {
				if child := walk(c); child != nil {
					be.Children = append(be.Children, *child)
				}
			}
			return &be

		case airast.UIText:
			return &BoundElement{Element: "#text", Label: n.Text}

		case airast.UIValue:
			return &BoundElement{Element: "#value", Binding: n.Value}

		case airast.UIUnary:
			if n.UnaryOp == airast.OpBang {
				name := mutationName(n.UnaryOperand)
				if name != "" && !seenMutations[name] {
					seenMutations[name] = true
					a.Mutations = append(a.Mutations, Mutation{Name: name})
				}
				operand := walk(*n.UnaryOperand)
				if operand == nil {
					operand = &BoundElement{}
				}
				operand.Action = name
				return operand
			}
			operand := walk(*n.UnaryOperand)
			if operand == nil {
				return nil
			}
			applyUnaryModifier(operand, n.UnaryOp)
			return operand

		case airast.UIBinary:
			return resolveBindChain(n)
		}
		return nil
	}

	for _, n := range nodes {
		if be := walk(n); be != nil {
			a.Root = append(a.Root, *be)
		}
	}
	return a
}

func mutationName(n *airast.UINode) string {
	if n == nil {
		return ""
	}
	if n.Kind == airast.UIElement {
		return n.ElementName
	}
	if n.Kind == airast.UIValue {
		return strings.TrimPrefix(n.Value, "$")
	}
	return ""
}

func applyUnaryModifier(be *BoundElement, op airast.UIOperator) {
	switch op {
	case airast.OpHash:
		be.Modifiers = append(be.Modifiers, "id")
	case airast.OpTilde:
		be.Binding = "~" + be.Binding
	case airast.OpCaret:
		be.Modifiers = append(be.Modifiers, "event")
	case airast.OpDot:
		be.Modifiers = append(be.Modifiers, "class")
	case airast.OpDollar:
		be.Binding = "$" + be.Element
	case airast.OpMinus:
		be.Modifiers = append(be.Modifiers, "exclude")
	}
}

// resolveBindChain folds a chain of `:`-joined binary nodes into a single
// BoundElement with accumulated modifiers and a terminal binding/action/
// label, and keeps `>`/`+`/`?`/`*` as structural combination by recursing
// into both sides.
func resolveBindChain(n airast.UINode) *BoundElement {
	switch n.BinaryOp {
	case airast.OpColon:
		left := chainToElement(n)
		return left

	case airast.OpGreaterThan:
		parent := elementOf(n.Left)
		if parent == nil {
			return elementOf(n.Right)
		}
		if child := elementOf(n.Right); child != nil {
			parent.Children = append(parent.Children, *child)
		}
		return parent

	case airast.OpPlus:
		left := elementOf(n.Left)
		right := elementOf(n.Right)
		if left == nil {
			return right
		}
		if right != nil {
			left.Children = append(left.Children, *right)
		}
		return left

	case airast.OpQuestion:
		be := elementOf(n.Left)
		if be == nil {
			be = &BoundElement{}
		}
		be.Modifiers = append(be.Modifiers, "conditional")
		return be

	case airast.OpStar:
		be := elementOf(n.Left)
		if be == nil {
			be = &BoundElement{}
		}
		be.Modifiers = append(be.Modifiers, "iterate")
		if right := elementOf(n.Right); right != nil {
			be.Binding = right.Binding
		}
		return be

	default:
		return elementOf(n.Left)
	}
}

// chainToElement flattens a left-leaning `:` chain (`element:mod1:mod2`)
// into element + modifiers + terminal binding/action/label.
func chainToElement(n airast.UINode) *BoundElement {
	var parts []airast.UINode
	var flatten func(node airast.UINode)
	flatten = func(node airast.UINode) {
		if node.Kind == airast.UIBinary && node.BinaryOp == airast.OpColon {
			flatten(*node.Left)
			flatten(*node.Right)
			return
		}
		parts = append(parts, node)
	}
	flatten(n)

	if len(parts) == 0 {
		return nil
	}
	base := elementOf(&parts[0])
	if base == nil {
		base = &BoundElement{}
	}
	for _, p := range parts[1:] {
		switch p.Kind {
		case airast.UIText:
			base.Label = p.Text
		case airast.UIValue:
			base.Binding = p.Value
		case airast.UIElement:
			base.Modifiers = append(base.Modifiers, p.ElementName)
		}
	}
	return base
}

func elementOf(n *airast.UINode) *BoundElement {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case airast.UIElement:
		return &BoundElement{Element: n.ElementName}
	case airast.UIText:
		return &BoundElement{Element: "#text", Label: n.Text}
	case airast.UIValue:
		return &BoundElement{Element: "#value", Binding: n.Value}
	case airast.UIBinary:
		return resolveBindChain(*n)
	case airast.UIUnary:
		operand := elementOf(n.UnaryOperand)
		if operand == nil {
			operand = &BoundElement{}
		}
		applyUnaryModifier(operand, n.UnaryOp)
		return operand
	}
	return nil
}
