package airast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func textNode(s string) UINode { return UINode{Kind: UIText, Text: s} }

func TestPagesDescendsThroughBinaryAndUnaryNodes(t *testing.T) {
	home := UINode{Kind: UIScoped, ScopeKind: ScopePage, ScopeName: "home", ScopeChildren: []UINode{textNode("hi")}}
	about := UINode{Kind: UIScoped, ScopeKind: ScopePage, ScopeName: "about", ScopeChildren: []UINode{textNode("about")}}

	binary := UINode{Kind: UIBinary, BinaryOp: OpPlus, Left: &home, Right: &about}
	unary := UINode{Kind: UIUnary, UnaryOp: OpBang, UnaryOperand: &binary}

	pages := Pages([]UINode{unary})
	assert.Len(t, pages, 2)
	assert.Equal(t, "home", pages[0].ScopeName)
	assert.Equal(t, "about", pages[1].ScopeName)
}

func TestFirstBlockOfAndBlocksOf(t *testing.T) {
	ast := &AirAST{App: App{
		Name: "todo",
		Blocks: []Block{
			{Kind: BlockState, State: &StateBlock{Fields: []Field{{Name: "x", Type: Type{Kind: TypeScalar, Scalar: ScalarInt}}}}},
			{Kind: BlockUI, UI: &UIBlock{Children: []UINode{textNode("hi")}}},
			{Kind: BlockEnv, Env: &ListBlock{Items: []string{"API_KEY"}}},
			{Kind: BlockEnv, Env: &ListBlock{Items: []string{"OTHER"}}},
		},
	}}

	state, ok := ast.FirstBlockOf(BlockState)
	assert.True(t, ok)
	assert.Equal(t, "x", state.State.Fields[0].Name)

	_, ok = ast.FirstBlockOf(BlockDB)
	assert.False(t, ok)

	envBlocks := ast.BlocksOf(BlockEnv)
	assert.Len(t, envBlocks, 2)
}

func TestWalkVisitsElementChildrenInOrder(t *testing.T) {
	var order []string
	tree := UINode{Kind: UIElement, ElementName: "div", ElementChildren: []UINode{
		{Kind: UIElement, ElementName: "h1"},
		{Kind: UIElement, ElementName: "p"},
	}}
	Walk(tree, func(n UINode) {
		if n.Kind == UIElement {
			order = append(order, n.ElementName)
		}
	})
	assert.Equal(t, []string{"div", "h1", "p"}, order)
}
