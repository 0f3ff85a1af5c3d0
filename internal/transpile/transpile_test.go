package transpile

import (
	"testing"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstUIBlock(t *testing.T, ast *airast.AirAST) []airast.UINode {
	t.Helper()
	block, ok := ast.FirstBlockOf(airast.BlockUI)
	require.True(t, ok)
	return block.UI.Children
}

func TestBuildExpandsCRUDIntoFiveRoutes(t *testing.T) {
	ast, err := parser.Parse(`@app:todo
@db{Todo{id:int:primary:auto,text:str:required}}
@api(CRUD:/todos>~db.Todo)
@ui(h1>"Todo")`)
	require.NoError(t, err)

	ctx := Build(ast)
	require.Len(t, ctx.ExpandedRoutes, 5)
	assert.True(t, ctx.HasBackend)

	methods := map[string]string{}
	for _, r := range ctx.ExpandedRoutes {
		methods[r.Method+" "+r.Path] = r.Handler
	}
	assert.Equal(t, "~db.Todo.findMany", methods["GET /todos"])
	assert.Equal(t, "~db.Todo.findUnique", methods["GET /todos/:id"])
	assert.Equal(t, "~db.Todo.create", methods["POST /todos"])
	assert.Equal(t, "~db.Todo.update", methods["PUT /todos/:id"])
	assert.Equal(t, "~db.Todo.delete", methods["DELETE /todos/:id"])
}

func TestBuildHasBackendFalseWithoutApiOrDb(t *testing.T) {
	ast, err := parser.Parse(`@app:todo
@state{count:int}
@ui(h1>"hi")`)
	require.NoError(t, err)
	ctx := Build(ast)
	assert.False(t, ctx.HasBackend)
}

func TestResolveRelationsFlagsAmbiguous(t *testing.T) {
	ast, err := parser.Parse(`@app:x
@db{User{id:int:primary:auto}, Task{id:int:primary:auto,owner:ref(User),assignee:ref(User)}}
@api(CRUD:/tasks>~db.Task)
@ui(h1>"hi")`)
	require.NoError(t, err)
	ctx := Build(ast)
	require.Len(t, ctx.Relations, 2)
	assert.True(t, ctx.Relations[0].Ambiguous)
	assert.True(t, ctx.Relations[1].Ambiguous)
}

func TestNormalizeUIExtractsPagesAndMutations(t *testing.T) {
	ast, err := parser.Parse(`@app:x
@ui(@page:home(h1>"Home", !increment), @page:about(h1>"About"))`)
	require.NoError(t, err)
	analysis := NormalizeUI(firstUIBlock(t, ast))
	require.Len(t, analysis.Pages, 2)
	assert.Equal(t, "home", analysis.Pages[0].Name)
	assert.Equal(t, "about", analysis.Pages[1].Name)
	require.Len(t, analysis.Mutations, 1)
	assert.Equal(t, "increment", analysis.Mutations[0].Name)
}
