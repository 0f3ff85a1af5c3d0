package parser

import (
	"testing"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrivialValidSource(t *testing.T) {
	src := "@app:todo\n@state{items:[{id:int,text:str,done:bool}]}\n@ui(h1>\"Todo\")"
	ast, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "todo", ast.App.Name)
	require.Len(t, ast.App.Blocks, 2)

	state, ok := ast.FirstBlockOf(airast.BlockState)
	require.True(t, ok)
	require.Len(t, state.State.Fields, 1)
	assert.Equal(t, "items", state.State.Fields[0].Name)
	assert.Equal(t, airast.TypeArray, state.State.Fields[0].Type.Kind)

	ui, ok := ast.FirstBlockOf(airast.BlockUI)
	require.True(t, ok)
	require.Len(t, ui.UI.Children, 1)
	assert.Equal(t, airast.UIBinary, ui.UI.Children[0].Kind)
	assert.Equal(t, airast.UIOperator(">"), ui.UI.Children[0].BinaryOp)
}

func TestParseMissingAppProducesSingleDiagnostic(t *testing.T) {
	src := "@state{x:int}\n@ui(h1>\"hi\")"
	_, err := Parse(src)
	require.Error(t, err)
	d := diagnostics.WrapParseError(err)
	assert.Equal(t, "AIR-P001", d.Code)
	assert.Contains(t, d.Message, "Missing @app")
}

func TestParseMissingUIBlockStillParses(t *testing.T) {
	src := "@app:x\n@state{x:int}"
	ast, err := Parse(src)
	require.NoError(t, err)
	_, ok := ast.FirstBlockOf(airast.BlockUI)
	assert.False(t, ok)
}

func TestParseAPIReferencesUndefinedModel(t *testing.T) {
	src := "@app:x\n@db{Item{id:int:primary:auto,name:str}}\n@api(GET:/tasks>~db.Task.findMany)\n@ui(h1>\"hi\")"
	ast, err := Parse(src)
	require.NoError(t, err)

	db, ok := ast.FirstBlockOf(airast.BlockDB)
	require.True(t, ok)
	require.Len(t, db.DB.Models, 1)
	assert.Equal(t, "Item", db.DB.Models[0].Name)

	api, ok := ast.FirstBlockOf(airast.BlockAPI)
	require.True(t, ok)
	require.Len(t, api.API.Routes, 1)
	assert.Equal(t, "GET", api.API.Routes[0].Method)
	assert.Equal(t, "/tasks", api.API.Routes[0].Path)
	assert.Equal(t, "~db.Task.findMany", api.API.Routes[0].Handler)
}

func TestParseFullstackRoundTrip(t *testing.T) {
	src := "@app:todo\n" +
		"@state{items:[{id:int,text:str,done:bool}]}\n" +
		"@db{Todo{id:int:primary:auto,text:str:required,done:bool:default(false)}}\n" +
		"@api(CRUD:/todos>~db.Todo)\n" +
		"@ui(h1>\"Todo\")"
	ast, err := Parse(src)
	require.NoError(t, err)

	db, _ := ast.FirstBlockOf(airast.BlockDB)
	require.Len(t, db.DB.Models, 1)
	model := db.DB.Models[0]
	require.Len(t, model.Fields, 3)
	assert.True(t, model.Fields[0].Primary)
	assert.True(t, model.Fields[0].Auto)
	assert.True(t, model.Fields[1].Required)
	assert.Equal(t, "false", model.Fields[2].Default)

	api, _ := ast.FirstBlockOf(airast.BlockAPI)
	require.Len(t, api.API.Routes, 1)
	assert.Equal(t, airast.RouteCRUD, api.API.Routes[0].Kind)
	assert.Equal(t, "~db.Todo", api.API.Routes[0].Handler)
}

func TestParseUnknownBlockProducesP004(t *testing.T) {
	src := "@app:x\n@bogus(1)"
	_, err := Parse(src)
	require.Error(t, err)
	d := diagnostics.WrapParseError(err)
	assert.Equal(t, "AIR-P004", d.Code)
}

func TestParseInvalidTypeProducesP005(t *testing.T) {
	src := "@app:x\n@state{x:intt}"
	_, err := Parse(src)
	require.Error(t, err)
	d := diagnostics.WrapParseError(err)
	assert.Equal(t, "AIR-P005", d.Code)
}

func TestParseUnterminatedStringProducesP002(t *testing.T) {
	src := "@app:x\n@ui(h1>\"unterminated)"
	_, err := Parse(src)
	require.Error(t, err)
	d := diagnostics.WrapParseError(err)
	assert.Equal(t, "AIR-P002", d.Code)
}

func TestParseScopedPageNodes(t *testing.T) {
	src := `@app:todo
@ui(@page:home(h1>"Home"), @page:about(h1>"About"))`
	ast, err := Parse(src)
	require.NoError(t, err)
	ui, _ := ast.FirstBlockOf(airast.BlockUI)
	pages := airast.Pages(ui.UI.Children)
	require.Len(t, pages, 2)
	assert.Equal(t, "home", pages[0].ScopeName)
	assert.Equal(t, "about", pages[1].ScopeName)
}
