package validator

import (
	"testing"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagnosticCodes(t *testing.T, src string) []string {
	t.Helper()
	ast, err := parser.Parse(src)
	require.NoError(t, err)
	diags := Validate(ast, DefaultChain())
	var codes []string
	for _, d := range diags {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestMissingStateAndStyleWarnings(t *testing.T) {
	codes := diagnosticCodes(t, `@app:todo
@ui(h1>"Todo")`)
	assert.Contains(t, codes, "AIR-W001")
	assert.Contains(t, codes, "AIR-L002")
}

func TestDbWithoutAPIWarns(t *testing.T) {
	codes := diagnosticCodes(t, `@app:todo
@db{Item{id:int:primary:auto,name:str}}
@ui(h1>"Todo")`)
	assert.Contains(t, codes, "AIR-W002")
}

func TestApiUndefinedModelErrors(t *testing.T) {
	codes := diagnosticCodes(t, `@app:x
@db{Item{id:int:primary:auto,name:str}}
@api(GET:/tasks>~db.Task.findMany)
@ui(h1>"hi")`)
	assert.Contains(t, codes, "AIR-E003")
}

func TestCrudUndefinedModelErrors(t *testing.T) {
	codes := diagnosticCodes(t, `@app:x
@db{Item{id:int:primary:auto,name:str}}
@api(CRUD:/tasks>~db.Task)
@ui(h1>"hi")`)
	assert.Contains(t, codes, "AIR-E007")
}

func TestNoPrimaryKeyWarns(t *testing.T) {
	codes := diagnosticCodes(t, `@app:x
@db{Item{name:str}}
@api(CRUD:/items>~db.Item)
@ui(h1>"hi")`)
	assert.Contains(t, codes, "AIR-W007")
}

func TestAmbiguousRelationWarns(t *testing.T) {
	codes := diagnosticCodes(t, `@app:x
@db{User{id:int:primary:auto}, Task{id:int:primary:auto,owner:ref(User),assignee:ref(User)}}
@api(CRUD:/tasks>~db.Task)
@ui(h1>"hi")`)
	assert.Contains(t, codes, "AIR-W003")
}

func TestAuthRequiredWithoutLoginWarns(t *testing.T) {
	codes := diagnosticCodes(t, `@app:x
@auth(required)
@api(GET:/dashboard>~db.Item.findMany)
@db{Item{id:int:primary:auto}}
@ui(h1>"hi")`)
	assert.Contains(t, codes, "AIR-W008")
}

func TestFrontendOnlyNoPersistIsInfo(t *testing.T) {
	codes := diagnosticCodes(t, `@app:x
@state{count:int}
@ui(h1>"hi")`)
	assert.Contains(t, codes, "AIR-L001")
}

func TestDuplicatePageErrors(t *testing.T) {
	codes := diagnosticCodes(t, `@app:x
@ui(@page:home(h1>"a"), @page:home(h1>"b"))`)
	assert.Contains(t, codes, "AIR-E004")
}

func TestNavWhitelistDoesNotFlagDirectives(t *testing.T) {
	ast, err := parser.Parse(`@app:x
@ui(@page:home(h1>"a"))
@nav(/home:home, /logout:redirect)`)
	require.NoError(t, err)
	diags := Validate(ast, []Rule{navTargetRule{}})
	assert.Empty(t, diags)
}

func TestNavUndefinedTargetErrors(t *testing.T) {
	ast, err := parser.Parse(`@app:x
@ui(@page:home(h1>"a"))
@nav(/missing:ghost)`)
	require.NoError(t, err)
	diags := Validate(ast, []Rule{navTargetRule{}})
	require.Len(t, diags, 1)
	assert.Equal(t, "AIR-E005", diags[0].Code)
}

func TestGatherCountsBlockPresence(t *testing.T) {
	ast := &airast.AirAST{App: airast.App{Name: "x", Blocks: []airast.Block{
		{Kind: airast.BlockDB, DB: &airast.DBBlock{Models: []airast.Model{{Name: "Item"}}}},
	}}}
	ctx := Gather(ast)
	assert.True(t, ctx.HasDB)
	assert.False(t, ctx.HasAPI)
	assert.True(t, ctx.ModelNames["Item"])
}
