package diagnostics

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortDiagnosticsOrdersBySeverityThenLineThenCode(t *testing.T) {
	in := []Diagnostic{
		New("AIR-W004", SeverityWarning, "unused state", CategoryStyle, Opts{Location: &Location{Line: 5}}),
		New("AIR-E002", SeverityError, "no ui block", CategoryStructural, Opts{}),
		New("AIR-E001", SeverityError, "missing app", CategoryStructural, Opts{Location: &Location{Line: 1}}),
		New("AIR-L002", SeverityInfo, "no style", CategoryStyle, Opts{}),
	}

	out := SortDiagnostics(in)

	require.Len(t, out, 4)
	assert.Equal(t, "AIR-E001", out[0].Code, "line-1 error sorts before the locationless error")
	assert.Equal(t, "AIR-E002", out[1].Code, "locationless diagnostics sort to +infinity within their severity")
	assert.Equal(t, "AIR-W004", out[2].Code)
	assert.Equal(t, "AIR-L002", out[3].Code)
}

func TestSortDiagnosticsIsStableAndIdempotent(t *testing.T) {
	in := []Diagnostic{
		New("AIR-W002", SeverityWarning, "a", CategoryStructural, Opts{}),
		New("AIR-W002", SeverityWarning, "b", CategoryStructural, Opts{}),
	}
	once := SortDiagnostics(in)
	twice := SortDiagnostics(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "a", once[0].Message)
	assert.Equal(t, "b", once[1].Message)
}

func TestBuildResultValidityIsErrorCountOnly(t *testing.T) {
	onlyWarnings := BuildResult([]Diagnostic{
		New("AIR-L001", SeverityInfo, "no persist", CategoryStyle, Opts{}),
		New("AIR-W007", SeverityWarning, "no primary key", CategoryStructural, Opts{}),
	}, "deadbeef")
	assert.True(t, onlyWarnings.Valid)
	assert.Equal(t, 1, onlyWarnings.Summary.Warnings)
	assert.Equal(t, 1, onlyWarnings.Summary.Info)

	withError := BuildResult([]Diagnostic{
		New("AIR-E001", SeverityError, "missing app", CategoryStructural, Opts{}),
	}, "deadbeef")
	assert.False(t, withError.Valid)
	assert.Equal(t, 1, withError.Summary.Errors)
}

func TestBuildResultStampsVersions(t *testing.T) {
	r := BuildResult(nil, "abc123")
	assert.Equal(t, "1.0", r.SchemaVersion)
	assert.NotEmpty(t, r.AirEngineVersion)
	assert.Equal(t, "abc123", r.SourceHash)
	assert.True(t, r.Valid, "no diagnostics means valid")
}

func TestResultJSONFieldOrderIsFixed(t *testing.T) {
	r := BuildResult(nil, "abc123")
	b, err := json.Marshal(r)
	require.NoError(t, err)
	s := string(b)

	order := []string{`"valid"`, `"diagnostics"`, `"summary"`, `"source_hash"`, `"airengine_version"`, `"schema_version"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key)
		require.Greater(t, idx, last, "key %s out of order in %s", key, s)
		last = idx
	}
}

func TestHashSourceIsDeterministic(t *testing.T) {
	a := HashSource("@app:todo\n@ui(h1>\"hi\")")
	b := HashSource("@app:todo\n@ui(h1>\"hi\")")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashSource("@app:other"))
	assert.Len(t, a, 64)
}

func TestFormatCLIWithAndWithoutLocation(t *testing.T) {
	withLoc := New("AIR-E001", SeverityError, "missing app", CategoryStructural, Opts{
		Location: &Location{Line: 1, Col: 1, SourceLine: "@state{x:int}"},
	})
	out := FormatCLI(withLoc)
	assert.Contains(t, out, "AIR-E001")
	assert.Contains(t, out, "^")

	noLoc := New("AIR-E002", SeverityError, "no ui block", CategoryStructural, Opts{})
	out2 := FormatCLI(noLoc)
	assert.Contains(t, out2, "AIR-E002")
	assert.NotContains(t, out2, "^")
}

func TestWrapParseErrorMapsKnownKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"unterminated string", &ParseError{Kind: KindUnterminatedString, Message: "unterminated string literal"}, "AIR-P002"},
		{"unknown block", &ParseError{Kind: KindUnknownBlock, Name: "@bogus"}, "AIR-P004"},
		{"invalid type", &ParseError{Kind: KindInvalidType, Name: "intt"}, "AIR-P005"},
		{"expected got", &ParseError{Kind: KindExpectedGot, Expected: "}", Got: "EOF"}, "AIR-P003"},
		{"generic parse error", &ParseError{Kind: KindGeneric, Message: "syntax error"}, "AIR-P001"},
		{"non-ParseError", errors.New("boom"), "AIR-P001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := WrapParseError(tc.err)
			assert.Equal(t, tc.code, d.Code)
			assert.Equal(t, SeverityError, d.Severity)
		})
	}
}
