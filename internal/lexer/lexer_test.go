package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasicDirective(t *testing.T) {
	toks, err := Tokenize(`@app:todo`)
	require.NoError(t, err)
	kinds := []Kind{}
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{At, Ident, Colon, Ident, EOF}, kinds)
}

func TestTokenizeUIOperators(t *testing.T) {
	toks, err := Tokenize(`h1>"Todo"`)
	require.NoError(t, err)
	require.Len(t, toks, 4) // Ident, Operator, String, EOF
	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, Operator, toks[1].Kind)
	assert.Equal(t, ">", toks[1].Text)
	assert.Equal(t, String, toks[2].Kind)
	assert.Equal(t, "Todo", toks[2].Text)
}

func TestTokenizeUnterminatedStringReportsPosition(t *testing.T) {
	_, err := Tokenize("@ui(h1>\"Todo)")
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 1, lexErr.Line)
	assert.Contains(t, lexErr.Message, "unterminated string")
}

func TestTokenizeNumbersAndBooleans(t *testing.T) {
	toks, err := Tokenize(`default(false), limit:10, rate:1.5`)
	require.NoError(t, err)
	var gotFalse, gotNumbers bool
	for _, tok := range toks {
		if tok.Kind == False {
			gotFalse = true
		}
		if tok.Kind == Number && (tok.Text == "10" || tok.Text == "1.5") {
			gotNumbers = true
		}
	}
	assert.True(t, gotFalse)
	assert.True(t, gotNumbers)
}

func TestTokenizeLineAndColTracking(t *testing.T) {
	toks, err := Tokenize("@app:todo\n@ui(h1)")
	require.NoError(t, err)
	var uiAt Token
	for _, tok := range toks {
		if tok.Kind == At && tok.Line == 2 {
			uiAt = tok
		}
	}
	assert.Equal(t, 2, uiAt.Line)
	assert.Equal(t, 1, uiAt.Col)
}
