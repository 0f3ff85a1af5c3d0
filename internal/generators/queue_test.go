package generators

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airengine/airengine/internal/parser"
	"github.com/airengine/airengine/internal/transpile"
)

// TestQueueSubjectsAreValidNatsSubjects confirms the subject names this
// generator embeds in the emitted queue scaffold pass nats.go's own
// subject-grammar check.
func TestQueueSubjectsAreValidNatsSubjects(t *testing.T) {
	ast, err := parser.Parse(`@app:x
@queue(order created, order.shipped, user signup)
@ui(h1>"hi")`)
	require.NoError(t, err)

	ctx := transpile.Build(ast)
	require.NotNil(t, ctx.Queue)

	for _, item := range ctx.Queue.Items {
		subject := queueSubject(item)
		assert.True(t, nats.IsValidSubject(subject), "generated subject %q (from %q) must be a valid NATS subject", subject, item)
	}
}

func TestSubjectIdentifierProducesPascalCase(t *testing.T) {
	assert.Equal(t, "OrderCreated", subjectIdentifier("order.created"))
	assert.Equal(t, "UserSignup", subjectIdentifier("user.signup"))
}
