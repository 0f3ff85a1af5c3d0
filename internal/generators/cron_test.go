package generators

import (
	"testing"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airengine/airengine/internal/parser"
	"github.com/airengine/airengine/internal/transpile"
)

// TestCronExpressionsAreValidAgainstGocron confirms the cron strings this
// generator embeds in the emitted Node scaffold are accepted by a real
// scheduler's cron grammar, not just plausible-looking text.
func TestCronExpressionsAreValidAgainstGocron(t *testing.T) {
	ast, err := parser.Parse(`@app:x
@cron(every 5 minutes, every 1 hour, 0 0 * * *)
@ui(h1>"hi")`)
	require.NoError(t, err)

	ctx := transpile.Build(ast)
	require.NotNil(t, ctx.Cron)

	scheduler, err := gocron.NewScheduler()
	require.NoError(t, err)
	defer scheduler.Shutdown()

	for _, item := range ctx.Cron.Items {
		expr := cronExpression(item)
		_, err := scheduler.NewJob(
			gocron.CronJob(expr, false),
			gocron.NewTask(func() {}),
		)
		assert.NoError(t, err, "generated cron expression %q (from %q) must be valid", expr, item)
	}
}

func TestCronExpressionTranslatesEveryPhrases(t *testing.T) {
	assert.Equal(t, "*/5 * * * *", cronExpression("every 5 minutes"))
	assert.Equal(t, "0 */1 * * *", cronExpression("every 1 hour"))
	assert.Equal(t, "0 0 */2 * *", cronExpression("every 2 days"))
	assert.Equal(t, "0 0 * * *", cronExpression("0 0 * * *"))
}
