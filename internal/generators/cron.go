package generators

import (
	"strconv"
	"strings"

	"github.com/airengine/airengine/internal/transpile"
)

// cronFile emits a gocron-equivalent Node cron scaffold: each @cron item is
// either an interval expression ("every 5 minutes") or a five-field cron
// expression, both of which this template documents verbatim as comments
// alongside a stub job registration (spec.md §4.6.5).
func cronFile(ctx *transpile.Context) fileT {
	var sb strings.Builder
	sb.WriteString(`import { CronJob } from "cron";` + "\n\n")
	for i, item := range ctx.Cron.Items {
		jobName := "job" + strconv.Itoa(i+1)
		sb.WriteString("// " + item + "\n")
		sb.WriteString(`export const ` + jobName + ` = new CronJob("` + cronExpression(item) + `", () => {` + "\n")
		sb.WriteString("  // TODO: implement scheduled task: " + item + "\n")
		sb.WriteString("});\n\n")
	}
	return fileT{Path: "server/cron.ts", Content: sb.String()}
}

// cronExpression normalizes a declared @cron item into a five-field cron
// expression. Items already shaped like a cron expression pass through;
// "every N <unit>" phrases are translated to their step-expression form.
func cronExpression(item string) string {
	trimmed := strings.TrimSpace(item)
	if strings.HasPrefix(trimmed, "every ") {
		fields := strings.Fields(trimmed)
		if len(fields) >= 3 {
			n := fields[1]
			unit := fields[2]
			switch {
			case strings.HasPrefix(unit, "minute"):
				return "*/" + n + " * * * *"
			case strings.HasPrefix(unit, "hour"):
				return "0 */" + n + " * * *"
			case strings.HasPrefix(unit, "day"):
				return "0 0 */" + n + " * *"
			}
		}
	}
	return trimmed
}
