package generators

import (
	"strings"

	"github.com/airengine/airengine/internal/transpile"
)

// queueFile emits a NATS subject-handler scaffold for each declared @queue
// item. Subject names are derived from the declared item text; the
// queue_test.go sibling validates these against nats.go's subject grammar
// so the emitted strings are never silently malformed (spec.md §4.6.5).
func queueFile(ctx *transpile.Context) fileT {
	var sb strings.Builder
	sb.WriteString(`import { connect, StringCodec } from "nats";` + "\n\n")
	sb.WriteString("const sc = StringCodec();\n\n")
	sb.WriteString("export async function registerQueueHandlers() {\n")
	sb.WriteString(`  const nc = await connect({ servers: process.env.NATS_URL ?? "nats://localhost:4222" });` + "\n\n")
	for _, item := range ctx.Queue.Items {
		subject := queueSubject(item)
		sb.WriteString("  // " + item + "\n")
		sb.WriteString(`  const sub` + pascalCase(subjectIdentifier(subject)) + ` = nc.subscribe("` + subject + `");` + "\n")
		sb.WriteString(`  (async () => {` + "\n")
		sb.WriteString(`    for await (const msg of sub` + pascalCase(subjectIdentifier(subject)) + `) {` + "\n")
		sb.WriteString("      // TODO: handle message: " + item + "\n")
		sb.WriteString("    }\n")
		sb.WriteString("  })();\n\n")
	}
	sb.WriteString("  return nc;\n")
	sb.WriteString("}\n")
	return fileT{Path: "server/queue.ts", Content: sb.String()}
}

// queueSubject turns a declared @queue item into a dot-separated NATS
// subject: lowercased, spaces collapsed to dots.
func queueSubject(item string) string {
	fields := strings.Fields(strings.ToLower(item))
	return strings.Join(fields, ".")
}

func subjectIdentifier(subject string) string {
	parts := strings.Split(subject, ".")
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(pascalCase(p))
	}
	return sb.String()
}
