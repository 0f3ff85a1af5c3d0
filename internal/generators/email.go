package generators

import (
	"strings"

	"github.com/airengine/airengine/internal/transpile"
)

// emailFile emits a stub email-sending module: one exported function per
// declared @email template name.
func emailFile(ctx *transpile.Context) fileT {
	lines := []string{
		`import nodemailer from "nodemailer";`,
		"",
		`const transport = nodemailer.createTransport({` ,
		`  host: process.env.SMTP_HOST,`,
		`  port: Number(process.env.SMTP_PORT ?? 587),`,
		`});`,
		"",
	}
	for _, item := range ctx.Email.Items {
		fn := "send" + pascalCase(strings.ReplaceAll(item, " ", "_"))
		lines = append(lines,
			"// "+item,
			"export async function "+fn+"(to: string, data: Record<string, unknown>) {",
			`  await transport.sendMail({ to, subject: "`+item+`", text: JSON.stringify(data) });`,
			"}",
			"",
		)
	}
	return fileT{Path: "server/email.ts", Content: writeLines(lines...)}
}
