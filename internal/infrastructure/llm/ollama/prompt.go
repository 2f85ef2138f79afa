package ollama

import "strings"

func buildExtractionPrompt(text, filename string, agreementTypes, jurisdictions, industries, geographies []string) string {
	const maxSnippet = 4000
	snippet := text
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}

	var b strings.Builder
	b.WriteString(`You are a legal document metadata extractor.
Return a strict JSON object with keys:
agreement_type, governing_law, industry, geography.
Each value must be taken verbatim from the allowed lists below, or null when the document gives no evidence.
No markdown, no extra keys.

Allowed agreement_type values: `)
	b.WriteString(strings.Join(agreementTypes, ", "))
	b.WriteString("\nAllowed governing_law values: ")
	b.WriteString(strings.Join(jurisdictions, ", "))
	b.WriteString("\nAllowed industry values: ")
	b.WriteString(strings.Join(industries, ", "))
	b.WriteString("\nAllowed geography values: ")
	b.WriteString(strings.Join(geographies, ", "))
	b.WriteString("\n\nFilename: ")
	b.WriteString(filename)
	b.WriteString("\n\nDocument:\n")
	b.WriteString(snippet)
	return b.String()
}
