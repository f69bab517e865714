package records

import (
	"strings"
)

// Tokenize splits a single line of comma delimited text into fields.
//
// A double quote toggles the 'quoted' state and a comma inside a quoted span is part
// of the field. A doubled quote inside a quoted span is a literal quote. Unbalanced
// quotes are not an error - the line is simply consumed to the end.
func Tokenize(line string) []string {
	fields := []string{}
	quoted := false

	var field strings.Builder

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case ch == '"' && quoted && i+1 < len(line) && line[i+1] == '"':
			field.WriteByte('"')
			i++

		case ch == '"':
			quoted = !quoted

		case ch == ',' && !quoted:
			fields = append(fields, field.String())
			field.Reset()

		default:
			field.WriteByte(ch)
		}
	}

	return append(fields, field.String())
}

// Lines splits a text document into lines, dropping the surrounding whitespace of the
// document and the trailing carriage return of CRLF terminated lines.
func Lines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
