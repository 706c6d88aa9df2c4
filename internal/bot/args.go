package bot

import "strings"

// ParseArguments splits s on spaces, treating double-quoted runs as one argument.
// Quotes are dropped from the output, escapes are not interpreted, and an
// unterminated quote extends to the end of the input.
func ParseArguments(s string) []string {
	args := []string{}
	inQuotes := false
	var current strings.Builder

	for _, c := range s {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ' ' && !inQuotes:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(c)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}
