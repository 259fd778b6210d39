package links

import (
	"regexp"
)

var templateVariable = regexp.MustCompile(`\{(\w+)\}`)

// Substitute replaces every {name} token of template whose name is a key of
// vars with the corresponding value. Values are inserted verbatim, without URL
// escaping. Tokens without a value are left as they are, and inserted values
// are never scanned for further tokens.
func Substitute(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}

	return templateVariable.ReplaceAllStringFunc(template, func(token string) string {
		value, ok := vars[token[1:len(token)-1]]
		if !ok {
			return token
		}

		return value
	})
}
