package getter

import "strings"

// ResolveURL replaces the {{name}} placeholders of pattern with vars.
// Unknown placeholders are left as they are.
//
//	ResolveURL("https://example.org/{{version}}/{{file}}",
//		map[string]string{"version": "4.0", "file": "sdk.zip"})
//	→ "https://example.org/4.0/sdk.zip"
func ResolveURL(pattern string, vars map[string]string) string {
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}

	return strings.NewReplacer(pairs...).Replace(pattern)
}

// Placeholders returns the {{name}} placeholders used in pattern, in order.
func Placeholders(pattern string) []string {
	var names []string

	for {
		start := strings.Index(pattern, "{{")
		if start < 0 {
			return names
		}

		end := strings.Index(pattern[start:], "}}")
		if end < 0 {
			return names
		}

		names = append(names, pattern[start+2:start+end])
		pattern = pattern[start+end+2:]
	}
}
