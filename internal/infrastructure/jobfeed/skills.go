package jobfeed

import (
	"regexp"
	"strings"
)

type vocabEntry struct {
	name string
	re   *regexp.Regexp
}

// Canonical skill names looked up in feed text. Aliases map to the same name.
var vocabulary = buildVocabulary([][]string{
	{"Go", "golang"},
	{"JavaScript", "javascript", "js"},
	{"TypeScript", "typescript"},
	{"Python", "python"},
	{"Java", "java"},
	{"React", "react", "react.js", "reactjs"},
	{"Node.js", "node.js", "nodejs"},
	{"SQL", "sql"},
	{"PostgreSQL", "postgresql", "postgres"},
	{"MySQL", "mysql"},
	{"MongoDB", "mongodb"},
	{"Redis", "redis"},
	{"Docker", "docker"},
	{"Kubernetes", "kubernetes", "k8s"},
	{"AWS", "aws"},
	{"GCP", "gcp", "google cloud"},
	{"Azure", "azure"},
})

func buildVocabulary(groups [][]string) []vocabEntry {
	out := make([]vocabEntry, 0, len(groups))
	for _, g := range groups {
		alts := make([]string, 0, len(g)-1)
		for _, a := range g[1:] {
			alts = append(alts, regexp.QuoteMeta(a))
		}
		pat := `(?i)(^|[^a-z0-9+#.])(` + strings.Join(alts, "|") + `)([^a-z0-9+#]|$)`
		out = append(out, vocabEntry{name: g[0], re: regexp.MustCompile(pat)})
	}
	return out
}

// ExtractSkills returns a comma separated list of known skills mentioned in
// text, in vocabulary order.
func ExtractSkills(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	found := make([]string, 0)
	for _, v := range vocabulary {
		if v.re.MatchString(text) {
			found = append(found, v.name)
		}
	}
	return strings.Join(found, ", ")
}
