package highlight

import (
	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates bounds the content classifier to languages that
// commonly appear on slides.
//
//nolint:gochecknoglobals // fixed candidate list
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// resolveAlias maps a fence tag chroma does not know to a linguist
// language name, e.g. "node" to "JavaScript".
func resolveAlias(tag string) (string, bool) {
	return enry.GetLanguageByAlias(tag)
}

// detect guesses the language of code. Only confident answers are
// returned: a shebang line, or an unambiguous classifier result.
func detect(code []byte) (string, bool) {
	if len(code) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return lang, true
	}

	if lang, safe := enry.GetLanguageByClassifier(code, classifierCandidates); safe && lang != "" {
		return lang, true
	}

	return "", false
}
