// Package nlu turns raw Vietnamese questions into an intent and a set of
// extracted entity names. Every operation in this package is total: bad
// input, a failing language model or a malformed response never surface as
// an error to the caller, they degrade to safe defaults instead.
package nlu

import "strings"

// replacement is one literal substring rewrite. Rules run in declaration
// order, so a later rule may act on text introduced by an earlier one.
type replacement struct {
	old string
	new string
}

var normalizeRules = []replacement{
	{"chuẩn đầu ra", "điều kiện tốt nghiệp"},
	{"ra trường cần gì", "điều kiện tốt nghiệp"},
	{"yêu cầu tốt nghiệp", "điều kiện tốt nghiệp"},
}

// canonicalLanguageQuestion collapses every phrasing of the output language
// standard question into one form. The program name, if the question named
// one, is recovered later by the extractor from the original question.
const canonicalLanguageQuestion = "chuẩn ngoại ngữ đầu ra là gì"

// Normalize lower-cases, trims and canonicalizes a raw question so the
// keyword rules in Classify see a predictable surface. Idempotent.
func Normalize(question string) string {
	q := strings.ToLower(strings.TrimSpace(question))
	for _, r := range normalizeRules {
		q = strings.ReplaceAll(q, r.old, r.new)
	}
	if strings.Contains(q, "chuẩn ngoại ngữ đầu ra") {
		return canonicalLanguageQuestion
	}
	return q
}
