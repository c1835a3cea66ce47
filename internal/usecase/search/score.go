package search

import (
	"strings"

	domfaq "github.com/kailas-cloud/ipadhilfe/internal/domain/faq"
)

// Score weights. Phrase and token matches are additive.
const (
	phraseInQuestion = 10
	phraseInAnswer   = 5
	tokenInQuestion  = 3
	tokenInAnswer    = 1
)

// query is a normalized search input: trimmed, lowercased, tokenized on whitespace.
type query struct {
	phrase string
	tokens []string
}

func newQuery(raw string) query {
	phrase := strings.ToLower(strings.TrimSpace(raw))
	return query{phrase: phrase, tokens: strings.Fields(phrase)}
}

// score computes the relevance of it for q.
func (q query) score(it *domfaq.Item) int {
	question := strings.ToLower(it.Question())
	answer := strings.ToLower(it.Answer())

	total := 0
	if strings.Contains(question, q.phrase) {
		total += phraseInQuestion
	}
	if strings.Contains(answer, q.phrase) {
		total += phraseInAnswer
	}
	for _, tok := range q.tokens {
		if strings.Contains(question, tok) {
			total += tokenInQuestion
		}
		if strings.Contains(answer, tok) {
			total += tokenInAnswer
		}
	}
	return total
}
