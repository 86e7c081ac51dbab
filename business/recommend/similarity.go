package recommend

import (
	"strings"
	"unicode"

	"materialAdvisor/domain"

	"golang.org/x/text/cases"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "for": {}, "of": {}, "in": {},
	"on": {}, "to": {}, "with": {}, "or": {}, "is": {}, "it": {}, "as": {},
}

// tokenize case-folds s and splits it on anything that is not a letter or digit.
func tokenize(s string) []string {
	folded := cases.Fold().String(s)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := fields[:0]
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

func tokenSet(texts ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range texts {
		for _, tok := range tokenize(t) {
			set[tok] = struct{}{}
		}
	}
	return set
}

// commentCorpus maps a material id to the tokens found in feedback comments
// about it.
type commentCorpus map[string]map[string]struct{}

func buildCorpus(history []domain.FeedbackEvent) commentCorpus {
	corpus := make(commentCorpus)
	for _, ev := range history {
		if ev.Comment == "" || ev.MaterialID == "" {
			continue
		}
		set, ok := corpus[ev.MaterialID]
		if !ok {
			set = make(map[string]struct{})
			corpus[ev.MaterialID] = set
		}
		for _, tok := range tokenize(ev.Comment) {
			set[tok] = struct{}{}
		}
	}
	return corpus
}

// overlap is the fraction of context tokens found in the material's
// applications or in comments left about it.
func (c commentCorpus) overlap(context string, m domain.MaterialRecord) (float64, bool) {
	want := tokenSet(context)
	if len(want) == 0 {
		return 0, false
	}

	have := tokenSet(m.Applications...)
	for tok := range c[m.ID] {
		have[tok] = struct{}{}
	}

	matched := 0
	for tok := range want {
		if _, ok := have[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(want)), true
}
