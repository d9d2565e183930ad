package query

import (
	"regexp"
	"strings"
)

var phrasePattern = regexp.MustCompile(`"([^"]+)"`)

// orDelimiter trennt Alternativen; nur das großgeschriebene OR mit Leerzeichen zählt.
const orDelimiter = " OR "

// Terms enthält die klassifizierten Begriffe eines Suchstrings.
type Terms struct {
	MustHave    []string
	MustNotHave []string
	ShouldHave  []string
	Phrases     []string
}

// Empty meldet, ob keine einzige Bedingung übrig geblieben ist.
func (t *Terms) Empty() bool {
	return t == nil || len(t.MustHave)+len(t.MustNotHave)+len(t.ShouldHave)+len(t.Phrases) == 0
}

// ParseTerms zerlegt einen Suchstring:
//   - "phrase"       -> Phrases
//   - +begriff       -> MustHave
//   - -begriff       -> MustNotHave
//   - a OR b         -> ShouldHave
//   - sonst (ohne OR) implizites UND -> MustHave
//
// Ein leerer String liefert nil (keine Einschränkung).
func ParseTerms(text string) *Terms {
	if text == "" {
		return nil
	}

	terms := &Terms{}
	for _, m := range phrasePattern.FindAllStringSubmatch(text, -1) {
		// Phrasen nur aus Leerzeichen schränken nichts ein
		if strings.TrimSpace(m[1]) == "" {
			continue
		}
		terms.Phrases = append(terms.Phrases, m[1])
	}
	remaining := phrasePattern.ReplaceAllString(text, "")

	parts := strings.Split(remaining, orDelimiter)
	hasOr := len(parts) > 1
	for _, part := range parts {
		for _, word := range strings.Fields(part) {
			switch word[0] {
			case '-':
				terms.MustNotHave = appendTerm(terms.MustNotHave, word[1:])
			case '+':
				terms.MustHave = appendTerm(terms.MustHave, word[1:])
			default:
				if hasOr {
					terms.ShouldHave = append(terms.ShouldHave, word)
				} else {
					terms.MustHave = append(terms.MustHave, word)
				}
			}
		}
	}
	return terms
}

// appendTerm verwirft Begriffe, die nach dem Entfernen des Präfixes leer sind.
func appendTerm(list []string, term string) []string {
	if term == "" {
		return list
	}
	return append(list, term)
}
