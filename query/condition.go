package query

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern baut das LIKE-Muster für eine Teilstring-Suche.
// Platzhalterzeichen im Begriff werden maskiert.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// TextCondition übersetzt einen Suchstring für eine Spalte in ein Prädikat.
// Reihenfolge: MustHave, MustNotHave, die OR-Gruppe, dann Phrasen; alles per AND.
// Liefert nil, wenn der Suchstring keine Einschränkung ergibt.
func TextCondition(column, text string, params *Params) Predicate {
	terms := ParseTerms(text)
	if terms.Empty() {
		return nil
	}

	var preds []Predicate
	for _, term := range terms.MustHave {
		preds = append(preds, Contains{Column: column, Param: params.Add(containsPattern(term))})
	}
	for _, term := range terms.MustNotHave {
		preds = append(preds, Contains{Column: column, Param: params.Add(containsPattern(term)), Negate: true})
	}
	if len(terms.ShouldHave) > 0 {
		var group Or
		for _, term := range terms.ShouldHave {
			group = append(group, Contains{Column: column, Param: params.Add(containsPattern(term))})
		}
		preds = append(preds, group)
	}
	// Phrasen sind ebenfalls Teilstring-Treffer, keine Gleichheit
	for _, phrase := range terms.Phrases {
		preds = append(preds, Contains{Column: column, Param: params.Add(containsPattern(phrase))})
	}
	return conjunction(preds)
}
