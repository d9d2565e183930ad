package query

import (
	"strconv"
	"strings"
)

// SortRule ist eine Sortiervorgabe des Clients.
type SortRule struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

// OrderTerm ist ein aufgelöster ORDER BY-Eintrag.
type OrderTerm struct {
	Column    string
	Desc      bool
	NullsLast bool
}

func (o OrderTerm) String() string {
	s := quoteIdent(o.Column)
	if o.Desc {
		s += " DESC"
	} else {
		s += " ASC"
	}
	if o.NullsLast {
		s += " NULLS LAST"
	}
	return s
}

// Select ist die gemeinsame Darstellung einer Abfrage. Daten- und Count-SQL werden
// beide daraus gerendert, daher ist der Prädikattext in beiden identisch.
type Select struct {
	From    string
	Where   Predicate
	OrderBy []OrderTerm
	Limit   int
	Params  *Params
}

// Base liefert SELECT * FROM ... [WHERE ...] ohne ORDER BY und LIMIT.
func (s Select) Base() string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(s.From)
	if s.Where != nil {
		b.WriteString(" WHERE ")
		s.Where.render(&b)
	}
	return b.String()
}

// SQL liefert die Datenabfrage mit ORDER BY und LIMIT.
func (s Select) SQL() string {
	var b strings.Builder
	b.WriteString(s.Base())
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range s.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(o.String())
		}
	}
	if s.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(s.Limit))
	}
	return b.String()
}

// CountSQL zählt alle Treffer desselben Prädikats, ohne ORDER BY und LIMIT.
func (s Select) CountSQL() string {
	return "SELECT COUNT(*) FROM (" + s.Base() + ") AS subq"
}

// ResolveOrder löst Sortierregeln über die Whitelist des Datensets auf.
// Unbekannte Spalten werden übersprungen; bleibt nichts übrig, gilt die Standardsortierung.
// Nur "desc" (exakt) sortiert absteigend.
func ResolveOrder(ds Dataset, rules []SortRule) []OrderTerm {
	var terms []OrderTerm
	for _, r := range rules {
		col, ok := ds.SortColumn(r.Column)
		if !ok {
			continue
		}
		terms = append(terms, OrderTerm{Column: col, Desc: r.Order == "desc"})
	}
	if len(terms) == 0 {
		return append([]OrderTerm(nil), ds.DefaultOrder...)
	}
	return terms
}

// Build setzt Filter, Sortierung und Limit eines Datensets zu einer Abfrage zusammen.
func Build(ds Dataset, f *Filters, rules []SortRule, limit int) Select {
	params := NewParams()
	return Select{
		From:    ds.View,
		Where:   Compile(ds, f, params),
		OrderBy: ResolveOrder(ds, rules),
		Limit:   limit,
		Params:  params,
	}
}

// Dump liefert die ungefilterte Abfrage auf die Basistabelle (Legacy-Endpunkte).
func Dump(ds Dataset, limit int) Select {
	return Select{
		From:    ds.BaseTable,
		OrderBy: append([]OrderTerm(nil), ds.DumpOrder...),
		Limit:   limit,
		Params:  NewParams(),
	}
}
