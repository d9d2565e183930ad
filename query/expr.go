package query

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// Predicate ist ein Knoten im WHERE-Ausdrucksbaum.
//
// Das Interface ist versiegelt: nur Typen dieses Pakets implementieren es, damit
// jede Darstellung ausschließlich über render erzeugt wird und Daten- und
// Count-Abfrage denselben Text erhalten.
type Predicate interface {
	render(b *strings.Builder)
}

// Contains prüft case-insensitiv, ob Column den Wert des Parameters enthält.
type Contains struct {
	Column string
	Param  string
	Negate bool
}

// AnyOf prüft Column gegen ein gebundenes Array.
type AnyOf struct {
	Column string
	Param  string
}

// Equals prüft Column auf exakte Gleichheit.
type Equals struct {
	Column string
	Param  string
}

// Compare vergleicht Column mit einem Parameter (>=, <=).
type Compare struct {
	Column string
	Op     string
	Param  string
}

// And verknüpft alle Prädikate mit AND (ohne Klammern).
type And []Predicate

// Or verknüpft alle Prädikate mit OR, immer geklammert.
type Or []Predicate

func (c Contains) render(b *strings.Builder) {
	b.WriteString("LOWER(")
	b.WriteString(quoteIdent(c.Column))
	if c.Negate {
		b.WriteString(") NOT LIKE LOWER(")
	} else {
		b.WriteString(") LIKE LOWER(")
	}
	b.WriteString(Placeholder(c.Param))
	b.WriteString(")")
}

func (a AnyOf) render(b *strings.Builder) {
	b.WriteString(quoteIdent(a.Column))
	b.WriteString(" = ANY(")
	b.WriteString(Placeholder(a.Param))
	b.WriteString(")")
}

func (e Equals) render(b *strings.Builder) {
	b.WriteString(quoteIdent(e.Column))
	b.WriteString(" = ")
	b.WriteString(Placeholder(e.Param))
}

func (c Compare) render(b *strings.Builder) {
	b.WriteString(quoteIdent(c.Column))
	b.WriteString(" ")
	b.WriteString(c.Op)
	b.WriteString(" ")
	b.WriteString(Placeholder(c.Param))
}

func (a And) render(b *strings.Builder) {
	for i, p := range a {
		if i > 0 {
			b.WriteString(" AND ")
		}
		p.render(b)
	}
}

func (o Or) render(b *strings.Builder) {
	b.WriteString("(")
	for i, p := range o {
		if i > 0 {
			b.WriteString(" OR ")
		}
		p.render(b)
	}
	b.WriteString(")")
}

// Render liefert den SQL-Text eines Prädikats mit benannten Platzhaltern.
func Render(p Predicate) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	p.render(&b)
	return b.String()
}

// quoteIdent quotet Spaltennamen; die Tabellen nutzen vietnamesische Namen mit Leer- und Satzzeichen.
func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// conjunction fasst Prädikate zusammen; nil bei leerer Liste, das Prädikat selbst bei genau einem.
func conjunction(preds []Predicate) Predicate {
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return And(preds)
	}
}
