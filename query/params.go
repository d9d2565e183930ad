package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrUnknownParam wird geliefert, wenn ein Platzhalter keinem Parameter zugeordnet ist.
var ErrUnknownParam = errors.New("unknown query parameter")

// placeholderPattern erkennt benannte Platzhalter ($p1, $p2, ...) als ganzes Token.
var placeholderPattern = regexp.MustCompile(`\$(p[0-9]+)\b`)

// Params ist die geordnete Menge benannter Parameter einer Abfrage.
// Die Einfügereihenfolge ist zugleich die Reihenfolge der Positionsparameter.
type Params struct {
	names  []string
	values map[string]any
}

// NewParams erstellt eine leere Parametermenge.
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// Add legt einen neuen Parameter unter einem frischen Namen ab und liefert den Namen.
func (p *Params) Add(value any) string {
	name := "p" + strconv.Itoa(len(p.names)+1)
	p.names = append(p.names, name)
	p.values[name] = value
	return name
}

// Len liefert die Anzahl der Parameter.
func (p *Params) Len() int {
	return len(p.names)
}

// Names liefert die Parameternamen in Einfügereihenfolge.
func (p *Params) Names() []string {
	return append([]string(nil), p.names...)
}

// Value liefert den Wert eines Parameters.
func (p *Params) Value(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Placeholder rendert den benannten Platzhalter für name.
func Placeholder(name string) string {
	return "$" + name
}

// Bind ersetzt benannte Platzhalter durch $1..$n. Die Positionen folgen der
// Einfügereihenfolge der Parameter; nur im Text referenzierte Parameter werden gebunden.
// Daten- und Count-Abfrage werden jeweils unabhängig gebunden.
func Bind(sqlText string, params *Params) (string, []any, error) {
	referenced := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(sqlText, -1) {
		if params == nil {
			return "", nil, fmt.Errorf("%w: %s", ErrUnknownParam, m[1])
		}
		if _, ok := params.values[m[1]]; !ok {
			return "", nil, fmt.Errorf("%w: %s", ErrUnknownParam, m[1])
		}
		referenced[m[1]] = true
	}
	if len(referenced) == 0 {
		return sqlText, nil, nil
	}

	positions := make(map[string]int, len(referenced))
	args := make([]any, 0, len(referenced))
	for _, name := range params.names {
		if !referenced[name] {
			continue
		}
		args = append(args, params.values[name])
		positions[name] = len(args)
	}

	out := placeholderPattern.ReplaceAllStringFunc(sqlText, func(token string) string {
		return "$" + strconv.Itoa(positions[token[1:]])
	})
	return out, args, nil
}
