package query

// Filters ist die Filteranfrage des Clients, adressiert über logische Feldnamen.
type Filters struct {
	Investor         string   `json:"investor"`
	SelectionMethod  []string `json:"selectionMethod"`
	ApprovalDecision string   `json:"approvalDecision"`
	DrugName         string   `json:"drugName"`
	ActiveIngredient string   `json:"activeIngredient"`
	Concentration    string   `json:"concentration"`
	Route            string   `json:"route"`
	DosageForm       string   `json:"dosageForm"`
	Specification    string   `json:"specification"`
	DrugGroup        string   `json:"drugGroup"`
	RegNo            string   `json:"regNo"`
	Unit             string   `json:"unit"`
	Manufacturer     string   `json:"manufacturer"`
	Country          string   `json:"country"`
	Place            []string `json:"place"`
	Validity         string   `json:"validity"`
	DateFrom         string   `json:"dateFrom"`
	DateTo           string   `json:"dateTo"`
}

// text liefert den Wert eines skalaren Feldes; unbekannte Namen sind leer.
func (f *Filters) text(field string) string {
	if f == nil {
		return ""
	}
	switch field {
	case "investor":
		return f.Investor
	case "approvalDecision":
		return f.ApprovalDecision
	case "drugName":
		return f.DrugName
	case "activeIngredient":
		return f.ActiveIngredient
	case "concentration":
		return f.Concentration
	case "route":
		return f.Route
	case "dosageForm":
		return f.DosageForm
	case "specification":
		return f.Specification
	case "drugGroup":
		return f.DrugGroup
	case "regNo":
		return f.RegNo
	case "unit":
		return f.Unit
	case "manufacturer":
		return f.Manufacturer
	case "country":
		return f.Country
	case "validity":
		return f.Validity
	case "dateFrom":
		return f.DateFrom
	case "dateTo":
		return f.DateTo
	}
	return ""
}

func (f *Filters) list(field string) []string {
	if f == nil {
		return nil
	}
	switch field {
	case "selectionMethod":
		return f.SelectionMethod
	case "place":
		return f.Place
	}
	return nil
}

// Compile übersetzt die Filter für ein Datenset in ein WHERE-Prädikat.
// Reihenfolge: Textfelder (in Datenset-Reihenfolge), Mehrfachauswahl, exakte Felder,
// Datum von, Datum bis. Ohne gesetzte Filter ist das Prädikat nil.
func Compile(ds Dataset, f *Filters, params *Params) Predicate {
	var preds []Predicate

	for _, fc := range ds.TextFields {
		if cond := TextCondition(fc.Column, f.text(fc.Field), params); cond != nil {
			preds = append(preds, cond)
		}
	}
	for _, fc := range ds.ArrayFields {
		if values := f.list(fc.Field); len(values) > 0 {
			preds = append(preds, AnyOf{Column: fc.Column, Param: params.Add(values)})
		}
	}
	for _, fc := range ds.ExactFields {
		if v := f.text(fc.Field); v != "" {
			preds = append(preds, Equals{Column: fc.Column, Param: params.Add(v)})
		}
	}
	if dr := ds.Dates; dr != nil {
		if from := f.text(dr.FromField); from != "" {
			preds = append(preds, Compare{Column: dr.Column, Op: ">=", Param: params.Add(from)})
		}
		if to := f.text(dr.ToField); to != "" {
			preds = append(preds, Compare{Column: dr.Column, Op: "<=", Param: params.Add(to)})
		}
	}
	return conjunction(preds)
}
