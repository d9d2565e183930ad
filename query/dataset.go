package query

// Spaltennamen der gemeinsamen Metadaten-Tabelle (additional_info_log) und Schlüssel.
const (
	ColTenderCode       = "Mã TBMT"
	ColInvestor         = "Chủ đầu tư"
	ColApprovalDecision = "Quyết định phê duyệt"
	ColApprovalDate     = "Ngày phê duyệt"
	ColExpiryDate       = "Ngày hết hiệu lực"
	ColPlace            = "Địa điểm"
	ColSelectionMethod  = "Hình thức LCNT"
	ColValidity         = "Tình trạng hiệu lực"

	ColUnit      = "Đơn vị tính"
	ColUnitPrice = "Đơn giá trúng thầu (VND)"
	ColAmount    = "Thành tiền (VND)"
	ColOrigin    = "Xuất xứ"
	ColWinner    = "Nhà thầu trúng thầu"
	ColCreatedAt = "created_at"
)

// FieldColumn ordnet einem logischen Filterfeld eine physische Spalte zu.
type FieldColumn struct {
	Field  string
	Column string
}

// DateRange beschreibt einen inklusiven Datumsbereich auf einer Spalte.
type DateRange struct {
	FromField string
	ToField   string
	Column    string
}

// Dataset beschreibt ein logisches Datenset: View, Feldzuordnung und Sortier-Whitelist.
type Dataset struct {
	Name      string // Schlüssel in der API-Antwort (df1, df2)
	View      string
	BaseTable string

	TextFields  []FieldColumn // Reihenfolge bestimmt die Parameterreihenfolge
	ArrayFields []FieldColumn
	ExactFields []FieldColumn
	Dates       *DateRange

	SortColumns  map[string]string
	DefaultOrder []OrderTerm
	DumpOrder    []OrderTerm
}

// SortColumn löst einen logischen Sortiernamen über die Whitelist auf.
func (d Dataset) SortColumn(name string) (string, bool) {
	col, ok := d.SortColumns[name]
	return col, ok
}

func baseSortColumns(extra map[string]string) map[string]string {
	m := map[string]string{
		"ma_tbmt":          ColTenderCode,
		"investor":         ColInvestor,
		"approvalDecision": ColApprovalDecision,
		"approvalDate":     ColApprovalDate,
		"expiryDate":       ColExpiryDate,
		"unit":             ColUnit,
		"unitPrice":        ColUnitPrice,
		"amount":           ColAmount,
		"origin":           ColOrigin,
		"winner":           ColWinner,
		"place":            ColPlace,
		"validity":         ColValidity,
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

var (
	metadataArrayFields = []FieldColumn{
		{Field: "selectionMethod", Column: ColSelectionMethod},
		{Field: "place", Column: ColPlace},
	}
	metadataExactFields = []FieldColumn{
		{Field: "validity", Column: ColValidity},
	}
	approvalDateRange = &DateRange{FromField: "dateFrom", ToField: "dateTo", Column: ColApprovalDate}

	defaultOrder = []OrderTerm{
		{Column: ColApprovalDate, Desc: true, NullsLast: true},
		{Column: ColTenderCode},
	}
	dumpOrder = []OrderTerm{
		{Column: ColCreatedAt, Desc: true},
		{Column: ColTenderCode},
	}
)

// Standard ist das Datenset der Arzneimittel-Positionen (df1_standard / df1_full).
var Standard = Dataset{
	Name:      "df1",
	View:      "df1_full",
	BaseTable: "df1_standard",
	TextFields: []FieldColumn{
		{Field: "drugName", Column: "Tên thuốc"},
		{Field: "activeIngredient", Column: "Tên hoạt chất"},
		{Field: "concentration", Column: "Nồng độ, hàm lượng"},
		{Field: "route", Column: "Đường dùng"},
		{Field: "dosageForm", Column: "Dạng bào chế"},
		{Field: "specification", Column: "Quy cách"},
		{Field: "drugGroup", Column: "Nhóm thuốc"},
		{Field: "regNo", Column: "GĐKLH hoặc GPNK"},
		{Field: "unit", Column: ColUnit},
		{Field: "manufacturer", Column: "Cơ sở sản xuất"},
		{Field: "country", Column: ColOrigin},
		{Field: "investor", Column: ColInvestor},
		{Field: "approvalDecision", Column: ColApprovalDecision},
	},
	ArrayFields: metadataArrayFields,
	ExactFields: metadataExactFields,
	Dates:       approvalDateRange,
	SortColumns: baseSortColumns(map[string]string{
		"quantity": "Số lượng",
		"drugName": "Tên thuốc",
	}),
	DefaultOrder: defaultOrder,
	DumpOrder:    dumpOrder,
}

// Extended ist das Datenset der Waren-/Geräte-Positionen (df2_extended / df2_full).
var Extended = Dataset{
	Name:      "df2",
	View:      "df2_full",
	BaseTable: "df2_extended",
	TextFields: []FieldColumn{
		{Field: "drugName", Column: "Tên hàng hóa"},
		{Field: "manufacturer", Column: "Nhãn hiệu"},
		{Field: "specification", Column: "Tính năng kỹ thuật"},
		{Field: "country", Column: ColOrigin},
		{Field: "unit", Column: ColUnit},
		{Field: "investor", Column: ColInvestor},
		{Field: "approvalDecision", Column: ColApprovalDecision},
	},
	ArrayFields: metadataArrayFields,
	ExactFields: metadataExactFields,
	Dates:       approvalDateRange,
	SortColumns: baseSortColumns(map[string]string{
		"quantity": "Khối lượng",
		"drugName": "Tên hàng hóa",
	}),
	DefaultOrder: defaultOrder,
	DumpOrder:    dumpOrder,
}

// Datasets listet alle Datensets in Antwortreihenfolge.
var Datasets = []Dataset{Standard, Extended}

// DatasetByName sucht ein Datenset über seinen API-Schlüssel.
func DatasetByName(name string) (Dataset, bool) {
	for _, ds := range Datasets {
		if ds.Name == name {
			return ds, true
		}
	}
	return Dataset{}, false
}
