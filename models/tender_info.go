package models

import "time"

// TenderInfo enthält die Metadaten einer Ausschreibung (eine Zeile je Mã TBMT).
type TenderInfo struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	TenderCode       *string    `json:"ma_tbmt" gorm:"column:Mã TBMT;type:text;index:idx_ai_ma_tbmt"`
	Investor         *string    `json:"investor" gorm:"column:Chủ đầu tư;type:text;index:idx_ai_chu_dau_tu"`
	ApprovalDecision *string    `json:"approval_decision" gorm:"column:Quyết định phê duyệt;type:text;index:idx_ai_quyet_dinh"`
	ApprovalDate     *time.Time `json:"approval_date" gorm:"column:Ngày phê duyệt;type:date;index:idx_ai_ngay_phe_duyet"`
	ExpiryDate       *time.Time `json:"expiry_date" gorm:"column:Ngày hết hiệu lực;type:date;index:idx_ai_ngay_het_hieu_luc"`
	Place            *string    `json:"place" gorm:"column:Địa điểm;type:text;index:idx_ai_dia_diem"`
	SelectionMethod  *string    `json:"selection_method" gorm:"column:Hình thức LCNT;type:text"`
	Validity         *string    `json:"validity" gorm:"column:Tình trạng hiệu lực;type:text;index:idx_ai_tinh_trang"`
	CreatedAt        time.Time  `json:"created_at" gorm:"column:created_at"`
}

// TableName gibt explizit den Tabellennamen an.
func (TenderInfo) TableName() string {
	return "additional_info_log"
}
