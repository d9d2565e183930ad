package models

import "time"

// StandardRecord ist eine Arzneimittel-Position aus columns_19_20.xlsx.
type StandardRecord struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TenderCode *string   `json:"ma_tbmt" gorm:"column:Mã TBMT;type:text;index:idx_df1_ma_tbmt"`
	DrugName   *string   `json:"drug_name" gorm:"column:Tên thuốc;type:text;index:idx_df1_tenthuoc"`
	Ingredient *string   `json:"active_ingredient" gorm:"column:Tên hoạt chất;type:text"`
	Strength   *string   `json:"concentration" gorm:"column:Nồng độ, hàm lượng;type:text"`
	Route      *string   `json:"route" gorm:"column:Đường dùng;type:text"`
	DosageForm *string   `json:"dosage_form" gorm:"column:Dạng bào chế;type:text"`
	Packing    *string   `json:"specification" gorm:"column:Quy cách;type:text"`
	DrugGroup  *string   `json:"drug_group" gorm:"column:Nhóm thuốc;type:text"`
	RegNo      *string   `json:"reg_no" gorm:"column:GĐKLH hoặc GPNK;type:text"`
	Producer   *string   `json:"manufacturer" gorm:"column:Cơ sở sản xuất;type:text"`
	Origin     *string   `json:"origin" gorm:"column:Xuất xứ;type:text;index:idx_df1_xuat_xu"`
	Unit       *string   `json:"unit" gorm:"column:Đơn vị tính;type:text;index:idx_df1_donvitinh"`
	Quantity   *float64  `json:"quantity" gorm:"column:Số lượng;type:numeric;index:idx_df1_soluong"`
	UnitPrice  *float64  `json:"unit_price" gorm:"column:Đơn giá trúng thầu (VND);type:numeric;index:idx_df1_dongia"`
	Amount     *float64  `json:"amount" gorm:"column:Thành tiền (VND);type:numeric;index:idx_df1_thanhtien"`
	Winner     *string   `json:"winner" gorm:"column:Nhà thầu trúng thầu;type:text;index:idx_df1_nhathau"`
	ShelfLife  *string   `json:"shelf_life" gorm:"column:Hạn dùng (tuổi thọ);type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName gibt explizit den Tabellennamen an.
func (StandardRecord) TableName() string {
	return "df1_standard"
}
