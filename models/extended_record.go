package models

import "time"

// ExtendedRecord ist eine Waren-Position (Medizinprodukte etc.) aus columns_13_14.xlsx.
type ExtendedRecord struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TenderCode *string   `json:"ma_tbmt" gorm:"column:Mã TBMT;type:text;index:idx_df2_ma_tbmt"`
	GoodsName  *string   `json:"goods_name" gorm:"column:Tên hàng hóa;type:text;index:idx_df2_ten_hang_hoa"`
	Brand      *string   `json:"brand" gorm:"column:Nhãn hiệu;type:text"`
	ModelCode  *string   `json:"model_code" gorm:"column:Ký mã hiệu;type:text"`
	Features   *string   `json:"features" gorm:"column:Tính năng kỹ thuật;type:text"`
	Origin     *string   `json:"origin" gorm:"column:Xuất xứ;type:text;index:idx_df2_xuat_xu"`
	Maker      *string   `json:"maker" gorm:"column:Hãng sản xuất;type:text"`
	Unit       *string   `json:"unit" gorm:"column:Đơn vị tính;type:text;index:idx_df2_donvitinh"`
	Volume     *float64  `json:"quantity" gorm:"column:Khối lượng;type:numeric;index:idx_df2_soluong"`
	UnitPrice  *float64  `json:"unit_price" gorm:"column:Đơn giá trúng thầu (VND);type:numeric;index:idx_df2_dongia"`
	Amount     *float64  `json:"amount" gorm:"column:Thành tiền (VND);type:numeric;index:idx_df2_thanhtien"`
	Winner     *string   `json:"winner" gorm:"column:Nhà thầu trúng thầu;type:text;index:idx_df2_nhathau"`
	SearchBlob *string   `json:"search" gorm:"column:search;type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName gibt explizit den Tabellennamen an.
func (ExtendedRecord) TableName() string {
	return "df2_extended"
}
