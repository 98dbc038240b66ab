package model

type Seller struct {
	SellerID  string `gorm:"column:seller_id;type:text;primaryKey"`
	StoreName string `gorm:"column:store_name;type:text;not null"`
	CreatedAt string `gorm:"column:created_at;type:text;not null"`
}

func (Seller) TableName() string {
	return "sellers"
}
