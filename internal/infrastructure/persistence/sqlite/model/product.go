package model

// Product rows are owned by the catalog side; the pipeline only ever writes
// approval_status and updated_at.
type Product struct {
	ProductID      string `gorm:"column:product_id;type:text;primaryKey"`
	SellerID       string `gorm:"column:seller_id;type:text;not null;index"`
	Name           string `gorm:"column:name;type:text;not null"`
	PriceCents     int64  `gorm:"column:price_cents;not null;default:0"`
	ImagesJSON     string `gorm:"column:images_json;type:text;not null;default:'[]'"`
	VariantsJSON   string `gorm:"column:variants_json;type:text;not null;default:'[]'"`
	ApprovalStatus string `gorm:"column:approval_status;type:text;not null;default:'pending'"`
	CreatedAt      string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt      string `gorm:"column:updated_at;type:text;not null"`
}

func (Product) TableName() string {
	return "products"
}
