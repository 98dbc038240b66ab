package model

// Ledger tables are append-only audit trails. Rows are never updated or
// deleted by the pipeline.

type ApprovalRecord struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	AssessmentID string `gorm:"column:assessment_id;type:text;not null;index"`
	Description  string `gorm:"column:description;type:text;not null"`
	CreatedAt    string `gorm:"column:created_at;type:text;not null"`
}

func (ApprovalRecord) TableName() string {
	return "approval_records"
}

type RejectionRecord struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	AssessmentID string `gorm:"column:assessment_id;type:text;not null;index"`
	ProductID    string `gorm:"column:product_id;type:text;not null;index"`
	Description  string `gorm:"column:description;type:text;not null"`
	CreatedAt    string `gorm:"column:created_at;type:text;not null"`
}

func (RejectionRecord) TableName() string {
	return "rejection_records"
}

type RevisionRecord struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	AssessmentID string `gorm:"column:assessment_id;type:text;not null;index"`
	Description  string `gorm:"column:description;type:text;not null"`
	CreatedAt    string `gorm:"column:created_at;type:text;not null"`
}

func (RevisionRecord) TableName() string {
	return "revision_records"
}

type LogisticsRecord struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	AssessmentID string `gorm:"column:assessment_id;type:text;not null;index"`
	Description  string `gorm:"column:description;type:text;not null"`
	CreatedAt    string `gorm:"column:created_at;type:text;not null"`
}

func (LogisticsRecord) TableName() string {
	return "logistics_records"
}
