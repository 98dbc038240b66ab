package model

// Assessment holds status in the storage vocabulary; translation to the
// canonical vocabulary happens in the repository. The unique index on
// product_id is what makes assessment creation an idempotent upsert.
type Assessment struct {
	AssessmentID        string  `gorm:"column:assessment_id;type:text;primaryKey"`
	ProductID           string  `gorm:"column:product_id;type:text;not null;uniqueIndex"`
	Status              string  `gorm:"column:status;type:text;not null"`
	SellerName          string  `gorm:"column:seller_name;type:text;not null"`
	Logistics           *string `gorm:"column:logistics;type:text"`
	SubmittedAt         string  `gorm:"column:submitted_at;type:text;not null"`
	ApprovedAt          *string `gorm:"column:approved_at;type:text"`
	VerifiedAt          *string `gorm:"column:verified_at;type:text"`
	RejectedAt          *string `gorm:"column:rejected_at;type:text"`
	RevisionRequestedAt *string `gorm:"column:revision_requested_at;type:text"`
	RejectionReason     *string `gorm:"column:rejection_reason;type:text"`
	RejectionStage      *string `gorm:"column:rejection_stage;type:text"`
}

func (Assessment) TableName() string {
	return "assessments"
}
