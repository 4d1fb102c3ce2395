package domain

import "time"

// Review is a customer review attached to exactly one product.
// Rows are removed together with their parent product.
type Review struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Rating        int       `json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	ReviewerName  string    `gorm:"size:100" json:"reviewer_name"`
	ReviewerEmail string    `gorm:"size:254" json:"reviewer_email"`
	ProductID     int64     `gorm:"index;not null" json:"product"`
	CreatedAt     time.Time `json:"date"`
}

// TableName returns table name
func (Review) TableName() string {
	return "reviews"
}
