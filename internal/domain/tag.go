package domain

// Tag is a label shared by many products. Name carries a unique index so
// get-or-create resolution cannot produce duplicate rows under concurrency.
type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`

	Products []*Product `gorm:"many2many:product_tags" json:"-"`
}

// TableName returns table name
func (Tag) TableName() string {
	return "tags"
}
