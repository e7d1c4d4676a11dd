package course

import "gorm.io/gorm"

// Course represents a purchasable learning course. A course referenced by a
// paid payment is treated as immutable; price changes only affect future
// purchases because payment items snapshot the price.
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	AuthorName  string `json:"author_name"`
	ImageURL    string `json:"image_url"`
	PriceCents  int64  `json:"price_cents" gorm:"not null;default:0"` // minor units, PEN
	Published   bool   `json:"published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`

	Modules []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
}

// Module groups lessons inside a course, ordered by OrderIndex
type Module struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ModuleID"`
}

// Lesson is a single unit of content within a module
type Lesson struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Title      string `json:"title"`
	Content    string `json:"content" gorm:"type:text"`
	VideoURL   string `json:"video_url"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
}
