package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	FirstName string    `gorm:"size:255;not null"`
	LastName  string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255"`
	Phone     string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Company *CompanyRef `gorm:"foreignKey:CompanyID"`
}

func (Employee) TableName() string {
	return "employees"
}

// CompanyRef is the read-only slice of the companies table this package
// needs: enough to join the owning company into listings and to resolve a
// referenced id. The company package owns the full record.
type CompanyRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (CompanyRef) TableName() string {
	return "companies"
}
