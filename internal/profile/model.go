// File: internal/profile/model.go
package profile

import (
	"time"

	"studybuddy_backend/internal/common"
	"studybuddy_backend/internal/plan"
)

// Document is the profile written for every new account, keyed by the identity UID.
type Document struct {
	FirstName string    `firestore:"firstName" json:"first_name"`
	LastName  string    `firestore:"lastName" json:"last_name"`
	Email     string    `firestore:"email" json:"email"`
	Plan      plan.ID   `firestore:"plan" json:"plan"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}

// Record is the SQL form of a Document.
type Record struct {
	UID       string    `gorm:"type:varchar(128);primaryKey"`
	FirstName string    `gorm:"type:varchar(100)"`
	LastName  string    `gorm:"type:varchar(100)"`
	Email     string    `gorm:"type:varchar(255);index"`
	Plan      string    `gorm:"type:varchar(20);not null;default:'free'"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName specifies the table name for the Record model.
func (Record) TableName() string {
	return "profiles"
}

func recordFromDocument(uid string, doc Document) *Record {
	return &Record{
		UID:       uid,
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Email:     doc.Email,
		Plan:      string(doc.Plan),
		CreatedAt: doc.CreatedAt,
	}
}

func (r *Record) toDocument() *Document {
	return &Document{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Plan:      plan.ID(r.Plan),
		CreatedAt: r.CreatedAt,
	}
}

// Gap marks an account whose profile write failed. The account exists at the
// identity provider without a profile. Gaps are only reported, never repaired here.
type Gap struct {
	common.BaseModel
	UID        string `gorm:"type:varchar(128);not null;index"`
	Email      string `gorm:"type:varchar(255)"`
	Plan       string `gorm:"type:varchar(20)"`
	Reason     string `gorm:"type:text"`
	ResolvedAt *time.Time
}

// TableName specifies the table name for the Gap model.
func (Gap) TableName() string {
	return "profile_gaps"
}
