package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"mrt/src/types"
)

type QuestionList []types.VerificationQuestion

func (l QuestionList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	return string(b), err
}
func (l *QuestionList) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// LostItem is a lost-and-found posting. Ownership claims are screened with
// the poster's verification questions.
type LostItem struct {
	ID           uint                 `gorm:"primarykey" json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Photos       StringList           `gorm:"type:jsonb;default:'[]'" json:"photos"`
	ContactName  string               `json:"contactName"`
	ContactPhone string               `json:"contactPhone"`
	ContactEmail string               `json:"contactEmail"`
	Status       types.LostItemStatus `gorm:"default:'lost'" json:"status"`
	Questions    QuestionList         `gorm:"type:jsonb;default:'[]'" json:"questions"`
	PostedBy     string               `json:"postedBy"`

	types.Timestamps
}
