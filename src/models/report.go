package models

import "mrt/src/types"

// Report is a bug or hazard report filed by a user, optionally with media
// attachments stored under the uploads directory and addressed by path.
type Report struct {
	ID              uint             `gorm:"primarykey" json:"id"`
	ReporterID      uint             `json:"reporter"`
	Type            types.ReportType `json:"type"`
	Subject         string           `json:"subject"`
	Description     string           `json:"description"`
	Rating          *int             `json:"rating,omitempty"`
	StationLocation string           `json:"stationLocation"`
	Media           StringList       `gorm:"type:jsonb;default:'[]'" json:"media"`

	Reporter *User `gorm:"foreignKey:ReporterID" json:"reporterInfo,omitempty"`

	types.Timestamps
}
