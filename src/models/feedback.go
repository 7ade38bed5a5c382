package models

import "mrt/src/types"

type Feedback struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`

	types.Timestamps
}
