package models

import "mrt/src/types"

type Staff struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Shift    string `json:"shift"`
	Contact  string `json:"contact"`

	types.Timestamps
}
