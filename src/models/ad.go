package models

import "mrt/src/types"

type Ad struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageUrl    string `json:"imageUrl"`
	Link        string `json:"link"`
	Order       int    `gorm:"column:display_order" json:"order"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	types.Timestamps
}
