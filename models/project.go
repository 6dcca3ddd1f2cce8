package models

import "time"

// Project is a client case study shown on the public portal.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Client      string    `json:"client" gorm:"type:varchar(255);not null"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex:idx_projects_slug"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	Resume      *string   `json:"resume,omitempty" gorm:"type:text"`
	MainImage   *string   `json:"main_image,omitempty" gorm:"type:varchar(512)"`
	URL         *string   `json:"url,omitempty" gorm:"type:varchar(512)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
