package models

import "time"

// ProjectImage is an extra gallery image attached to a project. The
// ImagePath is a root-relative public path (e.g. /uploads/<name>); the
// database row is the authoritative record, the backing file is removed
// best-effort when the row goes away.
type ProjectImage struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID uint      `json:"project_id" gorm:"not null;index:idx_project_images_project_id"`
	ImagePath string    `json:"image_path" gorm:"type:varchar(512);not null"`
	Caption   *string   `json:"caption,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
