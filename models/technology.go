package models

// Technology is a display label shared by many projects.
type Technology struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_technologies_name"`
}

// ProjectTechnology links a project to one of its technologies.
// Rows are replaced wholesale when a project's technology list changes.
type ProjectTechnology struct {
	ProjectID    uint `json:"project_id" gorm:"primaryKey;autoIncrement:false;uniqueIndex:idx_project_technologies_pair"`
	TechnologyID uint `json:"technology_id" gorm:"primaryKey;autoIncrement:false;uniqueIndex:idx_project_technologies_pair"`
}

// TableName keeps the join table named like the original schema.
func (ProjectTechnology) TableName() string {
	return "project_technologies"
}
