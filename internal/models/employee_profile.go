package models

import "time"

type EmployeeProfile struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName       string     `json:"full_name"`
	BirthDate      *time.Time `gorm:"type:date" json:"birth_date"`
	EmployeeNumber string     `gorm:"type:varchar(32)" json:"employee_number"`
	Position       string     `gorm:"type:varchar(128)" json:"position"`
	WorkStartDate  *time.Time `gorm:"type:date" json:"work_start_date"`
	DepartmentID   *uint      `gorm:"index" json:"department_id"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User       User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
}

func (EmployeeProfile) TableName() string {
	return "employee_profiles"
}
