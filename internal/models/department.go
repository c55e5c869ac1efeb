package models

import "time"

type Department struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Name          string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"name"`
	ManagerUserID *uint     `gorm:"index" json:"manager_user_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Manager *User `gorm:"foreignKey:ManagerUserID;constraint:OnDelete:SET NULL" json:"manager,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
