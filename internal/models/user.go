package models

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'employee'" json:"role"`
}

// IsManager проверяет, является ли пользователь менеджером
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// TableName задает имя таблицы в БД
func (User) TableName() string {
	return "users"
}
