package models

import "time"

// Статусы заявок на отсутствие
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

type LeaveRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"type:varchar(16);not null" json:"type"` // off, vacation, sick
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Status    string    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// IsPending проверяет, что заявка еще не обработана
func (r *LeaveRequest) IsPending() bool {
	return r.Status == LeaveStatusPending
}

// IsValidLeaveType проверяет тип заявки: через заявку оформляются
// только выходной, отпуск и больничный
func IsValidLeaveType(t string) bool {
	switch t {
	case EntryTypeOff, EntryTypeVacation, EntryTypeSick:
		return true
	}
	return false
}

// IsValidLeaveStatus проверяет решение менеджера по заявке
func IsValidLeaveStatus(s string) bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}
