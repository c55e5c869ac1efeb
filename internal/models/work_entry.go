package models

import "time"

// Типы записей календаря
const (
	EntryTypeShift    = "shift"
	EntryTypeOff      = "off"
	EntryTypeVacation = "vacation"
	EntryTypeSick     = "sick"
	EntryTypeTrip     = "trip"
	EntryTypeOther    = "other"
)

// WorkEntry - одна запись календаря: ровно одна строка на (user_id, date)
type WorkEntry struct {
	ID     uint      `gorm:"primarykey" json:"id"`
	UserID uint      `gorm:"not null;index;uniqueIndex:uq_work_entries_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uq_work_entries_user_date" json:"date"`

	Type string `gorm:"type:varchar(16);not null" json:"type"`

	// Время дня в формате ЧЧ:ММ, без таймзоны
	StartTime *string `gorm:"type:varchar(5)" json:"start_time"`
	EndTime   *string `gorm:"type:varchar(5)" json:"end_time"`
	Title     string  `gorm:"type:text" json:"title"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (WorkEntry) TableName() string {
	return "work_entries"
}

// IsValidEntryType проверяет, известен ли тип записи
func IsValidEntryType(t string) bool {
	switch t {
	case EntryTypeShift, EntryTypeOff, EntryTypeVacation, EntryTypeSick, EntryTypeTrip, EntryTypeOther:
		return true
	}
	return false
}
