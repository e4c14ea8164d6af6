package models

import "time"

// DateLayout is the wire format of Task.DueDate.
const DateLayout = "2006-01-02"

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	ProjectID   uint64     `gorm:"not null" json:"project_id"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// TruncateToDate drops the time of day, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
