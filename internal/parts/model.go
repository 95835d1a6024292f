package parts

// Part is one maintenance inventory record. ReminderDate stays a plain
// string column: rows with a malformed date must survive in the store and
// be skipped at notification time, so the schema cannot enforce a date type.
type Part struct {
	ID                       uint   `gorm:"primaryKey"`
	PartNumber               string `gorm:"not null"`
	ItemName                 string `gorm:"not null"`
	Chapter                  int    `gorm:"not null"`
	ReminderDate             string // "YYYY-MM-DD"; empty means no reminder scheduled
	NotificationAcknowledged bool   `gorm:"not null;default:false"`
}

func (Part) TableName() string { return "items" }

// Notification is derived at read time and never persisted.
type Notification struct {
	ItemName string
	Message  string
}
