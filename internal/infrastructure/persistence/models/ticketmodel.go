package models

type TicketModel struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"size:200;not null"`
	Description   string `gorm:"type:text"`
	Priority      string `gorm:"size:20;not null;index"`
	Status        string `gorm:"size:20;not null;index"`
	IsResolved    bool   `gorm:"not null;default:false"`
	RemoteID      *int64 `gorm:"uniqueIndex"`
	RemoteStageID int64  `gorm:"not null;default:0"`
	OwnerID       uint   `gorm:"not null;index"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64  `gorm:"not null"`

	// Note: no foreign key constraints or associations. Message cleanup on
	// ticket deletion is handled by the repository.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type MessageModel struct {
	ID              uint   `gorm:"primaryKey"`
	TicketID        uint   `gorm:"not null;index"`
	RemoteMessageID *int64 `gorm:"uniqueIndex"`
	Body            string `gorm:"type:text;not null"`
	IsFromSupport   bool   `gorm:"not null;default:false"`
	CreatedAt       int64  `gorm:"not null;index"`
}

func (MessageModel) TableName() string {
	return "ticket_messages"
}
