package model

import "time"

// User: пользователь бота. ID выдаёт платформа, поэтому автоинкремента нет.
type User struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	Username  string
	FirstName string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
