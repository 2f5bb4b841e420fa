package model

import "time"

// User хранит язык и базовую валюту пользователя Telegram
type User struct {
	TelegramID int64     `json:"telegram_id"`
	Language   string    `json:"language"`
	Currency   string    `json:"main_currency"`
	CreatedAt  time.Time `json:"created_at"`
}

// Registered сообщает, выбраны ли язык и валюта
func (u *User) Registered() bool {
	return u.Language != "" && u.Currency != ""
}
