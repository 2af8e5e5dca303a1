package entity

import "time"

type User struct {
	ID                  string    `db:"id"`
	Email               string    `db:"email"`
	Name                string    `db:"name"`
	Password            string    `db:"password"`
	PhoneNumber         string    `db:"phone_number"`
	FCMToken            string    `db:"fcm_token"`
	GoogleCalendarToken string    `db:"google_calendar_token"`
	GmailToken          string    `db:"gmail_token"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

type UserLoginData struct {
	ID       string
	Username string
	Email    string
}
