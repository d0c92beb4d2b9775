package models

type User struct {
	ID       int64  `json:"id" db:"id"`
	FullName string `json:"fullName" db:"fullName"`
	Username string `json:"username" db:"username"`
}
