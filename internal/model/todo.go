package model

type Todo struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`
	Title  string `json:"title" db:"title"`
	Ctime  int64  `json:"ctime" db:"ctime"`
}
