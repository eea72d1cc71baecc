package models

import "time"

type Excuse struct {
	ID        string
	TaskID    string
	Content   string
	CreatedAt time.Time
	// WordCount is the character count of the trimmed
	// content, computed once at creation and never updated.
	WordCount int
}
