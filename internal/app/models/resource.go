package models

import "time"

// Resource categories
const (
	CategoryNote       = "Note"
	CategoryQuestion   = "Question"
	CategorySuggestion = "Suggestion"
)

// Categories lists the accepted resource categories.
var Categories = []string{CategoryNote, CategoryQuestion, CategorySuggestion}

// Resource defines uploaded-material metadata based on the 'resources' table
type Resource struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	CourseName  string    `json:"courseName" db:"course_name"`
	Description *string   `json:"description,omitempty" db:"description"`
	FileURL     string    `json:"fileUrl" db:"file_url"`
	Category    string    `json:"category" db:"category"`
	UploaderID  int64     `json:"uploaderId" db:"uploader_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// IsValidCategory reports whether the category is one of the accepted ones.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
