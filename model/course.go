package model

import "time"

type Course struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	TeacherID   string    `json:"teacher_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Lecture struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	CourseID    string    `json:"course_id" gorm:"index"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ContentType string    `json:"content_type,omitempty"`
	ContentURL  string    `json:"content_url,omitempty"`
	OrderIndex  int       `json:"order_index"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Enrollment struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index:idx_enrollments_user_course,unique"`
	CourseID   string    `json:"course_id" gorm:"index:idx_enrollments_user_course,unique"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type Assignment struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	CourseID    string     `json:"course_id" gorm:"index"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AssignmentSubmission struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	AssignmentID   string    `json:"assignment_id" gorm:"index"`
	UserID         string    `json:"user_id" gorm:"index"`
	SubmissionText string    `json:"submission_text"`
	SubmittedAt    time.Time `json:"submitted_at"`
}
