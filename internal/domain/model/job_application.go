package model

import "time"

// JobApplication records a student applying to a JOB_POST.
type JobApplication struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	StudentID  string    `json:"student_id"`
	AlumniID   string    `json:"alumni_id"` // Author of the job post
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Batch      string    `json:"batch"`
	Phone      string    `json:"phone"`
	ResumeURL  string    `json:"resume_url"` // Base64 or URL
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
