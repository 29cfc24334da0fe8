package domain

import "time"

type Assignment struct {
	ID           string `json:"id"`
	CourseID     string `json:"courseId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`

	StartDate             time.Time  `json:"startDate"`
	DueDate               time.Time  `json:"dueDate"`
	AllowLateSubmission   bool       `json:"allowLateSubmission"`
	LatePenaltyPercentage *float64   `json:"latePenaltyPercentage,omitempty"` // per day late
	CutoffDate            *time.Time `json:"cutoffDate,omitempty"`            // hard deadline when late submissions are allowed

	MaxAttempts int `json:"maxAttempts"` // 0 = unlimited

	AllowedFileTypes []string `json:"allowedFileTypes"` // e.g. ".pdf", ".docx"
	MaxFileSize      int      `json:"maxFileSize"`      // MB
	MaxFiles         int      `json:"maxFiles"`

	TotalPoints float64 `json:"totalPoints"`

	GroupIDs []string `json:"groupIds"` // empty = every student in the course

	Attachments []AssignmentAttachment `json:"attachments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy"` // instructor user id
	Published bool      `json:"published"`
}

type AssignmentAttachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"` // MIME type
	Size       int64     `json:"size"` // bytes
	UploadedAt time.Time `json:"uploadedAt"`
}

type SubmissionStatus string

const (
	SubmissionStatusNotSubmitted SubmissionStatus = "not_submitted"
	SubmissionStatusSubmitted    SubmissionStatus = "submitted"
	SubmissionStatusGraded       SubmissionStatus = "graded"
	SubmissionStatusReturned     SubmissionStatus = "returned"
)

type Submission struct {
	ID            string `json:"id"`
	AssignmentID  string `json:"assignmentId"`
	CourseID      string `json:"courseId"`
	StudentID     string `json:"studentId"`
	AttemptNumber int    `json:"attemptNumber"`

	Files []SubmissionFile `json:"files"`
	Text  *string          `json:"text,omitempty"`

	SubmittedAt time.Time `json:"submittedAt"`
	IsLate      bool      `json:"isLate"`

	// Status is never SubmissionStatusNotSubmitted on a stored submission.
	Status   SubmissionStatus `json:"status"`
	Grade    *float64         `json:"grade,omitempty"`
	Feedback *string          `json:"feedback,omitempty"`
	GradedAt *time.Time       `json:"gradedAt,omitempty"`
	GradedBy *string          `json:"gradedBy,omitempty"` // instructor user id

	UpdatedAt time.Time `json:"updatedAt"`
}

type SubmissionFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// SubmissionSummary backs the instructor tracking dashboard.
type SubmissionSummary struct {
	AssignmentID    string   `json:"assignmentId"`
	TotalStudents   int      `json:"totalStudents"`
	Submitted       int      `json:"submitted"`
	NotSubmitted    int      `json:"notSubmitted"`
	Graded          int      `json:"graded"`
	LateSubmissions int      `json:"lateSubmissions"`
	AverageGrade    *float64 `json:"averageGrade,omitempty"`
}

type StudentSubmissionStatus struct {
	StudentID        string           `json:"studentId"`
	StudentName      string           `json:"studentName"`
	StudentEmail     string           `json:"studentEmail"`
	HasSubmitted     bool             `json:"hasSubmitted"`
	AttemptCount     int              `json:"attemptCount"`
	LatestSubmission *Submission      `json:"latestSubmission,omitempty"`
	IsLate           bool             `json:"isLate"`
	Grade            *float64         `json:"grade,omitempty"`
	Status           SubmissionStatus `json:"status"`
}
