package response

import (
	"time"

	"tutorin/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	StudentID          uuid.UUID  `json:"studentId"`
	StudentName        string     `json:"studentName"`
	TutorID            uuid.UUID  `json:"tutorId"`
	TutorName          string     `json:"tutorName"`
	Subject            string     `json:"subject"`
	Subtopic           *string    `json:"subtopic,omitempty"`
	GradeLevel         int        `json:"gradeLevel"`
	TeachingMethod     string     `json:"teachingMethod"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	DurationHours      float64    `json:"durationHours"`
	HourlyRate         int64      `json:"hourlyRate"`
	TotalPrice         int64      `json:"totalPrice"`
	Status             string     `json:"status"`
	Location           *string    `json:"location,omitempty"`
	MeetingURL         *string    `json:"meetingUrl,omitempty"`
	TutorCompleted     bool       `json:"tutorCompleted"`
	StudentCompleted   bool       `json:"studentCompleted"`
	TutorCompletedAt   *time.Time `json:"tutorCompletedAt,omitempty"`
	StudentCompletedAt *time.Time `json:"studentCompletedAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelledBy,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID             uuid.UUID `json:"id"`
	StudentName    string    `json:"studentName"`
	TutorName      string    `json:"tutorName"`
	Subject        string    `json:"subject"`
	GradeLevel     int       `json:"gradeLevel"`
	TeachingMethod string    `json:"teachingMethod"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	TotalPrice     int64     `json:"totalPrice"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type BookingCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 v.ID,
		StudentID:          v.StudentID,
		StudentName:        v.StudentName,
		TutorID:            v.TutorID,
		TutorName:          v.TutorName,
		Subject:            v.Subject,
		Subtopic:           v.Subtopic,
		GradeLevel:         v.GradeLevel,
		TeachingMethod:     v.TeachingMethod,
		StartTime:          v.StartTime,
		EndTime:            v.EndTime,
		DurationHours:      v.DurationHours,
		HourlyRate:         v.HourlyRate,
		TotalPrice:         v.TotalPrice,
		Status:             v.Status,
		Location:           v.Location,
		MeetingURL:         v.MeetingURL,
		TutorCompleted:     v.TutorCompleted,
		StudentCompleted:   v.StudentCompleted,
		TutorCompletedAt:   v.TutorCompletedAt,
		StudentCompletedAt: v.StudentCompletedAt,
		CancellationReason: v.CancellationReason,
		CancelledBy:        v.CancelledBy,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:             v.ID,
		StudentName:    v.StudentName,
		TutorName:      v.TutorName,
		Subject:        v.Subject,
		GradeLevel:     v.GradeLevel,
		TeachingMethod: v.TeachingMethod,
		StartTime:      v.StartTime,
		EndTime:        v.EndTime,
		TotalPrice:     v.TotalPrice,
		Status:         v.Status,
		CreatedAt:      v.CreatedAt,
	}
}
