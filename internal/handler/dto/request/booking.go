package request

import (
	"time"

	"tutorin/internal/pkg/wib"
	"tutorin/internal/usecase/commands"
	"tutorin/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TutorID        uuid.UUID `json:"tutor_id" binding:"required"`
	Subject        string    `json:"subject" binding:"required"`
	Subtopic       *string   `json:"subtopic,omitempty"`
	GradeLevel     int       `json:"grade_level" binding:"required"`
	TeachingMethod string    `json:"teaching_method" binding:"required,oneof=online offline"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	DurationHours  float64   `json:"duration_hours" binding:"required"`
	Location       *string   `json:"location,omitempty"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		TutorID:        r.TutorID,
		Subject:        r.Subject,
		Subtopic:       r.Subtopic,
		GradeLevel:     r.GradeLevel,
		TeachingMethod: r.TeachingMethod,
		StartTime:      r.StartTime,
		DurationHours:  r.DurationHours,
		Location:       r.Location,
	}
}

type ConfirmBookingRequest struct {
	MeetingURL *string `json:"meeting_url,omitempty"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListBookingsQuery carries the optional list filters. Dates are WIB
// calendar days; "from" is inclusive, "to" exclusive of the next day.
type ListBookingsQuery struct {
	Status   *string `form:"status"`
	DateFrom *string `form:"date_from"`
	DateTo   *string `form:"date_to"`
	Limit    int32   `form:"limit"`
	Offset   int32   `form:"offset"`
}

func (q ListBookingsQuery) ToFilter() (queries.BookingFilter, error) {
	filter := queries.BookingFilter{
		Status: q.Status,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.DateFrom != nil {
		day, err := wib.ParseDate(*q.DateFrom)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.DateFrom = &day
	}
	if q.DateTo != nil {
		day, err := wib.ParseDate(*q.DateTo)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		end := day.Add(24 * time.Hour)
		filter.DateTo = &end
	}
	return filter, nil
}
