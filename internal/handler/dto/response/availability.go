package response

import (
	"tutorin/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type AvailableSlotsResponse struct {
	TutorID   uuid.UUID      `json:"tutorId"`
	Date      string         `json:"date"`
	DayOfWeek string         `json:"dayOfWeek"`
	Slots     []SlotResponse `json:"slots"`
}

func FromAvailabilityDayView(v *queries.AvailabilityDayView) *AvailableSlotsResponse {
	resp := &AvailableSlotsResponse{
		TutorID:   v.TutorID,
		Date:      v.Date,
		DayOfWeek: v.DayOfWeek,
		Slots:     make([]SlotResponse, len(v.Slots)),
	}
	for i, s := range v.Slots {
		resp.Slots[i] = SlotResponse{StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return resp
}
