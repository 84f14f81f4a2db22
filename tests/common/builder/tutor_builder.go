//go:build unit || e2e

package builder

import (
	"tutorin/internal/domain/availability"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

type TutorBuilder struct {
	ID            uuid.UUID
	Approved      bool
	Blocked       bool
	HourlyRate    int64
	Template      availability.Template
	TotalSessions int32
}

func NewTutorBuilder() *TutorBuilder {
	return &TutorBuilder{
		ID:         uuid.New(),
		Approved:   true,
		Blocked:    false,
		HourlyRate: 100_000,
		// Monday and Wednesday mornings, 09:00-12:00 WIB.
		Template: availability.Template{
			{Weekday: 1, StartMinute: 9 * 60, EndMinute: 12 * 60},
			{Weekday: 3, StartMinute: 9 * 60, EndMinute: 12 * 60},
		},
	}
}

func (b *TutorBuilder) With(mutate func(*TutorBuilder)) *TutorBuilder {
	mutate(b)
	return b
}

func (b *TutorBuilder) WithID(id uuid.UUID) *TutorBuilder {
	b.ID = id
	return b
}

func (b *TutorBuilder) WithHourlyRate(rate int64) *TutorBuilder {
	b.HourlyRate = rate
	return b
}

func (b *TutorBuilder) WithTemplate(tpl availability.Template) *TutorBuilder {
	b.Template = tpl
	return b
}

func (b *TutorBuilder) AsUnapproved() *TutorBuilder {
	b.Approved = false
	return b
}

func (b *TutorBuilder) AsBlocked() *TutorBuilder {
	b.Blocked = true
	return b
}

func (b *TutorBuilder) BuildSnapshot() *shared.TutorSnapshot {
	return &shared.TutorSnapshot{
		ID:            b.ID,
		Approved:      b.Approved,
		Blocked:       b.Blocked,
		HourlyRate:    b.HourlyRate,
		Template:      b.Template,
		TotalSessions: b.TotalSessions,
	}
}
