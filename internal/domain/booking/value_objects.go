package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinDurationHours = 0.5
	MaxDurationHours = 8.0

	MinGradeLevel = 1
	MaxGradeLevel = 12

	MaxSubjectLength  = 100
	MaxSubtopicLength = 200
	MaxLocationLength = 500
)

var (
	ErrInvalidTimeSlot    = errors.New("start time must be before end time")
	ErrInsufficientLead   = errors.New("booking must start at least two hours in advance")
	ErrInvalidDuration    = errors.New("duration must be between 0.5 and 8 hours in half-hour steps")
	ErrInvalidGradeLevel  = errors.New("grade level must be between 1 and 12")
	ErrEmptySubject       = errors.New("subject is required")
	ErrSubjectTooLong     = errors.New("subject exceeds maximum length")
	ErrSubtopicTooLong    = errors.New("subtopic exceeds maximum length")
	ErrLocationTooLong    = errors.New("location exceeds maximum length")
	ErrNegativeRate       = errors.New("hourly rate cannot be negative")
)

// TimeSlot is a half-open [start, end) interval of absolute instants.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time        { return ts.start }
func (ts TimeSlot) End() time.Time          { return ts.end }
func (ts TimeSlot) Duration() time.Duration { return ts.end.Sub(ts.start) }

// Overlaps applies the half-open interval test: two slots conflict when
// each starts before the other ends.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) ValidateLeadTimeAt(now time.Time, lead time.Duration) error {
	if ts.start.Before(now.Add(lead)) {
		return ErrInsufficientLead
	}
	return nil
}

// ToTstzrange renders the slot as a PostgreSQL half-open range literal.
func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// Duration is session length in hours, half-hour granularity.
type Duration struct {
	halfHours int
}

func NewDuration(hours float64) (Duration, error) {
	halves := hours * 2
	if halves != float64(int(halves)) {
		return Duration{}, ErrInvalidDuration
	}
	if hours < MinDurationHours || hours > MaxDurationHours {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{halfHours: int(halves)}, nil
}

func (d Duration) Hours() float64 { return float64(d.halfHours) / 2 }

func (d Duration) AsTimeDuration() time.Duration {
	return time.Duration(d.halfHours) * 30 * time.Minute
}

// Money is an amount of whole rupiah.
type Money struct {
	amount int64
}

func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeRate
	}
	return Money{amount: amount}, nil
}

func (m Money) Amount() int64 { return m.amount }

// MulHours computes a total price from an hourly amount. Half-hour
// granularity keeps the result integral.
func (m Money) MulHours(d Duration) Money {
	return Money{amount: m.amount * int64(d.halfHours) / 2}
}

type GradeLevel int

func NewGradeLevel(v int) (GradeLevel, error) {
	if v < MinGradeLevel || v > MaxGradeLevel {
		return 0, ErrInvalidGradeLevel
	}
	return GradeLevel(v), nil
}

func (g GradeLevel) Int() int { return int(g) }

type Subject struct {
	name     string
	subtopic *string
}

func NewSubject(name string, subtopic *string) (Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Subject{}, ErrEmptySubject
	}
	if len(name) > MaxSubjectLength {
		return Subject{}, ErrSubjectTooLong
	}
	if subtopic != nil {
		t := strings.TrimSpace(*subtopic)
		if len(t) > MaxSubtopicLength {
			return Subject{}, ErrSubtopicTooLong
		}
		if t == "" {
			subtopic = nil
		} else {
			subtopic = &t
		}
	}
	return Subject{name: name, subtopic: subtopic}, nil
}

func (s Subject) Name() string      { return s.name }
func (s Subject) Subtopic() *string { return s.subtopic }
