package booking

import (
	"time"

	"tutorin/internal/domain/user"

	"github.com/google/uuid"
)

// Action is something an actor may do to a booking in its current state.
type Action string

const (
	ActionView            Action = "view"
	ActionConfirm         Action = "confirm"
	ActionCompleteTutor   Action = "complete_tutor"
	ActionCompleteStudent Action = "complete_student"
	ActionCancel          Action = "cancel"
	ActionPay             Action = "pay"
)

// ActionsFor collapses the per-endpoint role checks into one place:
// given who is asking, what may they currently do to this booking.
func (b *Booking) ActionsFor(actorID uuid.UUID, role user.Role, now time.Time) []Action {
	isStudent := actorID == b.studentID
	isTutor := actorID == b.tutorID
	isAdmin := role == user.RoleAdmin

	if !isStudent && !isTutor && !isAdmin {
		return nil
	}

	actions := []Action{ActionView}
	ended := !now.Before(b.timeSlot.End())

	switch b.status {
	case StatusPendingPayment:
		if isStudent {
			actions = append(actions, ActionPay)
		}
		if isTutor {
			actions = append(actions, ActionConfirm)
		}
		actions = append(actions, ActionCancel)
	case StatusConfirmed:
		if isTutor && ended && !b.tutorCompleted {
			actions = append(actions, ActionCompleteTutor)
		}
		if isStudent && ended && b.tutorCompleted && !b.studentCompleted {
			actions = append(actions, ActionCompleteStudent)
		}
		actions = append(actions, ActionCancel)
	case StatusCompleted, StatusCancelled:
		// Terminal states allow viewing only.
	}

	return actions
}

// Can reports whether a single action is allowed.
func (b *Booking) Can(actorID uuid.UUID, role user.Role, action Action, now time.Time) bool {
	for _, a := range b.ActionsFor(actorID, role, now) {
		if a == action {
			return true
		}
	}
	return false
}
