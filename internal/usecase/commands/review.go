package commands

import (
	"context"

	"tutorin/internal/domain/booking"
	domreview "tutorin/internal/domain/review"
	"tutorin/internal/domain/user"
	"tutorin/internal/infra"
	"tutorin/internal/pkg/clock"
	"tutorin/internal/pkg/errs"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound       = errs.New("review not found")
	ErrReviewNotOwned       = errs.New("review not owned by caller")
	ErrNotReviewTarget      = errs.New("caller is not the tutor on this review")
	ErrDuplicateReview      = errs.New("booking already reviewed")
	ErrBookingNotReviewable = errs.New("only completed bookings can be reviewed")
)

type CreateReviewRequest struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

type CreateReviewResult struct {
	ReviewID uuid.UUID
}

type ReviewCommands interface {
	Create(ctx context.Context, req CreateReviewRequest, studentID uuid.UUID) (*CreateReviewResult, error)
	Delete(ctx context.Context, reviewID, actorID uuid.UUID, role user.Role) error
	// Respond records the tutor's single public answer to a review.
	Respond(ctx context.Context, reviewID, tutorID uuid.UUID, text string) error
}

type reviewUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewUseCase(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow, clock: clk}
}

func (uc *reviewUseCaseImpl) Create(ctx context.Context, req CreateReviewRequest, studentID uuid.UUID) (*CreateReviewResult, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := tx.Reads().BookingByID(ctx, req.BookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return derr
		}
		if b.StudentID != studentID {
			return ErrReviewNotOwned
		}
		if b.Status != booking.StatusCompleted.String() {
			return ErrBookingNotReviewable
		}

		rev, derr := domreview.NewReview(uuid.Nil, studentID, b.TutorID, req.BookingID, req.Rating, req.Comment, uc.clock.Now())
		if derr != nil {
			return errs.Mark(derr, ErrDomainValidation)
		}

		id, derr := tx.Reviews().Create(ctx, tx.DB(), rev)
		if derr != nil {
			// The unique booking_id constraint is the duplicate gate.
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrDuplicateReview
			}
			return derr
		}
		createdID = id

		if derr := tx.RatingStats().RecalcTutorRatingStats(ctx, tx.DB(), b.TutorID); derr != nil {
			return derr
		}
		return uc.notify(ctx, tx, "review_created", map[string]any{
			"review_id":  id,
			"booking_id": req.BookingID,
			"tutor_id":   b.TutorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &CreateReviewResult{ReviewID: createdID}, nil
}

func (uc *reviewUseCaseImpl) Delete(ctx context.Context, reviewID, actorID uuid.UUID, role user.Role) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReviewByID(ctx, reviewID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		if role != user.RoleAdmin && snap.StudentID != actorID {
			return ErrReviewNotOwned
		}

		if err := tx.Reviews().Delete(ctx, tx.DB(), reviewID); err != nil {
			return err
		}
		return tx.RatingStats().RecalcTutorRatingStats(ctx, tx.DB(), snap.TutorID)
	})
}

func (uc *reviewUseCaseImpl) Respond(ctx context.Context, reviewID, tutorID uuid.UUID, text string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReviewByID(ctx, reviewID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		if snap.TutorID != tutorID {
			return ErrNotReviewTarget
		}

		rev, err := snap.ToDomain()
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := rev.Respond(text, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Reviews().Update(ctx, tx.DB(), rev)
	})
}

func (uc *reviewUseCaseImpl) notify(ctx context.Context, tx shared.Tx, topic string, payload map[string]any) error {
	return enqueueNotification(ctx, tx, uc.clock, topic, payload)
}
