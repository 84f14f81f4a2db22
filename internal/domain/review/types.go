package review

import "errors"

var (
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrEmptyComment     = errors.New("comment cannot be empty")
	ErrCommentTooLong   = errors.New("comment exceeds maximum length")
	ErrEmptyResponse    = errors.New("response cannot be empty")
	ErrResponseTooLong  = errors.New("response exceeds maximum length")
	ErrAlreadyResponded = errors.New("review already has a tutor response")
)
