package models

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a review-status change is not allowed
var ErrInvalidTransition = errors.New("invalid review status transition")

var reviewTransitions = map[ReviewStatus][]ReviewStatus{
	ReviewPending:           {ReviewAutoVerified, ReviewNeedsManualReview, ReviewManuallyReviewed},
	ReviewAutoVerified:      {ReviewManuallyReviewed, ReviewPending},
	ReviewNeedsManualReview: {ReviewManuallyReviewed, ReviewPending},
	ReviewManuallyReviewed:  {ReviewPending},
}

// Valid reports whether s is a known review status
func (s ReviewStatus) Valid() bool {
	_, ok := reviewTransitions[s]
	return ok
}

// Terminal reports whether s is only left through a correction
func (s ReviewStatus) Terminal() bool {
	return s == ReviewManuallyReviewed
}

// CanTransition reports whether from -> to is permitted
// Staying in the same state is always permitted
func CanTransition(from, to ReviewStatus) bool {
	if from == to {
		return from.Valid()
	}
	for _, allowed := range reviewTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves the movie to a new review status, rejecting invalid transitions
func (m *AwardLinkedMovie) Transition(to ReviewStatus) error {
	from := m.ReviewStatus
	if from == "" {
		from = ReviewPending
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	m.ReviewStatus = to
	return nil
}

// ResetForVerification puts the movie back to pending so it is verified again
// Returns true when this discarded a human review
func (m *AwardLinkedMovie) ResetForVerification() (bool, error) {
	wasReviewed := m.ReviewStatus == ReviewManuallyReviewed
	if err := m.Transition(ReviewPending); err != nil {
		return false, err
	}
	m.Confidence = 0
	m.ReviewedBy = ""
	m.ReviewedAt = nil
	return wasReviewed, nil
}
