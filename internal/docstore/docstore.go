// Package docstore holds the Firestore collection names and the small helpers
// every repository shares.
package docstore

import (
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ColUsers             = "users"
	ColNewsletter        = "newsletterSubscribers"
	ColTrainers          = "trainers"
	ColClasses           = "classes"
	ColForums            = "forums"
	ColPayments          = "payments"
	ColReviews           = "reviews"
	ColRejectionFeedback = "rejectionFeedback"
	ColStripeEvents      = "stripeEvents"
)

func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func IsAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// Collect drains it into a slice, decoding every document into T and letting
// setID copy the document id onto the value.
func Collect[T any](it *firestore.DocumentIterator, setID func(*T, string)) ([]T, error) {
	defer it.Stop()

	out := []T{}
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, err
		}
		if setID != nil {
			setID(&v, doc.Ref.ID)
		}
		out = append(out, v)
	}
	return out, nil
}
