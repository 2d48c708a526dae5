package database

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is the driver's no-documents error, re-exported so callers and
// in-memory fakes agree on a single sentinel.
var ErrNotFound = mongo.ErrNoDocuments

var ErrDuplicate = errors.New("duplicate key")

// Normalize maps driver errors onto the package sentinels.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
