package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrAccountExists    = errors.New("account already exists")
	ErrCollectionExists = errors.New("collection already exists")
	ErrDuplicateKey     = errors.New("duplicate key")
)

// Server error codes we classify.
const (
	codeNamespaceExists = 48
	codeUserExists      = 51003
)

// classify maps driver errors onto the package sentinels. The original error
// stays in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeUserExists:
			return fmt.Errorf("%w: %w", ErrAccountExists, err)
		case codeNamespaceExists:
			return fmt.Errorf("%w: %w", ErrCollectionExists, err)
		}
	}
	return err
}
