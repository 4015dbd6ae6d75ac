package util

import (
	"fmt"
	"strings"
)

const (
	// DatabaseNameMaxLength is the maximum length of a MongoDB database name in bytes
	DatabaseNameMaxLength = 63
	// CollectionNameMaxLength is the maximum namespace length we accept for a collection
	CollectionNameMaxLength = 255
)

// Characters the server rejects in database names on any platform.
const invalidDatabaseChars = `/\. "$*<>:|?`

// ValidateDatabaseName validates that a string can be used as a MongoDB database name.
// Rules:
// - Must not be empty
// - Must not contain /\. "$*<>:|? or the null character
// - Maximum length is 63 bytes
func ValidateDatabaseName(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("database name cannot be empty")
	}

	if len(value) > DatabaseNameMaxLength {
		return fmt.Errorf("database name must be no more than %d bytes", DatabaseNameMaxLength)
	}

	if strings.ContainsAny(value, invalidDatabaseChars+"\x00") {
		return fmt.Errorf("database name %q contains an invalid character (one of %s or null)", value, invalidDatabaseChars)
	}

	return nil
}

// ValidateCollectionName validates a collection name.
// Rules:
// - Must not be empty
// - Must not contain '$' or the null character
// - Must not start with "system."
func ValidateCollectionName(value string) error {
	if value == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	if len(value) > CollectionNameMaxLength {
		return fmt.Errorf("collection name must be no more than %d bytes", CollectionNameMaxLength)
	}

	if strings.ContainsAny(value, "$\x00") {
		return fmt.Errorf("collection name %q must not contain '$' or null", value)
	}

	if strings.HasPrefix(value, "system.") {
		return fmt.Errorf("collection name %q uses the reserved system. prefix", value)
	}

	return nil
}

// IsValidDatabaseName checks a database name without returning an error.
func IsValidDatabaseName(value string) bool {
	return ValidateDatabaseName(value) == nil
}
