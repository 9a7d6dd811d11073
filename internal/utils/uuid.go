package utils

import (
	"github.com/google/uuid"
)

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}

// GenerateObjectID generates a new object identifier
func GenerateObjectID() string {
	return uuid.New().String()
}
