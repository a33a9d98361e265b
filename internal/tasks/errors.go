package tasks

import "strings"

// ErrorCategory buckets pipeline failures into user-facing classes.
type ErrorCategory int

const (
	CategoryDuplicate ErrorCategory = iota
	CategoryNotFound
	CategoryUnauthorized
	CategoryForbidden
	CategoryValidation
	CategoryCatalog
	CategoryTimeout
	CategoryGeneric
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryDuplicate:
		return "duplicate"
	case CategoryNotFound:
		return "not_found"
	case CategoryUnauthorized:
		return "unauthorized"
	case CategoryForbidden:
		return "forbidden"
	case CategoryValidation:
		return "validation"
	case CategoryCatalog:
		return "catalog"
	case CategoryTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// Categorize inspects a pipeline error's message case-insensitively, in
// priority order, and returns the matching category plus a user-facing
// message. Unrecognized errors surface their message verbatim.
func Categorize(err error) (ErrorCategory, string) {
	if err == nil {
		return CategoryGeneric, ""
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "album series already exists"):
		// Names the conflicting series, so keep the original message.
		return CategoryDuplicate, err.Error()
	case strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate"):
		return CategoryDuplicate, "A record with that name already exists"
	case strings.Contains(msg, "not found"):
		return CategoryNotFound, "The requested record was not found"
	case strings.Contains(msg, "unauthorized"):
		return CategoryUnauthorized, "You are not signed in"
	case strings.Contains(msg, "forbidden"):
		return CategoryForbidden, "You do not have permission to do that"
	case strings.Contains(msg, "validation") || strings.Contains(msg, "invalid"):
		return CategoryValidation, err.Error()
	case strings.Contains(msg, "catalog"):
		return CategoryCatalog, "The music catalog is unavailable right now"
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") || strings.Contains(msg, "network"):
		return CategoryTimeout, "The request timed out, try again"
	default:
		return CategoryGeneric, err.Error()
	}
}
