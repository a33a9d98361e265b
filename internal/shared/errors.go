package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store errors
	ErrNotFound      = fmt.Errorf("record not found")
	ErrAlreadyExists = fmt.Errorf("record already exists")

	// Catalog and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrCatalogFailure     = fmt.Errorf("catalog lookup failed")
	ErrAlbumNotFound      = fmt.Errorf("album not found")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Reconciliation errors
	ErrEntryBusy       = fmt.Errorf("entry has a request in flight")
	ErrOfficialEntry   = fmt.Errorf("official entries cannot be modified")
	ErrEntryNotFound   = fmt.Errorf("tracklist entry not found")
	ErrConfirmRequired = fmt.Errorf("confirmation required")
	ErrNothingSelected = fmt.Errorf("no entries selected")
)
