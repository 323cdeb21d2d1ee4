package application

import "errors"

var (
	ErrRequestNotFound    = errors.New("service request not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrPropertyNotFound   = errors.New("property not found")
	ErrNoChanges          = errors.New("no changes provided")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrBulkNothingToApply = errors.New("update action requires a status or an internal note")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOwnerNotFound      = errors.New("no property found for this email and address")
	ErrNoPhotos           = errors.New("at least one photo is required")
	ErrTooManyPhotos      = errors.New("too many photos")
	ErrUnsupportedMedia   = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrFileNotFound       = errors.New("file not found")
	ErrStorage            = errors.New("file storage unavailable")
	ErrMailDelivery       = errors.New("failed to deliver e-mail")
	ErrConfirmationClash  = errors.New("could not allocate a confirmation number")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
