package services

import "errors"

// Sentinel errors for the access and linking rules. Handlers map these onto
// HTTP statuses and machine codes at the request boundary; none of them are
// retried.
var (
	// ErrDuplicateCode means a staff registration supplied a teacher code
	// already attached to another staff account.
	ErrDuplicateCode = errors.New("teacher code already exists")

	// ErrMissingIdentifier means a connect request carried neither a teacher
	// code nor a staff registration number.
	ErrMissingIdentifier = errors.New("teacher code or staff ID is required")

	// ErrTeacherNotFound means no staff account matched the supplied teacher
	// code or registration number.
	ErrTeacherNotFound = errors.New("teacher not found")

	// ErrNoSharingCode means the resolved teacher has no sharing code assigned.
	ErrNoSharingCode = errors.New("teacher does not have a sharing code yet")

	// ErrNotShared means a save/clone targeted an item that is not shared.
	ErrNotShared = errors.New("item not found or not shared")

	// ErrForbidden means the requester is not allowed to perform the
	// operation (ownership or role mismatch).
	ErrForbidden = errors.New("not authorized")

	// ErrInvalidStatus means a forum status update requested anything other
	// than resolving the question.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrRecoveryFileNotFound means the named recovery dump does not exist.
	ErrRecoveryFileNotFound = errors.New("recovery file not found")
)
