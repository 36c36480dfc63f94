package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist
	// in the current owner's collection.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSessionNotFound indicates that the session referenced by a token no longer exists.
	ErrSessionNotFound = errors.New("session not found")

	// ErrKeyNotFound indicates that a key-value entry does not exist.
	ErrKeyNotFound = errors.New("key not found")
)

// Authentication errors represent failures to establish or resolve a session.
var (
	// ErrMissingCredentials indicates that email or password was not supplied on login.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrMissingSignupFields indicates that a required signup field was not supplied.
	ErrMissingSignupFields = errors.New("email, password and password confirmation are required")

	// ErrPasswordMismatch indicates that password and confirmation differ on signup.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidSession indicates that a session token is malformed, forged or expired.
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrUnauthenticated indicates that a request requires a session but carried none.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden indicates that the identity lacks the role required for the operation.
	ErrForbidden = errors.New("admin role required")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrRequiredTransactionFields indicates that name, amount or date is missing on a transaction.
	ErrRequiredTransactionFields = errors.New("name, amount and date are required")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrDuplicateEntry indicates that an entity with the same ID already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrDeleteNotConfirmed indicates that a delete request lacked explicit confirmation.
	ErrDeleteNotConfirmed = errors.New("deletion must be confirmed")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToCreateTransaction    = errors.New("failed to create transaction")
	ErrFailedToUpdateTransaction    = errors.New("failed to update transaction")
	ErrFailedToDeleteTransaction    = errors.New("failed to delete transaction")
	ErrFailedToCreateSession        = errors.New("failed to create session")
	ErrFailedToEndSession           = errors.New("failed to end session")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
	ErrFailedToGetStats             = errors.New("failed to get admin statistics")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrStoreClosed indicates that a transaction store was evicted while a
	// caller still held it. The caller should fetch the owner's store again.
	ErrStoreClosed = errors.New("transaction store closed")

	// ErrDataInconsistency indicates that persisted data could not be decoded.
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
