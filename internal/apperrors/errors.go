package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a uniqueness violation caused by a concurrent write.
// Operations failing with it can be retried as a whole.
var ErrConflict = errors.New("conflicting concurrent write")

// ErrProviderData indicates that an identity provider omitted data required to sign in.
var ErrProviderData = errors.New("identity provider did not supply required data")

// ErrStore indicates a failure of the underlying credential store.
var ErrStore = errors.New("store failure")

// Local login rejections. Each maps to its own stable reason code.
var (
	ErrInvalidEmailFormat = errors.New("invalid email")
	ErrAccountNotFound    = errors.New("account does not exist")
	ErrAccountNotVerified = errors.New("account verification has not been completed")
	ErrInvalidPassword    = errors.New("invalid password")
)

// Stable reason codes sent to clients.
const (
	ReasonBadRequest         = "BAD_REQUEST"
	ReasonUnauthorized       = "UNAUTHORIZED"
	ReasonForbidden          = "FORBIDDEN"
	ReasonNotFound           = "NOT_FOUND"
	ReasonConflict           = "CONFLICT"
	ReasonProviderData       = "PROVIDER_DATA"
	ReasonInvalidEmailFormat = "INVALID_EMAIL_FORMAT"
	ReasonAccountNotFound    = "ACCOUNT_NOT_FOUND"
	ReasonAccountNotVerified = "ACCOUNT_NOT_VERIFIED"
	ReasonInvalidPassword    = "INVALID_PASSWORD"
	ReasonStoreError         = "STORE_ERROR"
	ReasonInternal           = "INTERNAL"
	ReasonGatewayTimeout     = "UPSTREAM_UNAVAILABLE"
)

// AppError is an error carrying the HTTP status and a stable reason code.
// It matches both its kind (one of the sentinels above) and its cause with errors.Is.
type AppError struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Kind    error  `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewStoreError reports a failure of the credential store.
func NewStoreError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Reason: ReasonStoreError, Message: message, Kind: ErrStore, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Reason: ReasonBadRequest, Message: message, Kind: ErrValidation}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Reason: ReasonUnauthorized, Message: message, Kind: ErrUnauthorized}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Reason: ReasonForbidden, Message: message, Kind: ErrForbidden}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Reason: ReasonNotFound, Message: message, Kind: ErrNotFound}
}

// NewConflictError reports a uniqueness violation. It is retryable.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Reason: ReasonConflict, Message: message, Kind: ErrConflict}
}

// NewDuplicateError reports that a resource with the same unique key already exists.
func NewDuplicateError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Reason: ReasonConflict, Message: message, Kind: ErrDuplicate}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Reason: ReasonInternal, Message: message}
}

func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, Reason: ReasonGatewayTimeout, Message: message}
}

// NewProviderDataError reports that a provider profile lacks required fields.
func NewProviderDataError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Reason: ReasonProviderData, Message: message, Kind: ErrProviderData}
}

func NewInvalidEmailFormatError() *AppError {
	return &AppError{Code: http.StatusBadRequest, Reason: ReasonInvalidEmailFormat, Message: "Invalid email.", Kind: ErrInvalidEmailFormat}
}

// NewAccountNotFoundError is used both for unknown emails and for accounts without a
// local password, so callers cannot tell the two apart.
func NewAccountNotFoundError() *AppError {
	return &AppError{Code: http.StatusUnauthorized, Reason: ReasonAccountNotFound, Message: "The account does not exists.", Kind: ErrAccountNotFound}
}

func NewAccountNotVerifiedError() *AppError {
	return &AppError{Code: http.StatusForbidden, Reason: ReasonAccountNotVerified, Message: "The account verification has not been completed. Please check your e-mail.", Kind: ErrAccountNotVerified}
}

func NewInvalidPasswordError() *AppError {
	return &AppError{Code: http.StatusUnauthorized, Reason: ReasonInvalidPassword, Message: "Invalid password", Kind: ErrInvalidPassword}
}

// IsRetryable reports whether the whole operation may be re-run.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
