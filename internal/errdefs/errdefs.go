package errdefs

import "fmt"

type ErrorType int

const (
	ErrTypeNotInitialized ErrorType = iota
	ErrTypeInstallTimeout
	ErrTypeUnsupportedPlatform
	ErrTypeManifest
	ErrTypeGeneric
)

type CustomError struct {
	Type    ErrorType
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

func NewCustomError(errType ErrorType, message string) error {
	return &CustomError{
		Type:    errType,
		Message: message,
	}
}

// ErrNotInitialized is returned when an entry point is called before
// usepackage.Init has been given a manager.
var ErrNotInitialized = NewCustomError(ErrTypeNotInitialized, "use-package has not been initialized; call Init first")

// InstallTimeoutError means the host accepted the install request but the
// extension never became visible within the poll budget.
type InstallTimeoutError struct {
	Extension string
}

func (e *InstallTimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for extension %q to install", e.Extension)
}
