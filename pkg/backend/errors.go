package backend

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/widgetkit/pkg/graphql"
)

// Server error codes. Kebab-case codes are produced by the API; camelCase codes are
// message keys of the client.
const (
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
	CodeBadUserInput        = "BAD_USER_INPUT"
	CodeInvalidUser         = "invalid-user"
	CodeUserDeleted         = "user-deleted"
	CodeUserLocked          = "user-locked"
	CodeInvalidParameter    = "invalid-parameter"
	CodeAuthorisationFailed = "authorisation-failed"
	CodeUserNotExist        = "user-not-exist"
	CodeVerifyFailed        = "verify-failed"
	CodeEmailAlreadyUsed    = "email-already-used"
	CodeEmailFailure        = "email-failure"
	CodeMobileAlreadyUsed   = "mobile-already-used"
	CodeTooFrequent         = "too-frequent"
	CodeReachMaximum        = "reach-maximum"
	CodeUsernameAlreadyUsed = "username-already-used"
)

// ErrNoTicketID is returned when a ticket is reported created without an id.
var ErrNoTicketID = errors.New("backend: ticket created without id")

// RejectedError is an ok=false reply. It matches graphql.ErrRejected.
type RejectedError struct {
	Operation string
	Code      string
}

func (e *RejectedError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("backend: %s rejected", e.Operation)
	}
	return fmt.Sprintf("backend: %s rejected: %s", e.Operation, e.Code)
}

func (e *RejectedError) Is(target error) bool {
	return target == graphql.ErrRejected
}

// RejectionCode returns the server error code carried by err, if any.
func RejectionCode(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Code
	}
	return ""
}
