package serializer

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// AppError wraps a business code and a readable message around the raw error.
type AppError struct {
	Code     int
	Msg      string
	RawError error
}

// NewError returns a new AppError.
func NewError(code int, msg string, err error) AppError {
	return AppError{
		Code:     code,
		Msg:      msg,
		RawError: err,
	}
}

// WithError returns a copy of err carrying raw as its cause.
func (err AppError) WithError(raw error) AppError {
	err.RawError = raw
	return err
}

// Error returns the readable message.
func (err AppError) Error() string {
	if err.Msg == "" && err.RawError != nil {
		return err.RawError.Error()
	}
	return err.Msg
}

func (err AppError) Unwrap() error {
	return err.RawError
}

// Is reports codes as equal so sentinels match wrapped copies.
func (err AppError) Is(target error) bool {
	var t AppError
	if errors.As(target, &t) {
		return t.Code == err.Code
	}
	return false
}

// CodeOf extracts the business code of err, CodeNotSet if it carries none.
func CodeOf(err error) int {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeNotSet
}

// Retryable reports whether a failed request with this code may be sent again
// without deduplication. A catalog write failure may leave copied objects
// behind and a partial success already applied some items; every other
// failure is raised before any side effect.
func Retryable(code int) bool {
	switch code {
	case CodeDBError, CodeNotFullySuccess:
		return false
	}
	return true
}

// Three digit codes reuse their HTTP meaning. Five digit codes are defined
// by the application: 4xxxx for client side errors, 5xxxx for server faults.
const (
	// CodeNotFullySuccess some items in a batch failed
	CodeNotFullySuccess = 203
	// CodeCheckLogin no user attached to the request
	CodeCheckLogin = 401
	// CodeNoPermissionErr actor may not touch the item
	CodeNoPermissionErr = 403
	// CodeNotFound item does not exist
	CodeNotFound = 404
	// CodeParamErr malformed request
	CodeParamErr = 40001
	// CodeUploadFailed upload could not be stored
	CodeUploadFailed = 40002
	// CodeCreateFolderFailed folder could not be created
	CodeCreateFolderFailed = 40003
	// CodeObjectExist name already taken
	CodeObjectExist = 40004
	// CodeAdminRequired caller is not in an admin group
	CodeAdminRequired = 40008
	// CodeIllegalObjectName name fails validation
	CodeIllegalObjectName = 40011
	// CodeInsufficientCapacity owner quota would be exceeded
	CodeInsufficientCapacity = 40012
	// CodeParentNotExist parent folder missing
	CodeParentNotExist = 40013
	// CodeRootProtected root cannot be modified
	CodeRootProtected = 40014
	// CodeInvalidDestination destination is inside the selection or in another scope
	CodeInvalidDestination = 40016
	// CodeDBError catalog write failed
	CodeDBError = 50001
	// CodeDBReadError catalog read failed before any change
	CodeDBReadError = 50002
	// CodeIOFailed local IO failed
	CodeIOFailed = 50004
	// CodeInternalSetting a stored setting is malformed
	CodeInternalSetting = 50005
	// CodeCacheOperation cache backend failed
	CodeCacheOperation = 50006
	// CodeNameSpaceExhausted no free name within the attempt bound
	CodeNameSpaceExhausted = 50010
	// CodeObjectStoreFailure object store request failed
	CodeObjectStoreFailure = 50011
	// CodeCorruptHierarchy folder graph contains a cycle or exceeds limits
	CodeCorruptHierarchy = 50012
	// CodeNotSet unknown, resolved from the wrapped error later
	CodeNotSet = -1
)

// DBErr builds a response for a catalog failure.
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "Database operation failed."
	}
	return Err(CodeDBError, msg, err)
}

// ParamErr builds a response for malformed input.
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "Invalid parameters."
	}
	return Err(CodeParamErr, msg, err)
}

// Err builds an error response, preferring details from a wrapped AppError.
func Err(errCode int, msg string, err error) Response {
	var appError AppError
	if errors.As(err, &appError) {
		errCode = appError.Code
		err = appError.RawError
		msg = appError.Msg
	}

	res := Response{
		Code:      errCode,
		Msg:       msg,
		Retryable: errCode != 0 && Retryable(errCode),
	}
	// raw causes stay hidden in release mode
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = err.Error()
	}
	return res
}
