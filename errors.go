package gphoto2

// #include <gphoto2/gphoto2-result.h>
import "C"

import (
	"errors"
	"fmt"
)

// Result is a libgphoto2 return code. Negative values are errors.
type Result int

// Result codes shared with libgphoto2 and libgphoto2_port.
const (
	ResultOK Result = 0

	ResultError                 Result = -1
	ResultBadParameters         Result = -2
	ResultNoMemory              Result = -3
	ResultLibrary               Result = -4
	ResultUnknownPort           Result = -5
	ResultNotSupported          Result = -6
	ResultIO                    Result = -7
	ResultFixedLimitExceeded    Result = -8
	ResultTimeout               Result = -10
	ResultIOSupportedSerial     Result = -20
	ResultIOSupportedUSB        Result = -21
	ResultIOInit                Result = -31
	ResultIORead                Result = -34
	ResultIOWrite               Result = -35
	ResultIOUpdate              Result = -37
	ResultIOSerialSpeed         Result = -41
	ResultIOUSBClearHalt        Result = -51
	ResultIOUSBFind             Result = -52
	ResultIOUSBClaim            Result = -53
	ResultIOLock                Result = -60
	ResultHAL                   Result = -70
	ResultCorruptedData         Result = -102
	ResultFileExists            Result = -103
	ResultModelNotFound         Result = -105
	ResultDirectoryNotFound     Result = -107
	ResultFileNotFound          Result = -108
	ResultDirectoryExists       Result = -109
	ResultCameraBusy            Result = -110
	ResultPathNotAbsolute       Result = -111
	ResultCancel                Result = -112
	ResultCameraError           Result = -113
	ResultOSFailure             Result = -114
	ResultNoSpace               Result = -115
)

// String returns libgphoto2's own message for r, which covers the port
// library's codes as well.
func (r Result) String() string {
	if msg := C.gp_result_as_string(C.int(r)); msg != nil {
		return C.GoString(msg)
	}
	return fmt.Sprintf("Unknown error %d", int(r))
}

// ErrorKind groups result codes into the cases callers usually handle.
type ErrorKind int

const (
	// KindOther covers GP_ERROR and any code without a dedicated kind.
	KindOther ErrorKind = iota
	KindBadParameters
	KindCameraBusy
	KindCameraError
	KindCorruptedData
	KindDirectoryExists
	KindDirectoryNotFound
	KindFileExists
	KindFileNotFound
	KindFixedLimitExceeded
	KindModelNotFound
	KindNotSupported
	KindNoMemory
	KindNoSpace
	// KindIO covers GP_ERROR_IO and every port-level I/O failure.
	KindIO
	KindOSFailure
	KindPathNotAbsolute
	KindTimeout
	KindUnknownPort
	KindCancelled
)

var kindNames = [...]string{
	KindOther:              "other",
	KindBadParameters:      "bad parameters",
	KindCameraBusy:         "camera busy",
	KindCameraError:        "camera error",
	KindCorruptedData:      "corrupted data",
	KindDirectoryExists:    "directory exists",
	KindDirectoryNotFound:  "directory not found",
	KindFileExists:         "file exists",
	KindFileNotFound:       "file not found",
	KindFixedLimitExceeded: "fixed limit exceeded",
	KindModelNotFound:      "model not found",
	KindNotSupported:       "not supported",
	KindNoMemory:           "no memory",
	KindNoSpace:            "no space",
	KindIO:                 "io",
	KindOSFailure:          "os failure",
	KindPathNotAbsolute:    "path not absolute",
	KindTimeout:            "timeout",
	KindUnknownPort:        "unknown port",
	KindCancelled:          "cancelled",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Kind maps the result code to its ErrorKind.
func (r Result) Kind() ErrorKind {
	switch r {
	case ResultBadParameters:
		return KindBadParameters
	case ResultCameraBusy:
		return KindCameraBusy
	case ResultCameraError:
		return KindCameraError
	case ResultCorruptedData:
		return KindCorruptedData
	case ResultDirectoryExists:
		return KindDirectoryExists
	case ResultDirectoryNotFound:
		return KindDirectoryNotFound
	case ResultFileExists:
		return KindFileExists
	case ResultFileNotFound:
		return KindFileNotFound
	case ResultFixedLimitExceeded:
		return KindFixedLimitExceeded
	case ResultModelNotFound:
		return KindModelNotFound
	case ResultNotSupported:
		return KindNotSupported
	case ResultNoMemory:
		return KindNoMemory
	case ResultNoSpace:
		return KindNoSpace
	case ResultIO, ResultIOSupportedSerial, ResultIOSupportedUSB, ResultIOInit,
		ResultIORead, ResultIOWrite, ResultIOUpdate, ResultIOSerialSpeed,
		ResultIOUSBClearHalt, ResultIOUSBFind, ResultIOUSBClaim, ResultIOLock:
		return KindIO
	case ResultOSFailure:
		return KindOSFailure
	case ResultPathNotAbsolute:
		return KindPathNotAbsolute
	case ResultTimeout:
		return KindTimeout
	case ResultUnknownPort:
		return KindUnknownPort
	case ResultCancel:
		return KindCancelled
	default:
		return KindOther
	}
}

// Error is a failed libgphoto2 call.
type Error struct {
	Code Result
	// Info carries extra detail added on the Go side, if any.
	Info string
}

func newError(code Result, info string) *Error {
	return &Error{Code: code, Info: info}
}

func errorf(code Result, format string, args ...interface{}) *Error {
	return &Error{Code: code, Info: fmt.Sprintf(format, args...)}
}

// Kind returns the error's kind.
func (e *Error) Kind() ErrorKind {
	return e.Code.Kind()
}

func (e *Error) Error() string {
	if e.Info != "" {
		return fmt.Sprintf("%s [%s]", e.Code, e.Info)
	}
	return e.Code.String()
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, &gphoto2.Error{Code: gphoto2.ResultFileNotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind() == e.Kind()
}

// KindOf returns the ErrorKind of the first *Error in err's chain, or
// KindOther when there is none.
func KindOf(err error) ErrorKind {
	var gpErr *Error
	if errors.As(err, &gpErr) {
		return gpErr.Kind()
	}
	return KindOther
}

// checkResult converts a raw native return value. Non-negative values are
// returned unchanged since some calls use them as counts or indices.
func checkResult(ret int) (int, error) {
	if ret >= 0 {
		return ret, nil
	}
	return ret, newError(Result(ret), "")
}
