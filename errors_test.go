package gphoto2

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultKind(t *testing.T) {
	tests := []struct {
		code Result
		kind ErrorKind
	}{
		{ResultError, KindOther},
		{ResultBadParameters, KindBadParameters},
		{ResultNoMemory, KindNoMemory},
		{ResultLibrary, KindOther},
		{ResultUnknownPort, KindUnknownPort},
		{ResultNotSupported, KindNotSupported},
		{ResultIO, KindIO},
		{ResultFixedLimitExceeded, KindFixedLimitExceeded},
		{ResultTimeout, KindTimeout},
		{ResultIOSupportedSerial, KindIO},
		{ResultIOSupportedUSB, KindIO},
		{ResultIOInit, KindIO},
		{ResultIORead, KindIO},
		{ResultIOWrite, KindIO},
		{ResultIOUpdate, KindIO},
		{ResultIOSerialSpeed, KindIO},
		{ResultIOUSBClearHalt, KindIO},
		{ResultIOUSBFind, KindIO},
		{ResultIOUSBClaim, KindIO},
		{ResultIOLock, KindIO},
		{ResultHAL, KindOther},
		{ResultCorruptedData, KindCorruptedData},
		{ResultFileExists, KindFileExists},
		{ResultModelNotFound, KindModelNotFound},
		{ResultDirectoryNotFound, KindDirectoryNotFound},
		{ResultFileNotFound, KindFileNotFound},
		{ResultDirectoryExists, KindDirectoryExists},
		{ResultCameraBusy, KindCameraBusy},
		{ResultPathNotAbsolute, KindPathNotAbsolute},
		{ResultCancel, KindCancelled},
		{ResultCameraError, KindCameraError},
		{ResultOSFailure, KindOSFailure},
		{ResultNoSpace, KindNoSpace},
		{Result(-9999), KindOther},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(int(tt.code)), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.code.Kind())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "File not found", newError(ResultFileNotFound, "").Error())
	assert.Equal(t, "Bad parameters [range widget]", errorf(ResultBadParameters, "%s widget", "range").Error())
	assert.Equal(t, "Unspecified error", ResultError.String())
	assert.Equal(t, "Error reading from the port", ResultIORead.String())
	assert.NotEmpty(t, Result(-9999).String())
	assert.Equal(t, "cancelled", KindCancelled.String())
}

func TestCheckResult(t *testing.T) {
	n, err := checkResult(3)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = checkResult(int(ResultCameraBusy))
	assert.Equal(t, KindCameraBusy, KindOf(err))
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("download: %w", newError(ResultIORead, "usb"))

	assert.True(t, errors.Is(err, &Error{Code: ResultIOWrite}), "same kind matches")
	assert.False(t, errors.Is(err, &Error{Code: ResultTimeout}))
	assert.Equal(t, KindIO, KindOf(err))
	assert.Equal(t, KindOther, KindOf(errors.New("plain")))
	assert.Equal(t, KindOther, KindOf(nil))
}

func TestCancelledKeepsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fmt.Errorf("%w: %w", newError(ResultCancel, ""), ctx.Err())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, KindCancelled, KindOf(err))
}
