package gphoto2

/*
#include <gphoto2/gphoto2.h>
*/
import "C"
import "fmt"

// DriverStatus is the maturity of the camera driver.
type DriverStatus int

const (
	DriverProduction   DriverStatus = C.GP_DRIVER_STATUS_PRODUCTION
	DriverTesting      DriverStatus = C.GP_DRIVER_STATUS_TESTING
	DriverExperimental DriverStatus = C.GP_DRIVER_STATUS_EXPERIMENTAL
	DriverDeprecated   DriverStatus = C.GP_DRIVER_STATUS_DEPRECATED
)

func (s DriverStatus) String() string {
	switch s {
	case DriverProduction:
		return "production"
	case DriverTesting:
		return "testing"
	case DriverExperimental:
		return "experimental"
	case DriverDeprecated:
		return "deprecated"
	default:
		return fmt.Sprintf("DriverStatus(%d)", int(s))
	}
}

// DeviceType tells still cameras from media players.
type DeviceType int

const (
	DeviceStillCamera DeviceType = C.GP_DEVICE_STILL_CAMERA
	DeviceAudioPlayer DeviceType = C.GP_DEVICE_AUDIO_PLAYER
)

func (t DeviceType) String() string {
	switch t {
	case DeviceStillCamera:
		return "still camera"
	case DeviceAudioPlayer:
		return "audio player"
	default:
		return fmt.Sprintf("DeviceType(%d)", int(t))
	}
}

// CameraOperation is a set of operations a camera supports.
type CameraOperation int

const (
	OperationCaptureImage   CameraOperation = C.GP_OPERATION_CAPTURE_IMAGE
	OperationCaptureVideo   CameraOperation = C.GP_OPERATION_CAPTURE_VIDEO
	OperationCaptureAudio   CameraOperation = C.GP_OPERATION_CAPTURE_AUDIO
	OperationCapturePreview CameraOperation = C.GP_OPERATION_CAPTURE_PREVIEW
	OperationConfig         CameraOperation = C.GP_OPERATION_CONFIG
	OperationTriggerCapture CameraOperation = C.GP_OPERATION_TRIGGER_CAPTURE
)

// Has reports whether every operation in o is supported.
func (op CameraOperation) Has(o CameraOperation) bool {
	return o != 0 && op&o == o
}

// FileOperation is a set of operations supported on files.
type FileOperation int

const (
	FileOperationDelete  FileOperation = C.GP_FILE_OPERATION_DELETE
	FileOperationPreview FileOperation = C.GP_FILE_OPERATION_PREVIEW
	FileOperationRaw     FileOperation = C.GP_FILE_OPERATION_RAW
	FileOperationAudio   FileOperation = C.GP_FILE_OPERATION_AUDIO
	FileOperationExif    FileOperation = C.GP_FILE_OPERATION_EXIF
)

// Has reports whether every operation in o is supported.
func (op FileOperation) Has(o FileOperation) bool {
	return o != 0 && op&o == o
}

// FolderOperation is a set of operations supported on folders.
type FolderOperation int

const (
	FolderOperationDeleteAll FolderOperation = C.GP_FOLDER_OPERATION_DELETE_ALL
	FolderOperationPutFile   FolderOperation = C.GP_FOLDER_OPERATION_PUT_FILE
	FolderOperationMakeDir   FolderOperation = C.GP_FOLDER_OPERATION_MAKE_DIR
	FolderOperationRemoveDir FolderOperation = C.GP_FOLDER_OPERATION_REMOVE_DIR
)

// Has reports whether every operation in o is supported.
func (op FolderOperation) Has(o FolderOperation) bool {
	return o != 0 && op&o == o
}

// USBInfo holds the USB ids a driver matches on.
type USBInfo struct {
	Vendor   uint16
	Product  uint16
	Class    uint8
	Subclass uint8
	Protocol uint8
}

// Abilities describes what the driver for a camera model can do.
type Abilities struct {
	Model   string
	ID      string
	Library string

	Status           DriverStatus
	Ports            PortType
	Operations       CameraOperation
	FileOperations   FileOperation
	FolderOperations FolderOperation
	DeviceType       DeviceType
	USB              USBInfo
}

func newAbilities(a *C.CameraAbilities) Abilities {
	return Abilities{
		Model:            C.GoString(&a.model[0]),
		ID:               C.GoString(&a.id[0]),
		Library:          C.GoString(&a.library[0]),
		Status:           DriverStatus(a.status),
		Ports:            PortType(a.port),
		Operations:       CameraOperation(a.operations),
		FileOperations:   FileOperation(a.file_operations),
		FolderOperations: FolderOperation(a.folder_operations),
		DeviceType:       DeviceType(a.device_type),
		USB: USBInfo{
			Vendor:   uint16(a.usb_vendor),
			Product:  uint16(a.usb_product),
			Class:    uint8(a.usb_class),
			Subclass: uint8(a.usb_subclass),
			Protocol: uint8(a.usb_protocol),
		},
	}
}
