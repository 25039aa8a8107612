package gphoto2

/*
#include <stdlib.h>
#include <gphoto2/gphoto2.h>
*/
import "C"
import (
	"context"
	"errors"
	"fmt"
	"path"
	"runtime"
	"sync"
	"time"
	"unsafe"
)

// FilePath is the location of a file on the camera.
type FilePath struct {
	Folder string
	Name   string
}

func newFilePath(p *C.CameraFilePath) FilePath {
	return FilePath{
		Folder: C.GoString(&p.folder[0]),
		Name:   C.GoString(&p.name[0]),
	}
}

func (p FilePath) String() string {
	return path.Join(p.Folder, p.Name)
}

// FileType selects which variant of a file to download.
type FileType int

const (
	FilePreview  FileType = C.GP_FILE_TYPE_PREVIEW
	FileNormal   FileType = C.GP_FILE_TYPE_NORMAL
	FileRaw      FileType = C.GP_FILE_TYPE_RAW
	FileAudio    FileType = C.GP_FILE_TYPE_AUDIO
	FileExif     FileType = C.GP_FILE_TYPE_EXIF
	FileMetadata FileType = C.GP_FILE_TYPE_METADATA
)

func (t FileType) String() string {
	switch t {
	case FilePreview:
		return "preview"
	case FileNormal:
		return "normal"
	case FileRaw:
		return "raw"
	case FileAudio:
		return "audio"
	case FileExif:
		return "exif"
	case FileMetadata:
		return "metadata"
	default:
		return fmt.Sprintf("FileType(%d)", int(t))
	}
}

// CameraFile is a file held in memory (or backed by a host file) by
// libgphoto2. Close it when done; a finalizer releases it otherwise.
type CameraFile struct {
	ctx *Context

	mu  sync.Mutex
	ptr *C.CameraFile
}

func newCameraFile(ctx *Context, ptr *C.CameraFile) *CameraFile {
	f := &CameraFile{ctx: ctx, ptr: ptr}
	runtime.SetFinalizer(f, func(f *CameraFile) {
		go f.Close()
	})
	return f
}

// do runs fn on the worker with the file pointer, or fails with ErrClosed.
// The pointer is read on the worker so that it can't race with Close.
func (f *CameraFile) do(ctx context.Context, fn func(ptr *C.CameraFile) error) error {
	return f.ctx.do(ctx, func() error {
		ptr := f.take(false)
		if ptr == nil {
			return ErrClosed
		}
		return fn(ptr)
	})
}

// take returns the file pointer, clearing it when clear is set.
func (f *CameraFile) take(clear bool) *C.CameraFile {
	f.mu.Lock()
	defer f.mu.Unlock()

	ptr := f.ptr
	if clear {
		f.ptr = nil
	}
	return ptr
}

// Close drops this reference to the native file.
func (f *CameraFile) Close() error {
	runtime.SetFinalizer(f, nil)

	err := f.ctx.do(context.Background(), func() error {
		if ptr := f.take(true); ptr != nil {
			return call(C.gp_file_unref(ptr))
		}
		return nil
	})
	if errors.Is(err, ErrClosed) {
		// The context is gone, so nothing else can be using the file.
		if ptr := f.take(true); ptr != nil {
			return call(C.gp_file_unref(ptr))
		}
		return nil
	}
	return err
}

// Clone returns a second handle sharing the same native file. Both handles
// must be closed.
func (f *CameraFile) Clone() (*CameraFile, error) {
	var out *CameraFile
	err := f.do(context.Background(), func(ptr *C.CameraFile) error {
		if err := call(C.gp_file_ref(ptr)); err != nil {
			return err
		}
		out = newCameraFile(f.ctx, ptr)
		return nil
	})
	return out, err
}

// Data returns a copy of the file contents.
func (f *CameraFile) Data(ctx context.Context) ([]byte, error) {
	var out []byte
	err := f.do(ctx, func(ptr *C.CameraFile) error {
		var data *C.char
		var size C.ulong
		if err := call(C.gp_file_get_data_and_size(ptr, &data, &size)); err != nil {
			return err
		}
		if size == 0 {
			out = []byte{}
			return nil
		}
		out = C.GoBytes(unsafe.Pointer(data), C.int(size))
		return nil
	})
	return out, err
}

// Name returns the file name, which may be empty for previews.
func (f *CameraFile) Name() (string, error) {
	var out string
	err := f.do(context.Background(), func(ptr *C.CameraFile) error {
		var name *C.char
		if err := call(C.gp_file_get_name(ptr, &name)); err != nil {
			return err
		}
		out = C.GoString(name)
		return nil
	})
	return out, err
}

// MimeType returns the MIME type libgphoto2 detected or was told.
func (f *CameraFile) MimeType() (string, error) {
	var out string
	err := f.do(context.Background(), func(ptr *C.CameraFile) error {
		var mime *C.char
		if err := call(C.gp_file_get_mime_type(ptr, &mime)); err != nil {
			return err
		}
		out = C.GoString(mime)
		return nil
	})
	return out, err
}

// MTime returns the modification time.
func (f *CameraFile) MTime() (time.Time, error) {
	var out time.Time
	err := f.do(context.Background(), func(ptr *C.CameraFile) error {
		var mtime C.time_t
		if err := call(C.gp_file_get_mtime(ptr, &mtime)); err != nil {
			return err
		}
		out = time.Unix(int64(mtime), 0)
		return nil
	})
	return out, err
}

// Size returns the size of the file contents in bytes.
func (f *CameraFile) Size() (int64, error) {
	var out int64
	err := f.do(context.Background(), func(ptr *C.CameraFile) error {
		var data *C.char
		var size C.ulong
		if err := call(C.gp_file_get_data_and_size(ptr, &data, &size)); err != nil {
			return err
		}
		out = int64(size)
		return nil
	})
	return out, err
}

// FileInfoFields tells which fields of a FileInfo section are valid.
type FileInfoFields int

const (
	FileInfoType        FileInfoFields = C.GP_FILE_INFO_TYPE
	FileInfoSize        FileInfoFields = C.GP_FILE_INFO_SIZE
	FileInfoWidth       FileInfoFields = C.GP_FILE_INFO_WIDTH
	FileInfoHeight      FileInfoFields = C.GP_FILE_INFO_HEIGHT
	FileInfoPermissions FileInfoFields = C.GP_FILE_INFO_PERMISSIONS
	FileInfoStatus      FileInfoFields = C.GP_FILE_INFO_STATUS
	FileInfoMTime       FileInfoFields = C.GP_FILE_INFO_MTIME
)

// Has reports whether all fields in o are set.
func (f FileInfoFields) Has(o FileInfoFields) bool {
	return f&o == o
}

// FilePermissions is the access allowed on a camera file.
type FilePermissions int

const (
	PermissionNone   FilePermissions = C.GP_FILE_PERM_NONE
	PermissionRead   FilePermissions = C.GP_FILE_PERM_READ
	PermissionDelete FilePermissions = C.GP_FILE_PERM_DELETE
)

// FileSection describes one variant (file, preview, audio) of a camera file.
type FileSection struct {
	Fields FileInfoFields

	MimeType    string
	Size        uint64
	Width       uint32
	Height      uint32
	Permissions FilePermissions
	Downloaded  bool
	MTime       time.Time
}

// FileInfo is what the camera knows about one of its files.
type FileInfo struct {
	File    FileSection
	Preview FileSection
	Audio   FileSection
}

func newFileInfo(info *C.CameraFileInfo) FileInfo {
	f := &info.file
	p := &info.preview
	a := &info.audio

	return FileInfo{
		File: FileSection{
			Fields:      FileInfoFields(f.fields),
			MimeType:    C.GoString(&f._type[0]),
			Size:        uint64(f.size),
			Width:       uint32(f.width),
			Height:      uint32(f.height),
			Permissions: FilePermissions(f.permissions),
			Downloaded:  f.status == C.GP_FILE_STATUS_DOWNLOADED,
			MTime:       time.Unix(int64(f.mtime), 0),
		},
		Preview: FileSection{
			Fields:     FileInfoFields(p.fields),
			MimeType:   C.GoString(&p._type[0]),
			Size:       uint64(p.size),
			Width:      uint32(p.width),
			Height:     uint32(p.height),
			Downloaded: p.status == C.GP_FILE_STATUS_DOWNLOADED,
		},
		Audio: FileSection{
			Fields:     FileInfoFields(a.fields),
			MimeType:   C.GoString(&a._type[0]),
			Size:       uint64(a.size),
			Downloaded: a.status == C.GP_FILE_STATUS_DOWNLOADED,
		},
	}
}
