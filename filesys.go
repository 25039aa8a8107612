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
	"os"
	"path"

	"golang.org/x/sys/unix"
)

// FS is the filesystem of a camera. Paths are absolute, with "/" as the
// root folder.
type FS struct {
	cam *Camera
}

func (fs *FS) listNames(ctx context.Context, folder string, list func(*C.CameraList, *C.char) C.int) ([]string, error) {
	var out []string

	err := fs.cam.do(ctx, func() error {
		l, err := newCameraList()
		if err != nil {
			return err
		}
		defer l.free()

		cfolder := cString(folder)
		defer freeString(cfolder)

		if err := call(list(l.ptr, cfolder)); err != nil {
			return err
		}
		out, err = l.names()
		return err
	})

	return out, err
}

// ListFiles returns the names of the files in folder.
func (fs *FS) ListFiles(ctx context.Context, folder string) ([]string, error) {
	return fs.listNames(ctx, folder, func(l *C.CameraList, f *C.char) C.int {
		return C.gp_camera_folder_list_files(fs.cam.ptr, f, l, fs.cam.ctx.ptr)
	})
}

// ListFolders returns the names of the subfolders of folder.
func (fs *FS) ListFolders(ctx context.Context, folder string) ([]string, error) {
	return fs.listNames(ctx, folder, func(l *C.CameraList, f *C.char) C.int {
		return C.gp_camera_folder_list_folders(fs.cam.ptr, f, l, fs.cam.ctx.ptr)
	})
}

// FileInfo returns the camera's metadata for a file.
func (fs *FS) FileInfo(ctx context.Context, folder, name string) (FileInfo, error) {
	var out FileInfo

	err := fs.cam.do(ctx, func() error {
		cfolder, cname := cString(folder), cString(name)
		defer freeString(cfolder)
		defer freeString(cname)

		var info C.CameraFileInfo
		if err := call(C.gp_camera_file_get_info(fs.cam.ptr, cfolder, cname, &info, fs.cam.ctx.ptr)); err != nil {
			return err
		}
		out = newFileInfo(&info)
		return nil
	})

	return out, err
}

// DeleteFile removes a file from the camera.
func (fs *FS) DeleteFile(ctx context.Context, folder, name string) error {
	return fs.cam.do(ctx, func() error {
		cfolder, cname := cString(folder), cString(name)
		defer freeString(cfolder)
		defer freeString(cname)

		return call(C.gp_camera_file_delete(fs.cam.ptr, cfolder, cname, fs.cam.ctx.ptr))
	})
}

// DeleteAll removes every file in folder. Subfolders are left alone.
func (fs *FS) DeleteAll(ctx context.Context, folder string) error {
	return fs.cam.do(ctx, func() error {
		cfolder := cString(folder)
		defer freeString(cfolder)

		return call(C.gp_camera_folder_delete_all(fs.cam.ptr, cfolder, fs.cam.ctx.ptr))
	})
}

// Upload stores data as a new file in folder.
func (fs *FS) Upload(ctx context.Context, folder, name string, data []byte) error {
	return fs.cam.do(ctx, func() error {
		var file *C.CameraFile
		if err := call(C.gp_file_new(&file)); err != nil {
			return err
		}
		defer C.gp_file_unref(file)

		cname := cString(name)
		defer freeString(cname)
		if err := call(C.gp_file_set_name(file, cname)); err != nil {
			return err
		}

		// The file takes ownership of the buffer.
		buf := C.CBytes(data)
		if err := call(C.gp_file_set_data_and_size(file, (*C.char)(buf), C.ulong(len(data)))); err != nil {
			C.free(buf)
			return err
		}

		cfolder := cString(folder)
		defer freeString(cfolder)

		return call(C.gp_camera_folder_put_file(fs.cam.ptr, cfolder, cname, C.GP_FILE_TYPE_NORMAL, file, fs.cam.ctx.ptr))
	})
}

// Mkdir creates folder name inside parent.
func (fs *FS) Mkdir(ctx context.Context, parent, name string) error {
	return fs.cam.do(ctx, func() error {
		cparent, cname := cString(parent), cString(name)
		defer freeString(cparent)
		defer freeString(cname)

		return call(C.gp_camera_folder_make_dir(fs.cam.ptr, cparent, cname, fs.cam.ctx.ptr))
	})
}

// Rmdir removes the empty folder name inside parent.
func (fs *FS) Rmdir(ctx context.Context, parent, name string) error {
	return fs.cam.do(ctx, func() error {
		cparent, cname := cString(parent), cString(name)
		defer freeString(cparent)
		defer freeString(cname)

		return call(C.gp_camera_folder_remove_dir(fs.cam.ptr, cparent, cname, fs.cam.ctx.ptr))
	})
}

// Download reads a file into memory.
func (fs *FS) Download(ctx context.Context, folder, name string, typ FileType) (*CameraFile, error) {
	var out *CameraFile

	err := fs.cam.do(ctx, func() error {
		var file *C.CameraFile
		if err := call(C.gp_file_new(&file)); err != nil {
			return err
		}
		if err := fs.get(folder, name, typ, file); err != nil {
			C.gp_file_unref(file)
			return err
		}
		out = newCameraFile(fs.cam.ctx, file)
		return nil
	})

	return out, err
}

// DownloadTo streams a file straight into a new host file at dst. It fails
// with a FileExists error if dst already exists.
func (fs *FS) DownloadTo(ctx context.Context, folder, name string, typ FileType, dst string) error {
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return newError(ResultFileExists, dst)
	}
	if err != nil {
		return fmt.Errorf("gphoto2: create %s: %w", dst, err)
	}
	defer out.Close()

	// libgphoto2 closes the descriptor it is given.
	fd, err := unix.Dup(int(out.Fd()))
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("gphoto2: dup %s: %w", dst, err)
	}

	// fd belongs to the native file only once gp_file_new_from_fd succeeds.
	owned := false
	err = fs.cam.do(ctx, func() error {
		var file *C.CameraFile
		if err := call(C.gp_file_new_from_fd(&file, C.int(fd))); err != nil {
			return err
		}
		owned = true
		defer C.gp_file_unref(file)

		return fs.get(folder, name, typ, file)
	})
	if !owned {
		unix.Close(fd)
	}
	if err != nil {
		os.Remove(dst)
	}
	return err
}

// get must run on the worker thread.
func (fs *FS) get(folder, name string, typ FileType, file *C.CameraFile) error {
	cfolder, cname := cString(folder), cString(name)
	defer freeString(cfolder)
	defer freeString(cname)

	return call(C.gp_camera_file_get(fs.cam.ptr, cfolder, cname, C.CameraFileType(typ), file, fs.cam.ctx.ptr))
}

// WalkFunc is called by Walk for every folder and file. For folders name is
// empty. Returning SkipFolder from a folder visit skips its contents.
type WalkFunc func(folder, name string) error

// SkipFolder is returned by a WalkFunc to skip the folder being visited.
var SkipFolder = errors.New("skip this folder")

// Walk visits root and everything below it, folders before their contents.
func (fs *FS) Walk(ctx context.Context, root string, fn WalkFunc) error {
	err := fn(root, "")
	if errors.Is(err, SkipFolder) {
		return nil
	}
	if err != nil {
		return err
	}

	files, err := fs.ListFiles(ctx, root)
	if err != nil {
		return err
	}
	for _, name := range files {
		if err := fn(root, name); err != nil {
			return err
		}
	}

	folders, err := fs.ListFolders(ctx, root)
	if err != nil {
		return err
	}
	for _, name := range folders {
		if err := fs.Walk(ctx, path.Join(root, name), fn); err != nil {
			return err
		}
	}

	return nil
}
