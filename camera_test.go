package gphoto2

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialup-inc/gphoto2/vcamera"
)

// openCamera opens the virtual camera, skipping the test when libgphoto2
// wasn't pointed at one.
func openCamera(t *testing.T) (*Context, *Camera) {
	t.Helper()

	if !vcamera.Configured() {
		t.Skipf("%s not set, skipping virtual camera test", vcamera.EnvDir)
	}

	gctx, err := NewContext()
	require.NoError(t, err)
	t.Cleanup(func() { gctx.Close() })

	cam, err := gctx.AutodetectCamera(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { cam.Close() })

	return gctx, cam
}

func TestListCameras(t *testing.T) {
	gctx, _ := openCamera(t)

	cameras, err := gctx.ListCameras(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, cameras)

	cam, err := gctx.Camera(context.Background(), cameras[0])
	require.NoError(t, err)
	require.NoError(t, cam.Close())
}

func TestCameraInfo(t *testing.T) {
	_, cam := openCamera(t)
	ctx := context.Background()

	summary, err := cam.Summary(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, summary)

	abilities, err := cam.Abilities(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, abilities.Model)
	assert.True(t, abilities.Operations.Has(OperationCaptureImage))

	port, err := cam.PortInfo(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, port.Path)

	storages, err := cam.Storages(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, storages)
	if storages[0].Fields.Has(StorageFieldBase) {
		assert.NotEmpty(t, storages[0].BaseDirectory)
	}
}

func TestCaptureAndDownload(t *testing.T) {
	_, cam := openCamera(t)
	ctx := context.Background()

	path, err := cam.CaptureImage(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, path.Folder)
	assert.NotEmpty(t, path.Name)

	file, err := cam.FS().Download(ctx, path.Folder, path.Name, FileNormal)
	require.NoError(t, err)
	defer file.Close()

	data, err := file.Data(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	size, err := file.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)

	clone, err := file.Clone()
	require.NoError(t, err)
	require.NoError(t, file.Close())
	again, err := clone.Data(ctx)
	require.NoError(t, err)
	assert.Equal(t, data, again, "clone outlives the original handle")
	require.NoError(t, clone.Close())

	_, err = file.Data(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDownloadTo(t *testing.T) {
	_, cam := openCamera(t)
	ctx := context.Background()

	path, err := cam.CaptureImage(ctx)
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "capture.jpg")
	require.NoError(t, cam.FS().DownloadTo(ctx, path.Folder, path.Name, FileNormal, dst))

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())

	err = cam.FS().DownloadTo(ctx, path.Folder, path.Name, FileNormal, dst)
	assert.Equal(t, KindFileExists, KindOf(err))
}

// openFDs counts this process's open descriptors.
func openFDs(t *testing.T) int {
	t.Helper()

	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("no /proc/self/fd")
	}
	return len(entries)
}

func TestDownloadToCleansUp(t *testing.T) {
	gctx, err := NewContext()
	require.NoError(t, err)
	defer gctx.Close()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		cam  *Camera
		ctx  context.Context
		want error
	}{
		{"cancelled", &Camera{ctx: gctx}, cancelled, context.Canceled},
		{"closed camera", &Camera{ctx: gctx}, context.Background(), ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "out.jpg")
			before := openFDs(t)

			err := tt.cam.FS().DownloadTo(tt.ctx, "/", "missing.jpg", FileNormal, dst)
			assert.ErrorIs(t, err, tt.want)

			_, err = os.Stat(dst)
			assert.True(t, os.IsNotExist(err))
			assert.Equal(t, before, openFDs(t))
		})
	}
}

func TestDownloadToMissingFile(t *testing.T) {
	_, cam := openCamera(t)

	dst := filepath.Join(t.TempDir(), "missing.jpg")
	before := openFDs(t)

	err := cam.FS().DownloadTo(context.Background(), "/", "no-such-file.jpg", FileNormal, dst)
	require.Error(t, err)

	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, before, openFDs(t))
}

func TestFilesystem(t *testing.T) {
	_, cam := openCamera(t)
	ctx := context.Background()
	fs := cam.FS()

	storages, err := cam.Storages(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, storages)
	root := storages[0].BaseDirectory

	sample := vcamera.SampleImage()
	require.NoError(t, fs.Upload(ctx, root, "upload.jpg", sample))

	files, err := fs.ListFiles(ctx, root)
	require.NoError(t, err)
	assert.Contains(t, files, "upload.jpg")

	info, err := fs.FileInfo(ctx, root, "upload.jpg")
	require.NoError(t, err)
	if info.File.Fields.Has(FileInfoSize) {
		assert.Equal(t, uint64(len(sample)), info.File.Size)
	}

	var seen []string
	err = fs.Walk(ctx, root, func(folder, name string) error {
		if name != "" {
			seen = append(seen, name)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, seen, "upload.jpg")

	require.NoError(t, fs.DeleteFile(ctx, root, "upload.jpg"))
	files, err = fs.ListFiles(ctx, root)
	require.NoError(t, err)
	assert.NotContains(t, files, "upload.jpg")

	_, err = fs.FileInfo(ctx, root, "upload.jpg")
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	_, cam := openCamera(t)
	ctx := context.Background()

	root, err := cam.Config(ctx)
	require.NoError(t, err)
	defer root.Close()

	typ, err := root.Type()
	require.NoError(t, err)
	assert.Equal(t, WidgetWindow, typ)

	count := 0
	require.NoError(t, root.Walk(func(w *Widget, depth int) error {
		count++
		return nil
	}))
	assert.Greater(t, count, 1)

	require.NoError(t, cam.SetConfig(ctx, root))
}

func TestWaitEvent(t *testing.T) {
	_, cam := openCamera(t)

	ev, err := cam.WaitEvent(context.Background(), 10*time.Millisecond)
	require.NoError(t, err)
	assert.NotEmpty(t, ev.String())
}

func TestCameraClose(t *testing.T) {
	gctx, cam := openCamera(t)

	require.NoError(t, cam.Close())
	assert.NoError(t, cam.Close())

	_, err := cam.Summary(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	// The context itself is still usable.
	_, err = gctx.ListCameras(context.Background())
	assert.NoError(t, err)
}

func TestContextOutlivesClose(t *testing.T) {
	gctx, cam := openCamera(t)

	require.NoError(t, gctx.Close())

	// The camera still holds a reference.
	_, err := cam.Summary(context.Background())
	require.NoError(t, err)

	require.NoError(t, cam.Close())
	_, err = gctx.ListCameras(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCancelledCall(t *testing.T) {
	_, cam := openCamera(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cam.Summary(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
