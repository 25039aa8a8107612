// Package vcamera points libgphoto2 at a virtual camera so tests can run
// without hardware.
//
// The virtual camera is libgphoto2's own vusb port driver built with the
// vcamera option. It serves the files found in the directory named by
// VCAMERADIR.
package vcamera

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"sync"
)

// EnvDir is read by libgphoto2's virtual camera for its filesystem root.
const EnvDir = "VCAMERADIR"

// Dir returns the configured virtual camera directory, if any.
func Dir() string {
	return os.Getenv(EnvDir)
}

// Configured reports whether a virtual camera directory is set and exists.
func Configured() bool {
	dir := Dir()
	if dir == "" {
		return false
	}
	fi, err := os.Stat(dir)
	return err == nil && fi.IsDir()
}

// SetEnv makes the native library use dir as the virtual camera's
// filesystem. It must be called before the first camera is opened.
//
// With cgo linked in, os.Setenv also updates the C environment that
// libgphoto2 reads.
func SetEnv(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("vcamera: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("vcamera: %s is not a directory", dir)
	}
	return os.Setenv(EnvDir, dir)
}

var (
	sampleOnce sync.Once
	sample     []byte
)

// SampleImage returns a small blank JPEG, suitable for upload tests.
func SampleImage() []byte {
	sampleOnce.Do(func() {
		img := image.NewGray(image.Rect(0, 0, 16, 16))
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 75}); err != nil {
			panic(err)
		}
		sample = buf.Bytes()
	})

	out := make([]byte, len(sample))
	copy(out, sample)
	return out
}
