// Command capture takes a picture and downloads it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dialup-inc/gphoto2"
	"github.com/dialup-inc/gphoto2/internal/cli"
	"github.com/dialup-inc/gphoto2/internal/config"
)

func main() {
	var (
		dir     string
		keep    bool
		count   int
		every   time.Duration
		preview bool
	)
	env, err := cli.Setup(func(fs *flag.FlagSet, cfg *config.Config) {
		fs.StringVar(&dir, "o", ".", "directory to download into")
		fs.BoolVar(&keep, "keep", false, "keep the image on the camera")
		fs.IntVar(&count, "n", 1, "number of pictures")
		fs.DurationVar(&every, "interval", time.Second, "time between pictures")
		fs.BoolVar(&preview, "preview", false, "grab a preview frame instead of a picture")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer env.Close()

	gctx, cam, err := env.OpenCamera()
	if err != nil {
		env.Fatal(err)
	}

	gctx.SetProgressFuncs(progress(env))

	for i := 0; i < count; i++ {
		if i > 0 {
			select {
			case <-time.After(every):
			case <-env.Ctx.Done():
				return
			}
		}

		var dst string
		if preview {
			dst, err = capturePreview(env, cam, dir, i)
		} else {
			dst, err = capture(env, cam, dir, keep)
		}
		if err != nil {
			env.Fatal(err)
		}
		fmt.Println(dst)
	}
}

func capture(env *cli.Env, cam *gphoto2.Camera, dir string, keep bool) (string, error) {
	ctx := env.Ctx

	path, err := cam.CaptureImage(ctx)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	env.Log.Info().Str("path", path.String()).Msg("captured")

	dst := filepath.Join(dir, path.Name)
	if err := cam.FS().DownloadTo(ctx, path.Folder, path.Name, gphoto2.FileNormal, dst); err != nil {
		return "", fmt.Errorf("download %s: %w", path, err)
	}

	if !keep {
		if err := cam.FS().DeleteFile(ctx, path.Folder, path.Name); err != nil {
			env.Log.Warn().Err(err).Str("path", path.String()).Msg("delete failed")
		}
	}

	return dst, nil
}

func capturePreview(env *cli.Env, cam *gphoto2.Camera, dir string, i int) (string, error) {
	file, err := cam.CapturePreview(env.Ctx)
	if err != nil {
		return "", fmt.Errorf("preview: %w", err)
	}
	defer file.Close()

	data, err := file.Data(env.Ctx)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dir, fmt.Sprintf("preview-%03d.jpg", i))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", err
	}
	return dst, nil
}

// progress logs long downloads.
func progress(env *cli.Env) gphoto2.ProgressFuncs {
	var mu sync.Mutex
	var next uint32
	targets := make(map[uint32]float32)

	return gphoto2.ProgressFuncs{
		Start: func(target float32, text string) uint32 {
			mu.Lock()
			defer mu.Unlock()
			next++
			targets[next] = target
			env.Log.Debug().Uint32("id", next).Str("text", text).Msg("progress start")
			return next
		},
		Update: func(id uint32, current float32) {
			mu.Lock()
			target := targets[id]
			mu.Unlock()
			if target > 0 {
				env.Log.Debug().Uint32("id", id).Float32("percent", 100*current/target).Msg("progress")
			}
		},
		Stop: func(id uint32) {
			mu.Lock()
			delete(targets, id)
			mu.Unlock()
			env.Log.Debug().Uint32("id", id).Msg("progress done")
		},
	}
}
