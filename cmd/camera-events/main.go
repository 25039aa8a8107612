// Command camera-events prints camera events as they happen, optionally
// downloading files the camera announces.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dialup-inc/gphoto2"
	"github.com/dialup-inc/gphoto2/internal/cli"
	"github.com/dialup-inc/gphoto2/internal/config"
)

func main() {
	var (
		timeout  time.Duration
		download string
		trigger  bool
	)
	env, err := cli.Setup(func(fs *flag.FlagSet, cfg *config.Config) {
		fs.DurationVar(&timeout, "timeout", time.Second, "wait this long for each event")
		fs.StringVar(&download, "download", "", "download added files into this directory")
		fs.BoolVar(&trigger, "trigger", false, "trigger a capture before listening")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer env.Close()

	_, cam, err := env.OpenCamera()
	if err != nil {
		env.Fatal(err)
	}

	if trigger {
		if err := cam.TriggerCapture(env.Ctx); err != nil {
			env.Fatal(err)
		}
	}

	for env.Ctx.Err() == nil {
		ev, err := cam.WaitEvent(env.Ctx, timeout)
		if env.Ctx.Err() != nil {
			return
		}
		if err != nil {
			env.Fatal(err)
		}
		if ev.Type == gphoto2.EventTimeout {
			continue
		}

		env.Log.Info().Str("type", ev.Type.String()).Str("path", ev.Path.String()).Str("text", ev.Text).Msg("event")

		if download != "" && ev.Type == gphoto2.EventFileAdded {
			dst := filepath.Join(download, ev.Path.Name)
			err := cam.FS().DownloadTo(env.Ctx, ev.Path.Folder, ev.Path.Name, gphoto2.FileNormal, dst)
			if err != nil {
				env.Log.Error().Err(err).Str("path", ev.Path.String()).Msg("download failed")
				continue
			}
			fmt.Println(dst)
		}
	}
}
