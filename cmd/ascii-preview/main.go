// Command ascii-preview shows the camera's live view in the terminal.
// Press q to quit, i to invert for light backgrounds.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dialup-inc/gphoto2/internal/cli"
	"github.com/dialup-inc/gphoto2/internal/config"
	"github.com/dialup-inc/gphoto2/term"
)

func main() {
	var light bool
	env, err := cli.Setup(func(fs *flag.FlagSet, cfg *config.Config) {
		cfg.RegisterPreviewFlags(fs)
		fs.BoolVar(&light, "light", false, "terminal has a light background")
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

	r := term.NewRenderer()
	if light {
		r.Dispatch(term.ToggleLightEvent{})
	}
	if a, err := cam.Abilities(env.Ctx); err == nil {
		r.Dispatch(term.TitleEvent(a.Model))
	}

	resize := func() {
		ws, err := term.GetWinSize(os.Stdout)
		if err != nil {
			env.Fatal(err)
		}
		r.Dispatch(term.ResizeEvent{WinSize: ws})
	}
	resize()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)

	quit := make(chan struct{})
	restore, err := term.CaptureStdin(func(c rune) {
		switch c {
		case 'q', 3:
			select {
			case <-quit:
			default:
				close(quit)
			}
		case 'i':
			r.Dispatch(term.ToggleLightEvent{})
		}
	})
	if err != nil {
		env.Fatal(err)
	}
	defer restore()

	r.Start()
	defer r.Stop()

	ticker := time.NewTicker(env.Config.PreviewInterval())
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-env.Ctx.Done():
			return
		case <-winch:
			resize()
			continue
		case <-ticker.C:
		}

		data, err := cli.Preview(env.Ctx, cam)
		if err != nil {
			r.Dispatch(term.LogEvent{Text: err.Error(), Level: term.LogLevelError})
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			r.Dispatch(term.LogEvent{Text: "decode: " + err.Error(), Level: term.LogLevelError})
			continue
		}
		r.Dispatch(term.FrameEvent{Image: img})
	}
}
