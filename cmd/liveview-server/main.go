// Command liveview-server streams the camera's live view to browsers.
//
// Frames are sent as binary websocket messages on /ws, the latest frame is
// served on /snapshot and / reports the server status.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dialup-inc/gphoto2/internal/cli"
	"github.com/dialup-inc/gphoto2/internal/config"
	"github.com/dialup-inc/gphoto2/liveview"
)

func main() {
	env, err := cli.Setup(func(fs *flag.FlagSet, cfg *config.Config) {
		cfg.RegisterPreviewFlags(fs)
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

	src := liveview.SourceFunc(func(ctx context.Context) ([]byte, error) {
		return cli.Preview(ctx, cam)
	})
	srv := liveview.NewServer(src, env.Config.PreviewInterval(), env.Log)

	httpSrv := &http.Server{
		Addr:              env.Config.LiveviewAddr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-env.Ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := srv.Run(env.Ctx); err != nil && !errors.Is(err, context.Canceled) {
			env.Log.Error().Err(err).Msg("preview loop stopped")
		}
	}()

	env.Log.Info().Str("addr", httpSrv.Addr).Msg("listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		env.Fatal(err)
	}
}
