// Command set-config changes camera settings given as key=value arguments.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dialup-inc/gphoto2"
	"github.com/dialup-inc/gphoto2/internal/cli"
)

func main() {
	env, err := cli.Setup(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer env.Close()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: set-config [flags] key=value...")
		os.Exit(2)
	}

	_, cam, err := env.OpenCamera()
	if err != nil {
		env.Fatal(err)
	}

	for _, arg := range flag.Args() {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			env.Fatal(fmt.Errorf("%q is not key=value", arg))
		}
		if err := set(env, cam, key, value); err != nil {
			env.Fatal(fmt.Errorf("%s: %w", key, err))
		}
		env.Log.Info().Str("key", key).Str("value", value).Msg("set")
	}
}

func set(env *cli.Env, cam *gphoto2.Camera, key, value string) error {
	w, err := cam.ConfigKey(env.Ctx, key)
	if err != nil {
		return err
	}
	defer w.Close()

	typ, err := w.Type()
	if err != nil {
		return err
	}

	if typ == gphoto2.WidgetButton {
		// Buttons act when written back, whatever the value.
		return cam.SetConfig(env.Ctx, w)
	}

	v, err := cli.ParseValue(typ, value)
	if err != nil {
		return err
	}
	if err := w.SetValue(v); err != nil {
		return err
	}
	return cam.SetConfig(env.Ctx, w)
}
