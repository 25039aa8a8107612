// Command list-config prints a camera's configuration tree.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dialup-inc/gphoto2"
	"github.com/dialup-inc/gphoto2/internal/cli"
	"github.com/dialup-inc/gphoto2/internal/config"
)

func main() {
	var key string
	var choices bool
	env, err := cli.Setup(func(fs *flag.FlagSet, cfg *config.Config) {
		fs.StringVar(&key, "key", "", "print only this setting")
		fs.BoolVar(&choices, "choices", false, "print the choices of menus and the bounds of ranges")
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

	var root *gphoto2.Widget
	if key != "" {
		root, err = cam.ConfigKey(env.Ctx, key)
	} else {
		root, err = cam.Config(env.Ctx)
	}
	if err != nil {
		env.Fatal(err)
	}
	defer root.Close()

	err = root.Walk(func(w *gphoto2.Widget, depth int) error {
		return printWidget(w, depth, choices)
	})
	if err != nil {
		env.Fatal(err)
	}
}

func printWidget(w *gphoto2.Widget, depth int, choices bool) error {
	name, err := w.Name()
	if err != nil {
		return err
	}
	label, err := w.Label()
	if err != nil {
		return err
	}
	typ, err := w.Type()
	if err != nil {
		return err
	}

	indent := strings.Repeat("  ", depth)
	if !typ.HasValue() {
		fmt.Printf("%s%s (%s) [%s]\n", indent, name, label, typ)
		return nil
	}

	v, err := w.Value()
	if err != nil {
		return err
	}
	ro, err := w.Readonly()
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s%s (%s) = %s", indent, name, label, cli.FormatValue(v))
	if ro {
		line += " [readonly]"
	}
	fmt.Println(line)

	if !choices {
		return nil
	}
	switch typ {
	case gphoto2.WidgetMenu, gphoto2.WidgetRadio:
		opts, err := w.Choices()
		if err != nil {
			return err
		}
		for _, o := range opts {
			fmt.Printf("%s    - %s\n", indent, o)
		}
	case gphoto2.WidgetRange:
		min, max, step, err := w.Range()
		if err != nil {
			return err
		}
		fmt.Printf("%s    %g..%g step %g\n", indent, min, max, step)
	}
	return nil
}
