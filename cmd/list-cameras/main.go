// Command list-cameras prints the connected cameras, or with -abilities
// every camera model the installed drivers support.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dialup-inc/gphoto2"
	"github.com/dialup-inc/gphoto2/internal/cli"
	"github.com/dialup-inc/gphoto2/internal/config"
)

func main() {
	var abilities, ports bool
	env, err := cli.Setup(func(fs *flag.FlagSet, cfg *config.Config) {
		fs.BoolVar(&abilities, "abilities", false, "list supported camera models")
		fs.BoolVar(&ports, "ports", false, "list known ports")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer env.Close()

	gctx, err := gphoto2.NewContext()
	if err != nil {
		env.Fatal(err)
	}
	env.Track(gctx)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch {
	case abilities:
		list, err := gctx.ListAbilities(env.Ctx)
		if err != nil {
			env.Fatal(err)
		}
		fmt.Fprintln(w, "MODEL\tDRIVER\tSTATUS\tPORTS")
		for _, a := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Model, a.ID, a.Status, a.Ports)
		}

	case ports:
		list, err := gctx.ListPorts(env.Ctx)
		if err != nil {
			env.Fatal(err)
		}
		fmt.Fprintln(w, "PATH\tTYPE\tNAME")
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Path, p.Type, p.Name)
		}

	default:
		cameras, err := gctx.ListCameras(env.Ctx)
		if err != nil {
			env.Fatal(err)
		}
		if len(cameras) == 0 {
			env.Log.Warn().Msg("no cameras found")
			return
		}
		fmt.Fprintln(w, "MODEL\tPORT")
		for _, c := range cameras {
			fmt.Fprintf(w, "%s\t%s\n", c.Model, c.Port)
		}
	}
}
