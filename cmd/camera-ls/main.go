// Command camera-ls lists the files on a camera.
package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/dialup-inc/gphoto2"
	"github.com/dialup-inc/gphoto2/internal/cli"
	"github.com/dialup-inc/gphoto2/internal/config"
)

func main() {
	var root string
	var long bool
	env, err := cli.Setup(func(fs *flag.FlagSet, cfg *config.Config) {
		fs.StringVar(&root, "folder", "/", "folder to list")
		fs.BoolVar(&long, "l", false, "print size, type and time")
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

	fsys := cam.FS()
	err = fsys.Walk(env.Ctx, root, func(folder, name string) error {
		if name == "" {
			return nil
		}
		p := path.Join(folder, name)
		if !long {
			fmt.Println(p)
			return nil
		}

		info, err := fsys.FileInfo(env.Ctx, folder, name)
		if err != nil {
			env.Log.Warn().Err(err).Str("path", p).Msg("file info failed")
			fmt.Println(p)
			return nil
		}
		printLong(p, info.File)
		return nil
	})
	if err != nil {
		env.Fatal(err)
	}
}

func printLong(p string, f gphoto2.FileSection) {
	size, mime, mtime := "-", "-", "-"
	if f.Fields.Has(gphoto2.FileInfoSize) {
		size = fmt.Sprint(f.Size)
	}
	if f.Fields.Has(gphoto2.FileInfoType) {
		mime = f.MimeType
	}
	if f.Fields.Has(gphoto2.FileInfoMTime) {
		mtime = f.MTime.Format("2006-01-02 15:04")
	}
	fmt.Printf("%10s  %-12s  %s  %s\n", size, mime, mtime, p)
}
