// Command camera-info prints what a camera and its driver report about
// themselves.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dialup-inc/gphoto2"
	"github.com/dialup-inc/gphoto2/internal/cli"
	"github.com/dialup-inc/gphoto2/internal/config"
)

func main() {
	var about, manual bool
	env, err := cli.Setup(func(fs *flag.FlagSet, cfg *config.Config) {
		fs.BoolVar(&about, "about", false, "also print the driver's about text")
		fs.BoolVar(&manual, "manual", false, "also print the driver's manual")
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

	ctx := env.Ctx

	a, err := cam.Abilities(ctx)
	if err != nil {
		env.Fatal(err)
	}
	port, err := cam.PortInfo(ctx)
	if err != nil {
		env.Fatal(err)
	}

	fmt.Printf("libgphoto2 %s\n", gphoto2.LibraryVersion())
	fmt.Printf("Model:    %s\n", a.Model)
	fmt.Printf("Driver:   %s (%s)\n", a.ID, a.Status)
	fmt.Printf("Port:     %s (%s, %s)\n", port.Path, port.Name, port.Type)
	if a.USB.Vendor != 0 {
		fmt.Printf("USB:      %04x:%04x\n", a.USB.Vendor, a.USB.Product)
	}
	fmt.Printf("Capture:  image=%t preview=%t trigger=%t config=%t\n",
		a.Operations.Has(gphoto2.OperationCaptureImage),
		a.Operations.Has(gphoto2.OperationCapturePreview),
		a.Operations.Has(gphoto2.OperationTriggerCapture),
		a.Operations.Has(gphoto2.OperationConfig))

	storages, err := cam.Storages(ctx)
	if err != nil && gphoto2.KindOf(err) != gphoto2.KindNotSupported {
		env.Fatal(err)
	}
	for _, s := range storages {
		fmt.Printf("Storage:  %s %q", s.BaseDirectory, s.Description)
		if s.Fields.Has(gphoto2.StorageFieldMaxCapacity) && s.Fields.Has(gphoto2.StorageFieldFreeSpaceKBytes) {
			fmt.Printf(" %d/%d MB free", s.FreeKB/1024, s.CapacityKB/1024)
		}
		if s.Fields.Has(gphoto2.StorageFieldFreeSpaceImages) {
			fmt.Printf(", %d images", s.FreeImages)
		}
		fmt.Println()
	}

	summary, err := cam.Summary(ctx)
	if err != nil {
		env.Fatal(err)
	}
	fmt.Printf("\n%s\n", summary)

	if about {
		text, err := cam.About(ctx)
		if err != nil {
			env.Fatal(err)
		}
		fmt.Printf("\n%s\n", text)
	}
	if manual {
		text, err := cam.Manual(ctx)
		if err != nil {
			env.Fatal(err)
		}
		fmt.Printf("\n%s\n", text)
	}
}
