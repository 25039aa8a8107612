package gphoto2

/*
#include <gphoto2/gphoto2.h>
*/
import "C"
import "strings"

// PortType is the kind of connection a camera is reached through.
type PortType int

// Port types as reported by libgphoto2_port. They are bit flags so that
// abilities can advertise several supported ports at once.
const (
	PortNone          PortType = C.GP_PORT_NONE
	PortSerial        PortType = C.GP_PORT_SERIAL
	PortUSB           PortType = C.GP_PORT_USB
	PortDisk          PortType = C.GP_PORT_DISK
	PortPTPIP         PortType = C.GP_PORT_PTPIP
	PortUSBDiskDirect PortType = C.GP_PORT_USB_DISK_DIRECT
	PortUSBSCSI       PortType = C.GP_PORT_USB_SCSI
	PortIP            PortType = C.GP_PORT_IP
)

var portTypeNames = []struct {
	t    PortType
	name string
}{
	{PortSerial, "serial"},
	{PortUSB, "usb"},
	{PortDisk, "disk"},
	{PortPTPIP, "ptpip"},
	{PortUSBDiskDirect, "usbdiskdirect"},
	{PortUSBSCSI, "usbscsi"},
	{PortIP, "ip"},
}

// Has reports whether all bits of o are set in t.
func (t PortType) Has(o PortType) bool {
	return o != PortNone && t&o == o
}

func (t PortType) String() string {
	if t == PortNone {
		return "none"
	}
	var names []string
	for _, n := range portTypeNames {
		if t.Has(n.t) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// PortInfo describes a port the camera can be reached through.
type PortInfo struct {
	Name string
	Path string
	Type PortType
}

// newPortInfo copies the fields out of info, which stays owned by its list
// or camera.
func newPortInfo(info C.GPPortInfo) (PortInfo, error) {
	var name, path *C.char
	var typ C.GPPortType

	if err := call(C.gp_port_info_get_name(info, &name)); err != nil {
		return PortInfo{}, err
	}
	if err := call(C.gp_port_info_get_path(info, &path)); err != nil {
		return PortInfo{}, err
	}
	if err := call(C.gp_port_info_get_type(info, &typ)); err != nil {
		return PortInfo{}, err
	}

	return PortInfo{
		Name: C.GoString(name),
		Path: C.GoString(path),
		Type: PortType(typ),
	}, nil
}

// loadPortInfoList must run on a worker thread. The caller frees the list.
func loadPortInfoList() (*C.GPPortInfoList, error) {
	var list *C.GPPortInfoList
	if err := call(C.gp_port_info_list_new(&list)); err != nil {
		return nil, err
	}
	if err := call(C.gp_port_info_list_load(list)); err != nil {
		C.gp_port_info_list_free(list)
		return nil, err
	}
	return list, nil
}
