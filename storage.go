package gphoto2

/*
#include <gphoto2/gphoto2.h>
*/
import "C"

// StorageType is the hardware type of a storage medium.
type StorageType int

const (
	StorageUnknown      StorageType = C.GP_STORAGEINFO_ST_UNKNOWN
	StorageFixedROM     StorageType = C.GP_STORAGEINFO_ST_FIXED_ROM
	StorageRemovableROM StorageType = C.GP_STORAGEINFO_ST_REMOVABLE_ROM
	StorageFixedRAM     StorageType = C.GP_STORAGEINFO_ST_FIXED_RAM
	StorageRemovableRAM StorageType = C.GP_STORAGEINFO_ST_REMOVABLE_RAM
)

// FilesystemType is the layout of the filesystem on a storage medium.
type FilesystemType int

const (
	FilesystemUndefined    FilesystemType = C.GP_STORAGEINFO_FST_UNDEFINED
	FilesystemFlat         FilesystemType = C.GP_STORAGEINFO_FST_GENERICFLAT
	FilesystemHierarchical FilesystemType = C.GP_STORAGEINFO_FST_GENERICHIERARCHICAL
	FilesystemDCF          FilesystemType = C.GP_STORAGEINFO_FST_DCF
)

// AccessType is the access a storage medium allows.
type AccessType int

const (
	AccessReadWrite          AccessType = C.GP_STORAGEINFO_AC_READWRITE
	AccessReadOnly           AccessType = C.GP_STORAGEINFO_AC_READONLY
	AccessReadOnlyWithDelete AccessType = C.GP_STORAGEINFO_AC_READONLY_WITH_DELETE
)

// StorageFields tells which StorageInfo fields the camera filled in.
type StorageFields int

const (
	StorageFieldBase            StorageFields = C.GP_STORAGEINFO_BASE
	StorageFieldLabel           StorageFields = C.GP_STORAGEINFO_LABEL
	StorageFieldDescription     StorageFields = C.GP_STORAGEINFO_DESCRIPTION
	StorageFieldAccess          StorageFields = C.GP_STORAGEINFO_ACCESS
	StorageFieldStorageType     StorageFields = C.GP_STORAGEINFO_STORAGETYPE
	StorageFieldFilesystemType  StorageFields = C.GP_STORAGEINFO_FILESYSTEMTYPE
	StorageFieldMaxCapacity     StorageFields = C.GP_STORAGEINFO_MAXCAPACITY
	StorageFieldFreeSpaceKBytes StorageFields = C.GP_STORAGEINFO_FREESPACEKBYTES
	StorageFieldFreeSpaceImages StorageFields = C.GP_STORAGEINFO_FREESPACEIMAGES
)

// Has reports whether all fields in f are set.
func (s StorageFields) Has(f StorageFields) bool {
	return s&f == f
}

// StorageInfo describes one storage medium. Only the fields flagged in
// Fields carry meaningful values.
type StorageInfo struct {
	Fields StorageFields

	BaseDirectory  string
	Label          string
	Description    string
	StorageType    StorageType
	FilesystemType FilesystemType
	Access         AccessType
	CapacityKB     uint64
	FreeKB         uint64
	FreeImages     uint64
}

func newStorageInfo(s *C.CameraStorageInformation) StorageInfo {
	return StorageInfo{
		Fields:         StorageFields(s.fields),
		BaseDirectory:  C.GoString(&s.basedir[0]),
		Label:          C.GoString(&s.label[0]),
		Description:    C.GoString(&s.description[0]),
		StorageType:    StorageType(s._type),
		FilesystemType: FilesystemType(s.fstype),
		Access:         AccessType(s.access),
		CapacityKB:     uint64(s.capacitykbytes),
		FreeKB:         uint64(s.freekbytes),
		FreeImages:     uint64(s.freeimages),
	}
}
