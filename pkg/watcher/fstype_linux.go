//go:build linux

package watcher

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Superblock magic numbers from linux/magic.h.
const (
	nfsSuperMagic   = 0x6969
	smbSuperMagic   = 0x517b
	cifsMagicNumber = 0xff534d42
	smb2MagicNumber = 0xfe534d42
	fuseSuperMagic  = 0x65735546
)

func detectFilesystemType(path string) FilesystemType {
	var st unix.Statfs_t
	// The file may not exist yet; its directory decides where it will live.
	if err := unix.Statfs(path, &st); err != nil {
		if err := unix.Statfs(filepath.Dir(path), &st); err != nil {
			return FSTypeUnknown
		}
	}
	switch uint32(st.Type) {
	case nfsSuperMagic:
		return FSTypeNFS
	case smbSuperMagic, cifsMagicNumber, smb2MagicNumber:
		return FSTypeSMB
	case fuseSuperMagic:
		// sshfs is the common FUSE mount for a shared glossary, but statfs
		// cannot tell it apart from other FUSE filesystems.
		return FSTypeFUSE
	default:
		return FSTypeLocal
	}
}
