//go:build linux

package osfile

import (
	"os"

	"golang.org/x/sys/unix"
)

func identityOf(f *os.File) Identity {
	var stat unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &stat); err != nil {
		return Identity{}
	}
	return Identity{Dev: uint64(stat.Dev), Ino: stat.Ino, Valid: true}
}
