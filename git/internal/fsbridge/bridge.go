// Package fsbridge connects the project's fs abstraction to the go-billy
// filesystems and storages go-git expects.
package fsbridge

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/PeterVoronov/action-prepare-locales/fs"
	fsb "github.com/PeterVoronov/action-prepare-locales/fs/billy"
)

// MinCacheSize is used when a non-positive object cache size is requested.
const MinCacheSize = 100

// ToBillyFilesystem unwraps fsys into its go-billy filesystem.
// Only filesystems created by the fs/billy package can be unwrapped.
//
//nolint:ireturn // go-git consumes the billy.Filesystem interface.
func ToBillyFilesystem(fsys fs.Filesystem) (billy.Filesystem, error) {
	b, ok := fsys.(*fsb.FS)
	if !ok {
		return nil, fmt.Errorf("filesystem must be a billy.FS from fs/billy package, got %T", fsys)
	}
	return b.Raw(), nil
}

// Scope unwraps fsys and chroots it to dir.
//
//nolint:ireturn // go-git consumes the billy.Filesystem interface.
func Scope(fsys fs.Filesystem, dir string) (billy.Filesystem, error) {
	raw, err := ToBillyFilesystem(fsys)
	if err != nil {
		return nil, err
	}
	if dir == "" || dir == "." {
		return raw, nil
	}
	scoped, err := raw.Chroot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to chroot to %q: %w", dir, err)
	}
	return scoped, nil
}

// NewStorage creates git object storage on billyFS with an LRU object cache
// of cacheSize entries.
func NewStorage(billyFS billy.Filesystem, cacheSize int) *filesystem.Storage {
	if cacheSize <= 0 {
		cacheSize = MinCacheSize
	}
	return filesystem.NewStorage(billyFS, cache.NewObjectLRU(cache.FileSize(cacheSize)))
}
