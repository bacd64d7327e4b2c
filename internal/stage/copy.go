package stage

import (
	"fmt"
	"io"
	"os"

	"github.com/moby/sys/atomicwriter"
)

// DirMode is the permission mode for created destination directories.
const DirMode os.FileMode = 0755

// EnsureDir creates path and any missing parents. An existing directory is
// not an error; an existing non-directory is.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("will not overwrite non-directory %q", path)
		}
		return nil
	}
	if err := os.MkdirAll(path, DirMode); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", path, err)
	}
	return nil
}

// CopyFile copies src to dst byte for byte, replacing any existing dst.
// The permission bits of src are applied to dst. It returns the number of
// bytes copied.
//
// The new content is written to a temporary file next to dst and renamed
// over it, so a failed copy leaves any previous dst untouched.
//
// When src and dst name the same file the call is a no-op.
func CopyFile(src, dst string) (int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("failed to read source: %w", err)
	}
	if srcInfo.IsDir() {
		return 0, fmt.Errorf("source %q must be a file", src)
	}

	if dstInfo, err := os.Stat(dst); err == nil {
		if dstInfo.IsDir() {
			return 0, fmt.Errorf("destination %q is a directory", dst)
		}
		if os.SameFile(srcInfo, dstInfo) {
			return srcInfo.Size(), nil
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	n, err := writeAtomic(dst, in, srcInfo.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("failed to copy %q to %q: %w", src, dst, err)
	}
	return n, nil
}

// writeAtomic replaces dst with the full content of r.
//
// atomicwriter renames its temporary file into place on Close unless a
// Write failed, so r is drained before anything is written: a read error
// must not produce a truncated dst.
func writeAtomic(dst string, r io.Reader, mode os.FileMode) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := atomicwriter.WriteFile(dst, data, mode); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}
