package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
)

// CopyFileVerified streams src to a new file at dst with SHA256 + size
// integrity verification. dst must not exist; it is created with the source
// permissions and removed again if the copy fails or does not verify. It
// returns the number of bytes written.
func CopyFileVerified(src, dst string) (written int64, err error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	if !srcInfo.Mode().IsRegular() {
		return 0, fmt.Errorf("copy source %q: not a regular file", src)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = out.Close()
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err = io.Copy(multi, tee)
	if err != nil {
		return written, err
	}
	if err = out.Close(); err != nil {
		return written, err
	}

	if written != srcSize {
		err = fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
		return written, err
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		err = errors.New("copy hash mismatch: file corrupted during copy")
		return written, err
	}

	return written, nil
}
