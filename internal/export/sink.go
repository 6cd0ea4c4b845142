package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Sink receives a finished download and returns where it ended up.
type Sink interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

// Linker is implemented by sinks that can hand out a shareable URL for a
// saved location.
type Linker interface {
	Link(ctx context.Context, location string) (string, error)
}

// DirSink saves downloads into a local directory. Existing files are never
// overwritten: a clash gets a " (1)", " (2)"… suffix like a browser download.
type DirSink struct {
	Dir string
}

// Save streams r into a hidden temporary file in Dir and renames it into
// place once complete, so a failed download leaves nothing behind.
func (s DirSink) Save(ctx context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create download dir")
	}
	tmp := filepath.Join(dir, "."+uuid.NewString()+".part")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp)
	if _, err := io.Copy(f, contextReader{ctx: ctx, r: r}); err != nil {
		f.Close()
		return "", errors.Wrap(err, "write download")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "close download")
	}
	target, err := freeName(dir, safeName(name))
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp, target); err != nil {
		return "", errors.Wrap(err, "move download into place")
	}
	return target, nil
}

func freeName(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		} else if err != nil {
			return "", errors.Wrap(err, "check download name")
		}
	}
	return "", errors.Errorf("no free file name for %s in %s", name, dir)
}

// safeName drops path separators and characters Windows refuses in names.
func safeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "download"
	}
	return name
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
