package fsops

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxHashSize bounds the files we checksum (1 MiB).
const maxHashSize = 1024 * 1024

// Metadata returns the metadata entry for a validated path. The path
// must be absolute and inside the guarded root.
func (o *Ops) Metadata(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return Entry{}, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	rel, err := filepath.Rel(o.guard.Root(), path)
	if err != nil {
		return Entry{}, fmt.Errorf("cannot compute relative path for %s: %w", path, err)
	}

	created, accessed := fileTimes(info)

	entry := Entry{
		Name:        filepath.Base(path),
		Path:        filepath.ToSlash(rel),
		URI:         "file://" + path,
		Size:        info.Size(),
		SizeHuman:   FormatSize(info.Size()),
		Created:     created.Format(time.RFC3339),
		Modified:    info.ModTime().Format(time.RFC3339),
		Accessed:    accessed.Format(time.RFC3339),
		IsDirectory: info.IsDir(),
		MIMEType:    o.detectMIMEType(path, info),
	}

	if ext := filepath.Ext(path); ext != "" && !info.IsDir() {
		entry.Extension = strings.TrimPrefix(ext, ".")
	}

	if info.Mode().IsRegular() && info.Size() <= maxHashSize {
		if sum, err := hashFile(path); err == nil {
			entry.Hash = sum
		} else {
			o.logger.Warn("Failed to hash file", "path", path, "error", err)
		}
	}

	return entry, nil
}

// detectMIMEType resolves a MIME type from the extension first, then by
// sniffing the leading bytes, then the configured default.
func (o *Ops) detectMIMEType(path string, info os.FileInfo) string {
	if info.IsDir() {
		return "inode/directory"
	}

	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		if idx := strings.Index(byExt, ";"); idx >= 0 {
			byExt = byExt[:idx]
		}
		return strings.TrimSpace(byExt)
	}

	if info.Mode().IsRegular() {
		if sniffed := sniffMIMEType(path); sniffed != "" {
			return sniffed
		}
	}

	return o.opts.DefaultMIMEType
}

func sniffMIMEType(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return ""
	}

	detected := http.DetectContentType(buf[:n])
	if idx := strings.Index(detected, ";"); idx >= 0 {
		detected = detected[:idx]
	}
	return strings.TrimSpace(detected)
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FormatSize renders a byte count in a human-readable form.
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", value)
}
