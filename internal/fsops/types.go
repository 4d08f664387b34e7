package fsops

import (
	"errors"

	"localmcp/internal/logging"
	"localmcp/internal/pathguard"
)

// Outcome errors surfaced by the enumeration and read operations. These
// are distinct from pathguard rejections: the path was permitted, but
// the filesystem object is missing or of the wrong kind.
var (
	ErrNotFound  = errors.New("path does not exist")
	ErrWrongType = errors.New("path is not the expected type")
)

// Entry describes one file or directory in a listing or search result.
// Paths are relative to the served root; URIs use the file:// scheme.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	URI         string `json:"uri"`
	Size        int64  `json:"size"`
	SizeHuman   string `json:"sizeHuman"`
	Created     string `json:"created"`
	Modified    string `json:"modified"`
	Accessed    string `json:"accessed"`
	IsDirectory bool   `json:"isDirectory"`
	MIMEType    string `json:"mimeType"`
	Extension   string `json:"extension,omitempty"`
	Hash        string `json:"hash,omitempty"`

	// Content is only populated by searches with include_content.
	Content string `json:"content,omitempty"`
}

// ReadResult is the outcome of a bounded read. TooLarge and Binary are
// recognized outcomes rather than errors; Content carries the decoded
// text or a descriptive placeholder.
type ReadResult struct {
	Content  string `json:"content"`
	TooLarge bool   `json:"tooLarge"`
	Binary   bool   `json:"binary"`
	Encoding string `json:"encoding,omitempty"`
}

// Options carries the limits and defaults the operations honor.
type Options struct {
	// MaxFileSize is the read ceiling in bytes.
	MaxFileSize int64

	// MaxListResults caps directory listings.
	MaxListResults int

	// MaxSearchResults caps search results.
	MaxSearchResults int

	// DefaultMIMEType is used when detection fails.
	DefaultMIMEType string
}

// Ops bundles the filesystem operations over one guarded root.
type Ops struct {
	guard  *pathguard.Guard
	opts   Options
	logger *logging.AppLogger
}

// New creates an Ops over the given guard. Zero/empty option fields get
// the same defaults the file server config uses.
func New(guard *pathguard.Guard, opts Options, logger *logging.AppLogger) *Ops {
	if logger == nil {
		logger = logging.GetDefault()
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = 10 * 1024 * 1024
	}
	if opts.MaxListResults <= 0 {
		opts.MaxListResults = 1000
	}
	if opts.MaxSearchResults <= 0 {
		opts.MaxSearchResults = 100
	}
	if opts.DefaultMIMEType == "" {
		opts.DefaultMIMEType = "application/octet-stream"
	}
	return &Ops{guard: guard, opts: opts, logger: logger}
}

// Guard exposes the underlying path guard for callers that need to
// validate candidates themselves.
func (o *Ops) Guard() *pathguard.Guard {
	return o.guard
}
