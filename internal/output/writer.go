package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirseerhq/kbsplit/internal/entity"
	kberrors "github.com/sirseerhq/kbsplit/internal/errors"
)

const (
	// Header opens every output document.
	Header = "<?xml version='1.0' encoding='UTF-8'?>\n<knowledge_base>\n"

	// Footer closes every output document.
	Footer = "</knowledge_base>\n"
)

var errClosed = errors.New("writer is closed")

// Writer handles writing a knowledge-base document to a file or io.Writer.
type Writer struct {
	mu        sync.Mutex
	output    *bufio.Writer
	started   bool
	closed    bool
	count     int
	bytes     int64
	closeFunc func() error
}

// NewWriter creates a new document writer that writes to the specified output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		output: bufio.NewWriter(w),
	}
}

// NewFileWriter creates a new document writer that writes to a file,
// truncating it if it already exists.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w: %w", filename, kberrors.ErrFileAccess, err)
	}

	return &Writer{
		output:    bufio.NewWriter(file),
		closeFunc: file.Close,
	}, nil
}

// Write appends one entity to the document.
func (w *Writer) Write(e entity.Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errClosed
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	for _, line := range e {
		if err := w.writeString(line); err != nil {
			return fmt.Errorf("failed to write entity: %w", err)
		}
	}

	w.count++
	return nil
}

// Count returns the number of entities written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Bytes returns the number of bytes written so far, including the header
// and, after Close, the footer.
func (w *Writer) Bytes() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bytes
}

// Close writes the footer, flushes buffered output and closes the
// underlying file if the writer owns one. The file is closed even when
// finishing the document fails.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	err := w.writeHeader()
	if err == nil {
		err = w.writeString(Footer)
	}
	if err == nil {
		if flushErr := w.output.Flush(); flushErr != nil {
			err = fmt.Errorf("%w: %w", kberrors.ErrFileAccess, flushErr)
		}
	}

	if w.closeFunc != nil {
		if closeErr := w.closeFunc(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w: %w", kberrors.ErrFileAccess, closeErr)
		}
	}
	return err
}

// writeHeader emits the header once. Callers hold w.mu.
func (w *Writer) writeHeader() error {
	if w.started {
		return nil
	}
	w.started = true
	if err := w.writeString(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

func (w *Writer) writeString(s string) error {
	n, err := w.output.WriteString(s)
	w.bytes += int64(n)
	if err != nil {
		return fmt.Errorf("%w: %w", kberrors.ErrFileAccess, err)
	}
	return nil
}

// Stats reports what a finished document holds.
type Stats struct {
	Entities int
	Bytes    int64
}

// WriteAll writes entities to w in order and closes it. w is closed even
// when a write fails.
func WriteAll(w EntityWriter, entities []entity.Entity) error {
	for _, e := range entities {
		if err := w.Write(e); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}

// WriteFile writes entities as a complete document to path. A failure part
// way through leaves a truncated file behind.
func WriteFile(path string, entities []entity.Entity) (Stats, error) {
	w, err := NewFileWriter(path)
	if err != nil {
		return Stats{}, err
	}

	err = WriteAll(w, entities)
	stats := Stats{Entities: w.Count(), Bytes: w.Bytes()}
	if err != nil {
		return stats, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return stats, nil
}
