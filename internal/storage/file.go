package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// lineFile is a buffered, truncating output file.
type lineFile struct {
	file   *os.File
	writer *bufio.Writer
}

func openLineFile(path string) (*lineFile, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return &lineFile{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (f *lineFile) writeLine(line []byte) error {
	if _, err := f.writer.Write(line); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := f.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

func (f *lineFile) flush() error {
	if err := f.writer.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func (f *lineFile) close() error {
	if f == nil {
		return nil
	}
	if err := f.writer.Flush(); err != nil {
		f.file.Close()
		return err
	}
	return f.file.Close()
}
