package storage

import (
	"encoding/json"
	"fmt"

	"rewardscope/internal/model"
)

// RejectWriter writes rejected lines as JSON lines.
type RejectWriter struct {
	out *lineFile
}

func NewRejectWriter(path string) (*RejectWriter, error) {
	out, err := openLineFile(path)
	if err != nil {
		return nil, err
	}
	return &RejectWriter{out: out}, nil
}

func (w *RejectWriter) WriteReject(reject model.RejectedLine) error {
	line, err := json.Marshal(reject)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return w.out.writeLine(line)
}

func (w *RejectWriter) Close() error {
	if w == nil {
		return nil
	}
	return w.out.close()
}
