package audit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"tally/internal/utils"
)

// jsonlHandler is a slog handler that writes one flat JSON object per record
// (JSONL), with the time in "2006-01-02 15:04:05" format and no level field.
// All attributes land at the top level of the object.
type jsonlHandler struct {
	opts slog.HandlerOptions
	out  io.Writer
}

// NewJsonlHandler creates a handler writing JSONL records to out.
// opts may be nil.
func NewJsonlHandler(out io.Writer, opts *slog.HandlerOptions) *jsonlHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &jsonlHandler{
		opts: *opts,
		out:  out,
	}
}

// Handle serializes the record to a single JSON line.
func (h *jsonlHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]interface{})

	attrs["time"] = r.Time.Format("2006-01-02 15:04:05")

	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "" && a.Value.Any() != nil {
			attrs[a.Key] = a.Value.Any()
		}

		return true
	})

	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	_, err = h.out.Write(append(data, '\n'))
	return err
}

// WithAttrs is not supported
func (h *jsonlHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	panic("WithAttrs is not supported by jsonlHandler")
}

// WithGroup is not supported
func (h *jsonlHandler) WithGroup(name string) slog.Handler {
	panic("WithGroup is not supported by jsonlHandler")
}

// Enabled always returns true — every record is written.
func (h *jsonlHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// JsonRecorder is a thread-safe audit trail of processed receipts. Every
// entry is appended to a JSONL file with rotation and compression via
// lumberjack, and also kept in an in-memory ring of the freshest entries
// for quick inspection.
type JsonRecorder struct {
	lumberjack *lumberjack.Logger
	logger     *slog.Logger
	recent     *utils.RingBuffer[Entry]
}

// Record appends a processed receipt to the trail. The write is a single
// JSON object with "id", "points" and "retailer" fields; thread safety comes
// from lumberjack and slog.
func (r *JsonRecorder) Record(id string, points int, retailer string) {
	r.logger.Info("", "id", id, "points", points, "retailer", retailer)
	r.recent.Push(Entry{
		Id:          id,
		Points:      points,
		Retailer:    retailer,
		ProcessedAt: time.Now(),
	})
}

// Recent returns a copy of the freshest entries, oldest first.
func (r *JsonRecorder) Recent() []Entry {
	return r.recent.ToSlice()
}

// Close closes the underlying file. Should be called on shutdown so the last
// file is flushed and rotated.
func (r *JsonRecorder) Close() {
	r.lumberjack.Close()
}

// NewJsonRecorder creates a file-backed audit recorder.
// Parameters:
//   - file: path of the JSONL file to append to
//   - maxSize: maximum file size in MB before rotation
//   - maxBackups: number of rotated files to keep
//   - recentSize: capacity of the in-memory ring of recent entries
//
// Returns a pointer to an initialized recorder.
func NewJsonRecorder(file string, maxSize, maxBackups, recentSize int) *JsonRecorder {
	recorder := JsonRecorder{
		recent: utils.NewRingBuffer[Entry](recentSize),
	}
	recorder.lumberjack = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}

	handler := NewJsonlHandler(recorder.lumberjack, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	recorder.logger = slog.New(handler)
	return &recorder
}
