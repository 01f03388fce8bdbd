package audit

import (
	"time"
)

// Entry is one processed-receipt record in the audit trail.
type Entry struct {
	// Id — identifier assigned to the processed receipt.
	Id string `json:"id"`
	// Points — total computed for the receipt.
	Points int `json:"points"`
	// Retailer — retailer name from the receipt, empty when absent.
	Retailer string `json:"retailer"`
	// ProcessedAt — time the receipt was processed.
	ProcessedAt time.Time `json:"processedAt"`
}

// Recorder keeps a trail of processed receipts. Record is called once per
// successfully processed receipt; Recent returns the last entries still held
// in memory, oldest first.
type Recorder interface {
	Record(id string, points int, retailer string)
	Recent() []Entry
	Close()
}

// NopRecorder discards every record. Used when the audit trail is disabled
// in configuration.
type NopRecorder struct{}

// Record discards the entry.
func (NopRecorder) Record(id string, points int, retailer string) {}

// Recent always returns nil.
func (NopRecorder) Recent() []Entry { return nil }

// Close does nothing.
func (NopRecorder) Close() {}
