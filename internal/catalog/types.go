package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Origin is the provenance class of a record, independent of its SourceID.
type Origin string

const (
	OriginCSV    Origin = "csv"
	OriginManual Origin = "manual"
)

// ManualSourceID is the SourceID shared by all hand-authored records.
// Manual records have no owning SourceBatch.
const ManualSourceID = "manual"

// Fallback values applied by the normalizer and by edits.
const (
	UnknownName   = "Unknown Item"
	UnknownRegion = "Unknown"
)

// Record is one canonical catalog entry. The shape is fixed; Edit overwrites
// the display fields in place but ID, SourceID and Origin never change after
// creation.
type Record struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Region          string `json:"region"`
	Lore            string `json:"lore"`
	DescriptionLore string `json:"descriptionLore"`
	Image           string `json:"image"`
	SourceID        string `json:"sourceId"`
	Origin          Origin `json:"origin"`
}

// SourceBatch is the metadata for one completed file ingestion.
//
// RecordCount is a snapshot taken at ingestion time. Deleting individual
// records afterwards does not update it; only removing the whole batch
// removes the count along with the batch.
type SourceBatch struct {
	SourceID    string `json:"sourceId"`
	FileName    string `json:"fileName"`
	RecordCount int    `json:"recordCount"`
}

// Fields carries the user-editable fields for AddManual and Edit.
type Fields struct {
	Name            string `json:"name"`
	Region          string `json:"region"`
	Lore            string `json:"lore"`
	DescriptionLore string `json:"descriptionLore"`
	Image           string `json:"image"`
}

// NewSourceID returns a fresh batch identifier: a millisecond timestamp plus
// a random token, so ids from the same instant cannot collide and csv record
// ids derived from (sourceID, rowIndex) stay stable for a given batch.
func NewSourceID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewManualID returns a fresh id for a hand-authored record.
func NewManualID() string {
	return ManualSourceID + "-" + uuid.NewString()
}

// CSVRecordID derives the id of a csv-origin record from its batch and row
// index. The derivation is deterministic: re-running the same source yields
// the same ids.
func CSVRecordID(sourceID string, rowIndex int) string {
	return fmt.Sprintf("%s-%d", sourceID, rowIndex)
}
