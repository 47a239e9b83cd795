package catalog

import (
	"sort"
	"strings"
	"sync"
)

// Store is the authoritative in-memory collection of records plus the
// provenance metadata of the batches that produced them. It owns all
// mutation; every other component reads snapshots.
//
// Records are kept in insertion order. That order is what export serializes,
// independent of whatever filter or sort the presentation layer has active.
//
// There is a single logical writer, but the HTTP layer reads concurrently,
// so an RWMutex guards the slices.
type Store struct {
	mu      sync.RWMutex
	records []Record
	batches []SourceBatch
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Restore replaces the store contents with previously persisted state.
// Intended for startup only, before any other operation runs.
func (s *Store) Restore(records []Record, batches []SourceBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]Record(nil), records...)
	s.batches = append([]SourceBatch(nil), batches...)
}

// AddManual constructs a record from the supplied fields with a fresh unique
// id, origin manual, appends it and returns it. The name is the one required
// field: empty after trimming is a ValidationError and the store is left
// unchanged.
func (s *Store) AddManual(f Fields) (Record, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Record{}, &ValidationError{Field: "name"}
	}

	region := strings.TrimSpace(f.Region)
	if region == "" {
		region = UnknownRegion
	}

	rec := Record{
		ID:              NewManualID(),
		Name:            name,
		Region:          TitleCase(region),
		Lore:            strings.TrimSpace(f.Lore),
		DescriptionLore: strings.TrimSpace(f.DescriptionLore),
		Image:           strings.TrimSpace(f.Image),
		SourceID:        ManualSourceID,
		Origin:          OriginManual,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec, nil
}

// MergeBatch normalizes every raw row under a fresh batch id and appends the
// resulting records along with the batch metadata. The whole batch is
// rejected with DuplicateSourceError if fileName matches an existing batch
// (case-sensitive exact match); nothing is merged in that case.
func (s *Store) MergeBatch(rawRows []map[string]string, fileName string) (SourceBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.batches {
		if b.FileName == fileName {
			return SourceBatch{}, &DuplicateSourceError{FileName: fileName}
		}
	}

	batch := SourceBatch{
		SourceID:    NewSourceID(),
		FileName:    fileName,
		RecordCount: len(rawRows),
	}

	for i, row := range rawRows {
		s.records = append(s.records, Normalize(row, batch.SourceID, i))
	}
	s.batches = append(s.batches, batch)

	return batch, nil
}

// Edit overwrites the display fields of the record with the given id. The
// region is re-normalized to title case and falls back to "Unknown" when
// cleared; id, source and origin are immutable.
func (s *Store) Edit(id string, f Fields) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}

		region := strings.TrimSpace(f.Region)
		if region == "" {
			region = UnknownRegion
		}

		s.records[i].Name = strings.TrimSpace(f.Name)
		s.records[i].Region = TitleCase(region)
		s.records[i].Lore = strings.TrimSpace(f.Lore)
		s.records[i].DescriptionLore = strings.TrimSpace(f.DescriptionLore)
		s.records[i].Image = strings.TrimSpace(f.Image)
		return s.records[i], nil
	}

	return Record{}, &NotFoundError{Kind: "record", ID: id}
}

// Remove deletes the record with the given id. The owning batch's
// RecordCount snapshot is deliberately left stale; it reflects the count at
// ingestion time, not the live count.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "record", ID: id}
}

// RemoveBatch deletes the batch and every record it produced as one step, so
// no orphaned provenance is ever observable.
func (s *Store) RemoveBatch(sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.batches {
		if s.batches[i].SourceID == sourceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Kind: "source batch", ID: sourceID}
	}

	s.batches = append(s.batches[:idx], s.batches[idx+1:]...)

	kept := s.records[:0]
	for _, r := range s.records {
		if r.SourceID != sourceID {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

// RemoveManual deletes every hand-authored record. Batches are unaffected;
// manual records have none.
func (s *Store) RemoveManual() {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, r := range s.records {
		if r.Origin != OriginManual {
			kept = append(kept, r)
		}
	}
	s.records = kept
}

// Snapshot returns a copy of all records in insertion order.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record(nil), s.records...)
}

// Batches returns a copy of all source batches in load order.
func (s *Store) Batches() []SourceBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SourceBatch(nil), s.batches...)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// ManualCount returns the number of hand-authored records.
func (s *Store) ManualCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.records {
		if r.Origin == OriginManual {
			n++
		}
	}
	return n
}

// Regions returns the distinct region values over all records, sorted
// lexicographically. The filter control is populated from this.
func (s *Store) Regions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.records))
	var regions []string
	for _, r := range s.records {
		if r.Region == "" {
			continue
		}
		if _, ok := seen[r.Region]; !ok {
			seen[r.Region] = struct{}{}
			regions = append(regions, r.Region)
		}
	}
	sort.Strings(regions)
	return regions
}
