package catalog

import (
	"errors"
	"testing"
)

func TestAddManual(t *testing.T) {
	s := NewStore()

	rec, err := s.AddManual(Fields{Name: "  Shield  ", Region: "demacia", Lore: "l"})
	if err != nil {
		t.Fatalf("AddManual() error = %v", err)
	}

	if rec.Name != "Shield" {
		t.Errorf("Name = %q, want %q", rec.Name, "Shield")
	}
	if rec.Region != "Demacia" {
		t.Errorf("Region = %q, want %q", rec.Region, "Demacia")
	}
	if rec.Origin != OriginManual {
		t.Errorf("Origin = %q, want %q", rec.Origin, OriginManual)
	}
	if rec.SourceID != ManualSourceID {
		t.Errorf("SourceID = %q, want %q", rec.SourceID, ManualSourceID)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestAddManual_EmptyRegionDefaults(t *testing.T) {
	s := NewStore()

	rec, err := s.AddManual(Fields{Name: "Shield"})
	if err != nil {
		t.Fatalf("AddManual() error = %v", err)
	}
	if rec.Region != UnknownRegion {
		t.Errorf("Region = %q, want %q", rec.Region, UnknownRegion)
	}
}

func TestAddManual_EmptyNameRejected(t *testing.T) {
	s := NewStore()

	for _, name := range []string{"", "   ", "\t"} {
		_, err := s.AddManual(Fields{Name: name})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("AddManual(name=%q) error = %v, want ValidationError", name, err)
		}
	}

	if s.Len() != 0 {
		t.Errorf("Len() = %d after rejected adds, want 0", s.Len())
	}
}

func TestMergeBatch(t *testing.T) {
	s := NewStore()

	rows := []map[string]string{
		{"Item Name": "Sword", "Region": "north wind"},
		{"Item Name": "Axe"},
	}

	batch, err := s.MergeBatch(rows, "a.csv")
	if err != nil {
		t.Fatalf("MergeBatch() error = %v", err)
	}

	if batch.FileName != "a.csv" {
		t.Errorf("FileName = %q, want %q", batch.FileName, "a.csv")
	}
	if batch.RecordCount != 2 {
		t.Errorf("RecordCount = %d, want 2", batch.RecordCount)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	recs := s.Snapshot()
	if recs[0].Name != "Sword" || recs[0].Region != "North Wind" {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[0].SourceID != batch.SourceID || recs[0].Origin != OriginCSV {
		t.Errorf("provenance = (%q, %q), want (%q, csv)", recs[0].SourceID, recs[0].Origin, batch.SourceID)
	}
	if recs[0].ID != CSVRecordID(batch.SourceID, 0) || recs[1].ID != CSVRecordID(batch.SourceID, 1) {
		t.Errorf("ids = %q, %q not derived from batch", recs[0].ID, recs[1].ID)
	}
}

func TestMergeBatch_DuplicateFileName(t *testing.T) {
	s := NewStore()
	rows := []map[string]string{{"Item Name": "Sword"}}

	if _, err := s.MergeBatch(rows, "items.csv"); err != nil {
		t.Fatalf("first MergeBatch() error = %v", err)
	}
	before := s.Len()

	_, err := s.MergeBatch(rows, "items.csv")
	var derr *DuplicateSourceError
	if !errors.As(err, &derr) {
		t.Fatalf("second MergeBatch() error = %v, want DuplicateSourceError", err)
	}

	if s.Len() != before {
		t.Errorf("Len() = %d after rejected merge, want %d", s.Len(), before)
	}
	if len(s.Batches()) != 1 {
		t.Errorf("Batches() = %d, want 1", len(s.Batches()))
	}
}

func TestMergeBatch_FileNameMatchIsCaseSensitive(t *testing.T) {
	s := NewStore()
	rows := []map[string]string{{"Item Name": "Sword"}}

	if _, err := s.MergeBatch(rows, "items.csv"); err != nil {
		t.Fatalf("MergeBatch() error = %v", err)
	}
	if _, err := s.MergeBatch(rows, "Items.csv"); err != nil {
		t.Errorf("MergeBatch() with different case error = %v, want nil", err)
	}
}

func TestIDUniqueness(t *testing.T) {
	s := NewStore()

	for i := 0; i < 50; i++ {
		if _, err := s.AddManual(Fields{Name: "Item"}); err != nil {
			t.Fatalf("AddManual() error = %v", err)
		}
	}
	if _, err := s.MergeBatch([]map[string]string{{"name": "a"}, {"name": "b"}}, "a.csv"); err != nil {
		t.Fatalf("MergeBatch() error = %v", err)
	}
	if _, err := s.MergeBatch([]map[string]string{{"name": "c"}}, "b.csv"); err != nil {
		t.Fatalf("MergeBatch() error = %v", err)
	}

	seen := make(map[string]bool)
	for _, r := range s.Snapshot() {
		if seen[r.ID] {
			t.Fatalf("duplicate id %q", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestEdit(t *testing.T) {
	s := NewStore()
	orig, _ := s.AddManual(Fields{Name: "Sword", Region: "Ionia"})

	got, err := s.Edit(orig.ID, Fields{
		Name:            "Longsword",
		Region:          "shadow isles",
		Lore:            "new lore",
		DescriptionLore: "new desc",
		Image:           "http://x/l.png",
	})
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	if got.Name != "Longsword" {
		t.Errorf("Name = %q, want %q", got.Name, "Longsword")
	}
	if got.Region != "Shadow Isles" {
		t.Errorf("Region = %q, want %q", got.Region, "Shadow Isles")
	}
	// Identity and provenance are immutable.
	if got.ID != orig.ID || got.SourceID != orig.SourceID || got.Origin != orig.Origin {
		t.Errorf("identity changed: %+v", got)
	}
}

func TestEdit_EmptyRegionDefaults(t *testing.T) {
	s := NewStore()
	orig, _ := s.AddManual(Fields{Name: "Sword", Region: "Ionia"})

	got, err := s.Edit(orig.ID, Fields{Name: "Sword", Region: "  "})
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if got.Region != UnknownRegion {
		t.Errorf("Region = %q, want %q", got.Region, UnknownRegion)
	}
}

func TestEdit_NotFound(t *testing.T) {
	s := NewStore()

	_, err := s.Edit("missing", Fields{Name: "x"})
	var nerr *NotFoundError
	if !errors.As(err, &nerr) {
		t.Errorf("Edit() error = %v, want NotFoundError", err)
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	rec, _ := s.AddManual(Fields{Name: "Sword"})

	if err := s.Remove(rec.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	var nerr *NotFoundError
	if err := s.Remove(rec.ID); !errors.As(err, &nerr) {
		t.Errorf("second Remove() error = %v, want NotFoundError", err)
	}
}

func TestRemove_LeavesBatchCountStale(t *testing.T) {
	s := NewStore()
	batch, _ := s.MergeBatch([]map[string]string{{"name": "a"}, {"name": "b"}}, "a.csv")

	if err := s.Remove(CSVRecordID(batch.SourceID, 0)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	// RecordCount is an ingestion-time snapshot.
	if got := s.Batches()[0].RecordCount; got != 2 {
		t.Errorf("RecordCount = %d, want 2", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestRemoveBatch(t *testing.T) {
	s := NewStore()
	batchA, _ := s.MergeBatch([]map[string]string{{"name": "a"}, {"name": "b"}}, "a.csv")
	batchB, _ := s.MergeBatch([]map[string]string{{"name": "c"}}, "b.csv")
	s.AddManual(Fields{Name: "manual"})

	if err := s.RemoveBatch(batchA.SourceID); err != nil {
		t.Fatalf("RemoveBatch() error = %v", err)
	}

	for _, r := range s.Snapshot() {
		if r.SourceID == batchA.SourceID {
			t.Errorf("record %q still references removed batch", r.ID)
		}
	}
	batches := s.Batches()
	if len(batches) != 1 || batches[0].SourceID != batchB.SourceID {
		t.Errorf("Batches() = %+v, want only %q", batches, batchB.SourceID)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestRemoveBatch_NotFound(t *testing.T) {
	s := NewStore()

	var nerr *NotFoundError
	if err := s.RemoveBatch("missing"); !errors.As(err, &nerr) {
		t.Errorf("RemoveBatch() error = %v, want NotFoundError", err)
	}
}

func TestRemoveManual(t *testing.T) {
	s := NewStore()
	batch, _ := s.MergeBatch([]map[string]string{{"name": "a"}}, "a.csv")
	s.AddManual(Fields{Name: "m1"})
	s.AddManual(Fields{Name: "m2"})

	s.RemoveManual()

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if got := s.Snapshot()[0]; got.Origin != OriginCSV {
		t.Errorf("surviving record origin = %q, want csv", got.Origin)
	}
	if len(s.Batches()) != 1 || s.Batches()[0].SourceID != batch.SourceID {
		t.Errorf("batches affected by RemoveManual: %+v", s.Batches())
	}
}

func TestRegions(t *testing.T) {
	s := NewStore()
	s.MergeBatch([]map[string]string{
		{"name": "a", "Region": "noxus"},
		{"name": "b", "Region": "demacia"},
		{"name": "c", "Region": "Noxus"},
	}, "a.csv")
	s.AddManual(Fields{Name: "m"}) // region Unknown

	got := s.Regions()
	want := []string{"Demacia", "Noxus", "Unknown"}
	if len(got) != len(want) {
		t.Fatalf("Regions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Regions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRestore(t *testing.T) {
	s := NewStore()
	records := []Record{{ID: "x-0", Name: "Sword", Region: "Ionia", SourceID: "x", Origin: OriginCSV}}
	batches := []SourceBatch{{SourceID: "x", FileName: "a.csv", RecordCount: 1}}

	s.Restore(records, batches)

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if len(s.Batches()) != 1 {
		t.Errorf("Batches() = %d, want 1", len(s.Batches()))
	}
}
