// Package pipeline orchestrates every write to the collection store: file
// ingestion (bootstrap and upload), manual record commands and export. Each
// mutation runs to completion against the store and is then persisted, so
// the durable slot always trails the store by at most one in-flight save.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/loredex/loredex/internal/catalog"
	"github.com/loredex/loredex/internal/persist"
	"github.com/loredex/loredex/internal/tabular"
)

// ExportColumns is the canonical column set, in export order.
var ExportColumns = []string{"Item Name", "Region", "Lore", "DescriptionLore", "ImageURL"}

// FileTooLargeError reports an upload exceeding the configured size limit.
type FileTooLargeError struct {
	Size, Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is %d bytes, limit is %d", e.Size, e.Limit)
}

// EmptyFileError reports an upload with no data rows.
type EmptyFileError struct{}

func (e *EmptyFileError) Error() string {
	return "file has no data rows"
}

// Pipeline owns the store plus its persistence and is the only writer the
// rest of the application talks to.
type Pipeline struct {
	store       *catalog.Store
	adapter     *persist.Adapter
	maxFileSize int64
}

// New wires a pipeline over the given store and persistence adapter.
// maxFileSize of zero disables the upload size limit.
func New(store *catalog.Store, adapter *persist.Adapter, maxFileSize int64) *Pipeline {
	return &Pipeline{
		store:       store,
		adapter:     adapter,
		maxFileSize: maxFileSize,
	}
}

// Store exposes the underlying store for read-only consumers (query engine,
// region set, batch listing).
func (p *Pipeline) Store() *catalog.Store {
	return p.store
}

// Upload ingests one user-supplied file: size check, parse, merge, persist.
// Parse failures and duplicate file names reject the whole batch with the
// store untouched; there is no partial ingestion.
func (p *Pipeline) Upload(ctx context.Context, fileName string, data []byte, delimiter rune) (catalog.SourceBatch, error) {
	if p.maxFileSize > 0 && int64(len(data)) > p.maxFileSize {
		return catalog.SourceBatch{}, &FileTooLargeError{Size: int64(len(data)), Limit: p.maxFileSize}
	}

	rows, err := tabular.Parse(data, tabular.Options{Delimiter: delimiter, HasHeader: true})
	if err != nil {
		return catalog.SourceBatch{}, err
	}
	if len(rows) == 0 {
		return catalog.SourceBatch{}, &EmptyFileError{}
	}

	rawRows := make([]map[string]string, len(rows))
	for i, r := range rows {
		rawRows[i] = r
	}
	batch, err := p.store.MergeBatch(rawRows, fileName)
	if err != nil {
		return catalog.SourceBatch{}, err
	}

	p.save(ctx)
	slog.Info("batch merged",
		"file", fileName,
		"source_id", batch.SourceID,
		"records", batch.RecordCount,
	)
	return batch, nil
}

// AddManual creates a hand-authored record and persists.
func (p *Pipeline) AddManual(ctx context.Context, f catalog.Fields) (catalog.Record, error) {
	rec, err := p.store.AddManual(f)
	if err != nil {
		return catalog.Record{}, err
	}
	p.save(ctx)
	return rec, nil
}

// Edit overwrites a record's display fields and persists.
func (p *Pipeline) Edit(ctx context.Context, id string, f catalog.Fields) (catalog.Record, error) {
	rec, err := p.store.Edit(id, f)
	if err != nil {
		return catalog.Record{}, err
	}
	p.save(ctx)
	return rec, nil
}

// Remove deletes one record and persists.
func (p *Pipeline) Remove(ctx context.Context, id string) error {
	if err := p.store.Remove(id); err != nil {
		return err
	}
	p.save(ctx)
	return nil
}

// RemoveBatch deletes a batch with all its records and persists.
func (p *Pipeline) RemoveBatch(ctx context.Context, sourceID string) error {
	if err := p.store.RemoveBatch(sourceID); err != nil {
		return err
	}
	p.save(ctx)
	slog.Info("batch removed", "source_id", sourceID)
	return nil
}

// RemoveManual deletes every hand-authored record and persists.
func (p *Pipeline) RemoveManual(ctx context.Context) {
	p.store.RemoveManual()
	p.save(ctx)
}

// Export serializes the full collection into the canonical column set, in
// insertion order. Both origins are included, independent of any active
// filter or sort.
func (p *Pipeline) Export() (string, error) {
	records := p.store.Snapshot()

	rows := make([]tabular.Row, len(records))
	for i, r := range records {
		rows[i] = tabular.Row{
			"Item Name":       r.Name,
			"Region":          r.Region,
			"Lore":            r.Lore,
			"DescriptionLore": r.DescriptionLore,
			"ImageURL":        r.Image,
		}
	}

	return tabular.Serialize(rows, ExportColumns)
}

// Template returns a header-only CSV in the canonical column set, for users
// to fill in.
func (p *Pipeline) Template() (string, error) {
	return tabular.Serialize(nil, ExportColumns)
}

// Flush persists the current state, for shutdown. Unlike the per-mutation
// saves, the error is returned to the caller.
func (p *Pipeline) Flush(ctx context.Context) error {
	return p.adapter.Save(ctx, p.store)
}

// save persists after a committed mutation. The write already succeeded
// in memory, so a persistence failure is logged rather than unwound.
func (p *Pipeline) save(ctx context.Context) {
	if err := p.adapter.Save(ctx, p.store); err != nil {
		slog.Error("state save failed", "error", err)
	}
}
