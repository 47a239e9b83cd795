package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/loredex/loredex/internal/catalog"
	"github.com/loredex/loredex/internal/config"
	"github.com/loredex/loredex/internal/logging"
)

// regionAll is the filter sentinel meaning "no region filter". An empty
// parameter means the same thing.
const regionAll = "all"

// queryResponse is the body of GET /api/records.
type queryResponse struct {
	Records []catalog.Record `json:"records"`
	Total   int              `json:"total"`
}

// sourcesResponse is the body of GET /api/sources. ManualCount is live,
// batch RecordCounts are ingestion-time snapshots.
type sourcesResponse struct {
	Batches     []catalog.SourceBatch `json:"batches"`
	ManualCount int                   `json:"manualCount"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ok")
}

// handleQueryRecords serves the filtered, sorted view.
func (s *Server) handleQueryRecords(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	region := r.URL.Query().Get("region")
	if region == regionAll {
		region = ""
	}
	order := catalog.SortOrder(r.URL.Query().Get("sort"))

	records := catalog.Query(s.pipeline.Store().Snapshot(), search, region, order)
	respondJSON(w, http.StatusOK, queryResponse{Records: records, Total: len(records)})
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.pipeline.Store().Regions())
}

func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	rec, err := s.pipeline.AddManual(r.Context(), fields)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("record added", "id", rec.ID)
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleEditRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fields, err := decodeFields(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	rec, err := s.pipeline.Edit(r.Context(), id, fields)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.pipeline.Remove(r.Context(), id); err != nil {
		respondPipelineError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSources(w http.ResponseWriter, _ *http.Request) {
	store := s.pipeline.Store()
	resp := sourcesResponse{
		Batches:     store.Batches(),
		ManualCount: store.ManualCount(),
	}
	if resp.Batches == nil {
		resp.Batches = []catalog.SourceBatch{}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveManual(w http.ResponseWriter, r *http.Request) {
	s.pipeline.RemoveManual(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveBatch(w http.ResponseWriter, r *http.Request) {
	sourceID := chi.URLParam(r, "sourceID")

	if err := s.pipeline.RemoveBatch(r.Context(), sourceID); err != nil {
		respondPipelineError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUpload ingests one multipart file. The request body is capped a
// little above the configured file limit so oversized uploads fail with the
// mapped error instead of a connection reset.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, r, fmt.Errorf("parse multipart form: %w", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errors.New("no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, fmt.Errorf("read file: %w", err), http.StatusBadRequest)
		return
	}

	delim := config.Delimiter(s.cfg.Import.UploadDelimiter)
	batch, err := s.pipeline.Upload(r.Context(), header.Filename, data, delim)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, batch)
}

// handleExport streams the full collection as CSV, ignoring any view state.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	csv, err := s.pipeline.Export()
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="exported_items.csv"`)
	w.Write([]byte(csv))
}

// handleTemplate serves a header-only CSV in the canonical column set.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	csv, err := s.pipeline.Template()
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="import_template.csv"`)
	w.Write([]byte(csv))
}

func decodeFields(r *http.Request) (catalog.Fields, error) {
	var fields catalog.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return catalog.Fields{}, fmt.Errorf("decode body: %w", err)
	}
	return fields, nil
}
