// Package interfaces exposes the dataset pipeline over HTTP.
package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"equipment-cloud/internal/audit"
	"equipment-cloud/internal/auth"
	"equipment-cloud/internal/dataset/application"
	dataset "equipment-cloud/internal/dataset/domain"
	"equipment-cloud/internal/observability/metrics"
	"equipment-cloud/internal/report"
)

// maxUploadBytes caps the multipart form kept in memory per upload.
const maxUploadBytes = 32 << 20

// DatasetHandler handles dataset APIs under /api/datasets/.
type DatasetHandler struct {
	ingestion   *application.IngestionService
	datasets    *application.DatasetService
	reportCfg   report.Config
	auditLogger audit.Logger
}

// NewDatasetHandler constructs a handler.
func NewDatasetHandler(ingestion *application.IngestionService, datasets *application.DatasetService, reportCfg report.Config, auditLogger audit.Logger) (*DatasetHandler, error) {
	if ingestion == nil {
		return nil, errors.New("dataset handler: nil ingestion service")
	}
	if datasets == nil {
		return nil, errors.New("dataset handler: nil dataset service")
	}
	return &DatasetHandler{
		ingestion:   ingestion,
		datasets:    datasets,
		reportCfg:   reportCfg,
		auditLogger: auditLogger,
	}, nil
}

// ServeHTTP routes dataset requests.
func (h *DatasetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	owner := auth.UserFromContext(r.Context())
	if owner == "" {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/datasets"), "/")
	switch {
	case rest == "upload" && r.Method == http.MethodPost:
		h.handleUpload(w, r, owner)
	case rest == "history" && r.Method == http.MethodGet:
		h.handleHistory(w, r, owner)
	default:
		parts := strings.Split(rest, "/")
		if len(parts) == 1 && parts[0] != "" && r.Method == http.MethodGet {
			h.handleGet(w, r, owner, parts[0])
			return
		}
		if len(parts) == 2 && r.Method == http.MethodGet {
			switch parts[1] {
			case "download_pdf":
				h.handleDownloadPDF(w, r, owner, parts[0])
				return
			case "download_xlsx":
				h.handleDownloadXLSX(w, r, owner, parts[0])
				return
			}
		}
		respondError(w, http.StatusNotFound, "not found")
	}
}

func (h *DatasetHandler) handleUpload(w http.ResponseWriter, r *http.Request, owner string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveUpload(result, time.Since(start))
	}()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		result = metrics.ResultError
		metrics.IncUploadError("multipart")
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		result = metrics.ResultError
		metrics.IncUploadError("multipart")
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		result = metrics.ResultError
		metrics.IncUploadError("extension")
		respondError(w, http.StatusBadRequest, "File must be a CSV")
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		result = metrics.ResultError
		metrics.IncUploadError("read")
		respondError(w, http.StatusBadRequest, "Error reading file")
		return
	}

	ds, err := h.ingestion.Ingest(r.Context(), owner, header.Filename, raw)
	if err != nil {
		result = metrics.ResultError
		metrics.IncUploadError(uploadErrorReason(err))
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message":    "File uploaded successfully",
		"dataset_id": ds.ID,
		"summary":    summaryPayload(ds.Summary),
		"data":       ds.Records,
	})
	h.logAudit(r, owner, ds.ID, "dataset.upload", map[string]any{
		"filename":    ds.Filename,
		"total_count": ds.Summary.TotalCount,
	})
}

func (h *DatasetHandler) handleHistory(w http.ResponseWriter, r *http.Request, owner string) {
	metrics.IncHistoryRequest()
	entries, err := h.datasets.History(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

func (h *DatasetHandler) handleGet(w http.ResponseWriter, r *http.Request, owner, id string) {
	ds, err := h.datasets.Get(r.Context(), owner, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":          ds.ID,
		"filename":    ds.Filename,
		"uploaded_at": ds.UploadedAt,
		"summary":     summaryPayload(ds.Summary),
		"data":        ds.Records,
	})
}

func (h *DatasetHandler) handleDownloadPDF(w http.ResponseWriter, r *http.Request, owner, id string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("pdf", result, time.Since(start))
	}()

	ds, err := h.datasets.Get(r.Context(), owner, id)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := report.BuildDatasetPDF(ds, h.reportCfg)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report_"+ds.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, owner, ds.ID, "dataset.export", map[string]any{"format": "pdf"})
}

func (h *DatasetHandler) handleDownloadXLSX(w http.ResponseWriter, r *http.Request, owner, id string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("xlsx", result, time.Since(start))
	}()

	ds, err := h.datasets.Get(r.Context(), owner, id)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := report.BuildDatasetXLSX(ds)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report_"+ds.ID+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, owner, ds.ID, "dataset.export", map[string]any{"format": "xlsx"})
}

func (h *DatasetHandler) logAudit(r *http.Request, actor, datasetID, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        actor,
		Action:       action,
		ResourceType: "dataset",
		ResourceID:   datasetID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

// summaryPayload shapes a summary for JSON responses. Averages are
// rounded to two decimals in responses; storage keeps full precision.
func summaryPayload(summary dataset.SummaryStatistics) map[string]any {
	return map[string]any{
		"total_count":       summary.TotalCount,
		"avg_flowrate":      round2(summary.AvgFlowrate),
		"avg_pressure":      round2(summary.AvgPressure),
		"avg_temperature":   round2(summary.AvgTemperature),
		"type_distribution": summary.TypeDistribution,
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func uploadErrorReason(err error) string {
	var validation *dataset.ValidationError
	switch {
	case errors.As(err, &validation):
		return "validation"
	case errors.Is(err, dataset.ErrEmptyDataset):
		return "empty"
	default:
		return "storage"
	}
}

// respondServiceError maps pipeline errors onto status codes. Errors
// are always a JSON {error} payload, including on download routes.
func respondServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var validation *dataset.ValidationError
	var renderErr *report.RenderError
	var storageErr *dataset.StorageError
	switch {
	case errors.As(err, &validation), errors.Is(err, dataset.ErrEmptyDataset):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, dataset.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, dataset.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.As(err, &storageErr), errors.As(err, &renderErr):
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
