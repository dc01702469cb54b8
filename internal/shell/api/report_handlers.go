package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/storekit/storefront/internal/core/domain"
	"github.com/storekit/storefront/internal/core/validation"
	"github.com/storekit/storefront/internal/shell/tasks"
)

// =============================================================================
// Report Handlers
// =============================================================================

// handleCreateReport validates the request, picks a name when none is given
// and enqueues the generation task. The CSV is written by the worker; the
// response only acknowledges the queued task.
func (h *Handler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateReportRequest(req.FirstDate, req.SecondDate, req.Name); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	name := req.Name
	if name == "" {
		name = domain.GenerateReportName(time.Now())
	}

	if _, err := h.store.GetReportByName(r.Context(), name); err == nil {
		h.writeError(w, http.StatusConflict, "report with this name already exists", "report_exists")
		return
	} else if !isNotFound(err) {
		h.logger.Error("failed to check report name", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to request report", "internal_error")
		return
	}

	if err := h.queue.EnqueueSummaryReport(r.Context(), name, req.FirstDate, req.SecondDate); err != nil {
		if errors.Is(err, tasks.ErrAlreadyQueued) {
			h.writeError(w, http.StatusConflict, "report with this name is already queued", "report_exists")
			return
		}
		h.logger.Error("failed to enqueue report task", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to request report", "internal_error")
		return
	}

	h.logger.Info("report task queued", "report", name)
	h.writeJSON(w, http.StatusAccepted, ReportAcceptedResponse{
		Name:   name,
		Status: "queued",
	})
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	report, err := h.store.GetReport(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "report not found", "report_not_found")
			return
		}
		h.logger.Error("failed to get report", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get report", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, reportToResponse(report))
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	list, err := h.store.ListReports(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list reports", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list reports", "internal_error")
		return
	}

	resp := ListReportsResponse{
		Reports: make([]ReportResponse, 0, len(list)),
		Total:   len(list),
		Limit:   opts.Limit,
		Offset:  opts.Offset,
	}
	for i := range list {
		resp.Reports = append(resp.Reports, reportToResponse(&list[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	report, err := h.store.GetReport(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "report not found", "report_not_found")
			return
		}
		h.logger.Error("failed to get report", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to download report", "internal_error")
		return
	}

	h.streamReport(w, report)
}

func (h *Handler) handleDownloadReportByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.writeError(w, http.StatusBadRequest, "name is required", "validation_error")
		return
	}

	report, err := h.store.GetReportByName(r.Context(), name)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "report not found", "report_not_found")
			return
		}
		h.logger.Error("failed to get report", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to download report", "internal_error")
		return
	}

	h.streamReport(w, report)
}

// streamReport serves the report's CSV file from the archive.
func (h *Handler) streamReport(w http.ResponseWriter, report *domain.SummaryReport) {
	file, err := h.archive.Open(report.FilePath)
	if err != nil {
		h.logger.Error("failed to open report file", "report", report.Name, "error", err)
		h.writeError(w, http.StatusNotFound, "report file not found", "report_file_missing")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(report.FilePath)+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, file); err != nil {
		h.logger.Error("failed to stream report file", "report", report.Name, "error", err)
	}
}
