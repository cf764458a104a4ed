package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/JonMunkholm/appdsizer/internal/license"
	"github.com/JonMunkholm/appdsizer/internal/logging"
	"github.com/JonMunkholm/appdsizer/internal/schema"
	"github.com/JonMunkholm/appdsizer/internal/sizing"
	"github.com/JonMunkholm/appdsizer/internal/thousandeyes"
	"github.com/JonMunkholm/appdsizer/internal/web/templates"
)

// maxJSONBody bounds the JSON request bodies of /api/calculate and
// /api/calculate-te.
const maxJSONBody = 1 << 20

// multipartMemory is the part of an upload kept in memory before
// spilling to disk.
const multipartMemory = 8 << 20

// CalculateResponse is the body of POST /api/calculate.
type CalculateResponse struct {
	Success       bool           `json:"success"`
	CalculationID string         `json:"calculation_id"`
	Result        license.Result `json:"result"`
}

// ParseResponse is the body of POST /api/parse-excel.
type ParseResponse struct {
	Success  bool             `json:"success"`
	FileName string           `json:"file_name"`
	Sheets   []string         `json:"sheets"`
	Data     ParsedData       `json:"data"`
	Warnings []schema.Warning `json:"warnings"`
}

// ParsedData holds the records extracted from a workbook.
type ParsedData struct {
	Inventory schema.Inventory        `json:"inventory"`
	Tests     []schema.MonitoringTest `json:"thousandeyes_tests"`
}

// TERequest is the body of POST /api/calculate-te.
type TERequest struct {
	Tests []schema.MonitoringTest `json:"thousandeyes_tests"`
}

// TEResponse is the body of POST /api/calculate-te.
type TEResponse struct {
	Success bool                `json:"success"`
	Result  thousandeyes.Result `json:"result"`
}

// SizeResponse is the body of POST /api/size.
type SizeResponse struct {
	Success bool `json:"success"`
	*sizing.Report
}

// TEHelpResponse is the body of GET /api/te-help.
type TEHelpResponse struct {
	TestTypes []thousandeyes.TestType `json:"test_types"`
	Help      thousandeyes.Help       `json:"help"`
	Limits    TELimits                `json:"limits"`
}

// TELimits are the accepted ranges of the test form.
type TELimits struct {
	MinInterval    int `json:"min_interval_minutes"`
	MaxInterval    int `json:"max_interval_minutes"`
	MinTimeout     int `json:"min_timeout_seconds"`
	MaxTimeout     int `json:"max_timeout_seconds"`
	DefaultTimeout int `json:"default_timeout_seconds"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, templates.Index())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"parses": s.service.Limiter().Status(),
	})
}

// handleCalculate sizes an inventory posted as JSON.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var inv schema.Inventory
	if err := decodeJSON(w, r, &inv); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	id := uuid.NewString()
	res := s.service.Calculate(inv)

	logging.WithFields(r.Context(), "calculation_id", id).Info("inventory sized",
		"records", inv.Len(),
		"apm_cores", res.APMCores,
		"warnings", len(res.Warnings),
	)

	if isHTMX(r) {
		s.render(w, r, http.StatusOK, templates.LicenseSummary(res))
		return
	}
	writeJSON(w, http.StatusOK, CalculateResponse{Success: true, CalculationID: id, Result: res})
}

// handleParseExcel extracts the records of an uploaded workbook without
// sizing them.
func (s *Server) handleParseExcel(w http.ResponseWriter, r *http.Request) {
	file, name, err := s.uploadedFile(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	defer file.Close()

	p, err := s.service.ParseWorkbook(r.Context(), file, name)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	warnings := p.Warnings
	if warnings == nil {
		warnings = []schema.Warning{}
	}
	writeJSON(w, http.StatusOK, ParseResponse{
		Success:  true,
		FileName: p.FileName,
		Sheets:   p.Sheets,
		Data:     ParsedData{Inventory: p.Inventory, Tests: p.Tests},
		Warnings: warnings,
	})
}

// handleCalculateTE meters ThousandEyes tests posted as JSON.
func (s *Server) handleCalculateTE(w http.ResponseWriter, r *http.Request) {
	var req TERequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	res := s.service.CalculateThousandEyes(req.Tests)

	if isHTMX(r) {
		s.render(w, r, http.StatusOK, templates.ThousandEyesSummary(res))
		return
	}
	writeJSON(w, http.StatusOK, TEResponse{Success: true, Result: res})
}

// handleSize extracts and sizes an uploaded workbook.
func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	file, name, err := s.uploadedFile(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	defer file.Close()

	rep, err := s.service.SizeWorkbook(r.Context(), file, name)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		s.render(w, r, http.StatusOK, templates.Report(rep.FileName, rep.License, rep.ThousandEyes, rep.Warnings))
		return
	}
	writeJSON(w, http.StatusOK, SizeResponse{Success: true, Report: rep})
}

func (s *Server) handleTEHelp(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TEHelpResponse{
		TestTypes: thousandeyes.Catalog(),
		Help:      thousandeyes.HelpTexts(),
		Limits: TELimits{
			MinInterval:    thousandeyes.MinInterval,
			MaxInterval:    thousandeyes.MaxInterval,
			MinTimeout:     thousandeyes.MinTimeout,
			MaxTimeout:     thousandeyes.MaxTimeout,
			DefaultTimeout: thousandeyes.DefaultTimeout,
		},
	})
}

// uploadedFile returns the "file" part of a multipart upload. The caller
// closes the file.
func (s *Server) uploadedFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return nil, "", fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, s.cfg.Upload.MaxFileSize)
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, "", errNoFile
		}
		return nil, "", fmt.Errorf("parse upload: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", errNoFile
	}
	return file, header.Filename, nil
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, maxErr.Limit)
		}
		return fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return nil
}

// render writes an HTML component.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("template render error", "error", err)
	}
}
