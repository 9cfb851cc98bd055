package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	docx2jats "github.com/alnah/go-docx2jats"
	"github.com/alnah/go-docx2jats/internal/version"
)

// Conversion directions, used as metric labels and log fields.
const (
	directionDocxToMarkdown = "docx-to-markdown"
	directionMarkdownToJATS = "markdown-to-jats"
	directionDocxToJATS     = "docx-to-jats"
)

// handleIndex serves the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, http.StatusOK, "", false)
}

// handleConvert converts an uploaded document and returns the result as an
// attachment. Direction is decided by file extension; the convert-to-jats
// checkbox chains DOCX through Markdown to JATS.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := s.saveUpload(r)
	if err != nil {
		s.renderForm(w, http.StatusBadRequest, err.Error(), true)
		return
	}
	defer cleanup()

	direction, outputName, err := resolveDirection(upload.filename, upload.toJATS)
	if err != nil {
		s.renderForm(w, http.StatusBadRequest, err.Error(), true)
		return
	}

	start := time.Now()
	output, err := s.convert(r, direction, upload.path)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.observeConversion(direction, "error", elapsed.Seconds())
		s.logger.Error("conversion failed",
			slog.String("direction", direction),
			slog.String("file", upload.filename),
			slog.Any("error", err))
		s.renderForm(w, statusFor(err), "Conversion failed: "+err.Error(), true)
		return
	}

	s.metrics.observeConversion(direction, "success", elapsed.Seconds())
	s.logger.Info("conversion complete",
		slog.String("direction", direction),
		slog.String("file", upload.filename),
		slog.Duration("duration", elapsed))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outputName))
	_, _ = io.WriteString(w, output)
}

// handlePreview renders an uploaded Markdown file to HTML for in-browser
// review. No conversion engine involved.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := s.saveUpload(r)
	if err != nil {
		s.renderForm(w, http.StatusBadRequest, err.Error(), true)
		return
	}
	defer cleanup()

	if !strings.EqualFold(filepath.Ext(upload.filename), ".md") {
		s.renderForm(w, http.StatusBadRequest, "Preview supports .md files only.", true)
		return
	}

	content, err := os.ReadFile(upload.path) // #nosec G304 -- path is server-created temp file
	if err != nil {
		s.renderForm(w, http.StatusInternalServerError, "Failed to read upload.", true)
		return
	}

	html, err := s.preview.Render(r.Context(), string(content))
	if err != nil {
		s.renderForm(w, http.StatusInternalServerError, "Preview failed: "+err.Error(), true)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// handleHealthz reports service version and engine availability.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Pandoc  string `json:"pandoc,omitempty"`
		Error   string `json:"error,omitempty"`
	}

	h := health{Status: "ok", Version: version.Display()}
	if pandocVersion, err := s.svc.EngineVersion(r.Context()); err != nil {
		h.Status = "degraded"
		h.Error = err.Error()
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		h.Pandoc = pandocVersion
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h)
}

// upload describes one saved multipart document.
type upload struct {
	filename string
	path     string
	size     int64
	toJATS   bool
}

// saveUpload writes the "document" form file to a temp directory.
// The returned cleanup removes the directory.
func (s *Server) saveUpload(r *http.Request) (*upload, func(), error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("document")
	if err != nil {
		return nil, nil, errors.New("no file uploaded")
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		return nil, nil, errors.New("no file selected")
	}

	dir, err := os.MkdirTemp("", "go-docx2jats-upload-*")
	if err != nil {
		return nil, nil, fmt.Errorf("creating upload dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	// Base name only: the client-supplied filename must not carry path
	// segments into the temp directory.
	path := filepath.Join(dir, filepath.Base(header.Filename))
	size, err := copyUpload(path, file)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	s.metrics.observeUpload(size)

	return &upload{
		filename: filepath.Base(header.Filename),
		path:     path,
		size:     size,
		toJATS:   r.FormValue("convert-to-jats") == "on",
	}, cleanup, nil
}

// copyUpload writes the multipart file to path and returns its size.
func copyUpload(path string, file multipart.File) (int64, error) {
	dst, err := os.Create(path) // #nosec G304 -- path is server-created temp file
	if err != nil {
		return 0, fmt.Errorf("saving upload: %w", err)
	}

	size, err := io.Copy(dst, file)
	if err != nil {
		_ = dst.Close()
		return 0, fmt.Errorf("saving upload: %w", err)
	}

	if err := dst.Close(); err != nil {
		return 0, fmt.Errorf("saving upload: %w", err)
	}
	return size, nil
}

// resolveDirection maps an uploaded filename and the JATS checkbox to a
// conversion direction and the download filename.
func resolveDirection(filename string, toJATS bool) (direction, outputName string, err error) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		if toJATS {
			return directionDocxToJATS, stem + ".xml", nil
		}
		return directionDocxToMarkdown, stem + ".md", nil
	case ".md":
		return directionMarkdownToJATS, stem + ".xml", nil
	default:
		return "", "", errors.New("unsupported file type; upload a .docx or .md file")
	}
}

// convert dispatches one conversion by direction.
func (s *Server) convert(r *http.Request, direction, path string) (string, error) {
	ctx := r.Context()

	switch direction {
	case directionDocxToMarkdown:
		return s.svc.ConvertDocx(ctx, path)
	case directionDocxToJATS:
		return s.svc.ConvertDocxToJATS(ctx, path)
	case directionMarkdownToJATS:
		content, err := os.ReadFile(path) // #nosec G304 -- path is server-created temp file
		if err != nil {
			return "", fmt.Errorf("reading upload: %w", err)
		}
		return s.svc.ConvertMarkdown(ctx, string(content))
	default:
		return "", fmt.Errorf("unknown direction %q", direction)
	}
}

// statusFor maps conversion errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, docx2jats.ErrEmptyMarkdown),
		errors.Is(err, docx2jats.ErrEmptyInputPath),
		errors.Is(err, docx2jats.ErrInputNotFound):
		return http.StatusBadRequest
	case errors.Is(err, docx2jats.ErrPandocNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// renderForm writes the upload form, optionally with a result banner.
func (s *Server) renderForm(w http.ResponseWriter, status int, message string, isError bool) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = indexTemplate.Execute(w, indexData{
		Message: message,
		Error:   isError,
		Version: version.Display(),
	})
}
