// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/menu-go/internal/middleware"
	"github.com/olegiv/menu-go/internal/model"
)

// imageUUIDFromURL extracts the upload UUID from an item image URL of
// the form /uploads/items/<uuid>/<filename>. External or empty URLs
// yield "".
func imageUUIDFromURL(imageURL string) string {
	const prefix = "/uploads/items/"
	rest, ok := strings.CutPrefix(imageURL, prefix)
	if !ok {
		return ""
	}
	if idx := strings.Index(rest, "/"); idx > 0 {
		return rest[:idx]
	}
	return ""
}

// UploadResponse represents an uploaded item image in API responses.
// URL points at the re-encoded original; Variants maps variant type to
// its URL for the sizes that were generated.
type UploadResponse struct {
	UUID     string            `json:"uuid"`
	Filename string            `json:"filename"`
	MimeType string            `json:"mime_type"`
	Size     int64             `json:"size"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	URL      string            `json:"url"`
	Variants map[string]string `json:"variants,omitempty"`
}

// Upload handles POST /api/v1/admin/upload. Accepts one multipart image
// under the "file" field, stores the re-encoded original and generates
// the resized variants.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, model.MaxUploadBytes)
	if err := r.ParseMultipartForm(model.MaxUploadBytes); err != nil {
		WriteError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Upload too large", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." || filename == ".." {
		WriteBadRequest(w, "Invalid filename")
		return
	}

	imageUUID := uuid.NewString()

	result, err := h.processor.ProcessImage(file, imageUUID, filename)
	if err != nil {
		slog.Warn("rejected upload", "filename", filename, "error", err)
		WriteValidationError(w, map[string][]string{"file": {"File is not a supported image"}})
		return
	}

	variants, err := h.processor.CreateAllVariants(result.FilePath, imageUUID, filename)
	if err != nil {
		slog.Error("failed to create image variants", "uuid", imageUUID, "error", err)
		// The original was stored; report it without variants
	}

	resp := UploadResponse{
		UUID:     imageUUID,
		Filename: filename,
		MimeType: result.MimeType,
		Size:     result.Size,
		Width:    result.Width,
		Height:   result.Height,
		URL:      path.Join("/uploads", "items", imageUUID, filename),
	}
	if len(variants) > 0 {
		resp.Variants = make(map[string]string, len(variants))
		for _, v := range variants {
			resp.Variants[v.Type] = path.Join("/uploads", v.Type, imageUUID, filename)
		}
	}

	h.events.Info(ctx, model.EventCategoryUpload, "Image uploaded",
		middleware.GetProfileID(r), middleware.ClientIP(r),
		map[string]any{"uuid": imageUUID, "filename": filename, "size": result.Size})

	WriteCreated(w, resp)
}
