// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/menu-go/internal/model"
)

// multipartUpload builds a multipart body with one "file" part.
func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// testJPEG encodes a solid-color JPEG of the given size.
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestUpload(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	body, contentType := multipartUpload(t, "waffle.jpg", testJPEG(t, 1600, 1200))
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.AddCookie(cookie)

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp UploadResponse
	decodeData(t, w, &resp)
	if resp.UUID == "" {
		t.Error("UUID is empty")
	}
	if resp.Width != 1600 || resp.Height != 1200 {
		t.Errorf("dimensions = %dx%d", resp.Width, resp.Height)
	}
	if resp.MimeType != model.MimeTypeJPEG {
		t.Errorf("MimeType = %q", resp.MimeType)
	}
	if !strings.HasPrefix(resp.URL, "/uploads/items/") {
		t.Errorf("URL = %q", resp.URL)
	}
	if _, ok := resp.Variants[model.ImageVariantThumb]; !ok {
		t.Error("thumb variant missing")
	}
	if _, ok := resp.Variants[model.ImageVariantDetail]; !ok {
		t.Error("detail variant missing")
	}
}

func TestUpload_RejectsNonImage(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	body, contentType := multipartUpload(t, "notes.txt", []byte("just text"))
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.AddCookie(cookie)

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, r)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestUpload_RequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	body, contentType := multipartUpload(t, "waffle.jpg", testJPEG(t, 100, 100))
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/upload", body)
	r.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
