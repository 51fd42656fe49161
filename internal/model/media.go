// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// ImageVariantConfig describes how to derive a resized variant from an
// uploaded original.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int  // JPEG quality 1-100
	Crop    bool // true: fill and crop from center; false: fit within bounds
}

// Image variant names.
const (
	ImageVariantThumb  = "thumb"
	ImageVariantDetail = "detail"
)

// ImageVariants returns the variants generated for every uploaded item image.
func ImageVariants() map[string]ImageVariantConfig {
	return map[string]ImageVariantConfig{
		ImageVariantThumb:  {Width: 400, Height: 400, Quality: 82, Crop: true},
		ImageVariantDetail: {Width: 1200, Height: 1200, Quality: 88, Crop: false},
	}
}

// MaxUploadBytes is the upload size cap for item images (10MB).
const MaxUploadBytes = 10 << 20

// MIME types accepted for item image uploads.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// IsSupportedImageType checks if a MIME type can be uploaded as an item image.
func IsSupportedImageType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}
