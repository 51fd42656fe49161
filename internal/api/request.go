// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/olegiv/menu-go/internal/validate"
)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. The modernc driver exposes no typed error for this.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// maxBodyBytes caps JSON request bodies. Image uploads have their own
// larger cap in the upload handler.
const maxBodyBytes = 1 << 20

// decodeAndValidate reads a JSON request body, checks it against schema,
// and decodes it into dst. Prepare hooks run on the decoded record before
// validation and may fill in derived fields. On failure the response has
// already been written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, schema validate.Schema, dst any, prepare ...func(map[string]any)) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		WriteBadRequest(w, "Failed to read request body")
		return false
	}
	if len(body) > maxBodyBytes {
		WriteError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body too large", nil)
		return false
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return false
	}
	for _, fn := range prepare {
		fn(record)
	}

	if result := validate.Validate(record, schema); !result.Valid {
		WriteValidationError(w, result.Errors)
		return false
	}

	// Re-encode the record so derived fields reach the typed struct
	prepared, err := json.Marshal(record)
	if err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return false
	}
	if err := json.Unmarshal(prepared, dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return false
	}
	return true
}
