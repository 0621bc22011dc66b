package api

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/qri-io/jsonschema"
)

const maxBodyBytes = 1 << 20

// Request schema names, matching files under schemas/.
const (
	schemaConfiguration = "configuration"
	schemaEstimate      = "estimate"
	schemaInquiry       = "inquiry"
	schemaQuote         = "quote"
	schemaQuoteStatus   = "quote_status"
	schemaQuotePricing  = "quote_pricing"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var requestSchemas = mustLoadSchemas(schemaFS)

// FieldError describes one schema violation in a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func mustLoadSchemas(fsys fs.FS) map[string]*jsonschema.Schema {
	entries, err := fs.ReadDir(fsys, "schemas")
	if err != nil {
		panic(fmt.Sprintf("read request schemas: %v", err))
	}

	out := make(map[string]*jsonschema.Schema, len(entries))
	for _, e := range entries {
		b, err := fs.ReadFile(fsys, path.Join("schemas", e.Name()))
		if err != nil {
			panic(fmt.Sprintf("read schema %s: %v", e.Name(), err))
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			panic(fmt.Sprintf("compile schema %s: %v", e.Name(), err))
		}
		out[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = rs
	}
	return out
}

// decodeValid reads the request body, validates it against the named schema
// and decodes it into dst. On failure it writes a 400 carrying message and
// returns false.
func decodeValid(w http.ResponseWriter, r *http.Request, schema, message string, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, message)
		return false
	}

	rs, ok := requestSchemas[schema]
	if !ok {
		panic("unknown request schema " + schema)
	}

	verrs, err := rs.ValidateBytes(r.Context(), body)
	if err != nil {
		writeJSON(w, errorResponse{Message: message, Details: []FieldError{{Field: "/", Message: "body must be a JSON object"}}}, http.StatusBadRequest)
		return false
	}
	if len(verrs) > 0 {
		details := make([]FieldError, 0, len(verrs))
		for _, v := range verrs {
			details = append(details, FieldError{Field: v.PropertyPath, Message: v.Message})
		}
		writeJSON(w, errorResponse{Message: message, Details: details}, http.StatusBadRequest)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, message)
		return false
	}
	return true
}
