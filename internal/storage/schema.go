package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// jobsDocumentSchema describes the persisted jobs document: a top-level
// mapping from job id to job fields, with decimal amounts serialized as
// strings and ISO-8601 dates.
func jobsDocumentSchema() map[string]any {
	amount := map[string]any{
		"type":    "string",
		"pattern": `^-?\d+(\.\d+)?$`,
	}
	jobProps := map[string]any{
		"id":              map[string]any{"type": "string", "minLength": 1},
		"technician_id":   map[string]any{"type": "string"},
		"technician_name": map[string]any{"type": "string"},
		"address":         map[string]any{"type": "string"},
		"phone":           map[string]any{"type": "string"},
		"description":     map[string]any{"type": "string"},
		"job_date":        map[string]any{"type": "string", "pattern": `^(\d{4}-\d{2}-\d{2})?$`},
		"total":           amount,
		"parts":           amount,
		"fee":             amount,
		"cash_amount":     amount,
		"cc_amount":       amount,
		"check_amount":    amount,
		"tech_amount":     amount,
		"commission_rate": amount,
		"tech_profit":     amount,
		"balance":         amount,
		"payment_method": map[string]any{
			"enum": []any{"cash", "cc", "check", "transfer", "split"},
		},
		"is_paid":    map[string]any{"type": "boolean"},
		"paid_date":  map[string]any{"type": "string"},
		"notes":      map[string]any{"type": "string"},
		"created_at": map[string]any{"type": "string"},
		"updated_at": map[string]any{"type": "string"},
	}
	return map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type":       "object",
			"required":   []any{"id", "address", "total", "payment_method", "created_at"},
			"properties": jobProps,
		},
	}
}

// validateJobsDocument checks a raw jobs file against the document schema
// before any record is decoded, so a corrupted store fails loudly instead of
// producing half-read jobs.
func validateJobsDocument(data []byte) error {
	schemaBytes, err := json.Marshal(jobsDocumentSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("jobs.schema.json", bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("jobs.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("jobs document is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("jobs document does not match schema: %w", err)
	}
	return nil
}
