package whitepaper

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed record_schema.json
var recordSchemaJSON []byte

const recordSchemaURL = "https://micapress.schemas.local/whitepaper/record.schema.json"

var (
	recordSchemaOnce sync.Once
	recordSchema     *jsonschema.Schema
	recordSchemaErr  error
)

func compiledRecordSchema() (*jsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(recordSchemaURL, bytes.NewReader(recordSchemaJSON)); err != nil {
			recordSchemaErr = fmt.Errorf("record schema load failed: %w", err)
			return
		}
		recordSchema, recordSchemaErr = c.Compile(recordSchemaURL)
		if recordSchemaErr != nil {
			recordSchemaErr = fmt.Errorf("record schema compile failed: %w", recordSchemaErr)
		}
	})
	return recordSchema, recordSchemaErr
}

// ParseRecord decodes and structurally validates a white paper record.
// The schema gate rejects unknown fields, wrong value types, and unknown
// token types; everything regulatory (missing disclosures, malformed
// values) is left to the assertion layers so it surfaces as findings
// rather than parse failures.
func ParseRecord(data []byte) (*Record, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("record is not valid JSON: %w", err)
	}
	schema, err := compiledRecordSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("record schema validation failed: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("record decode failed: %w", err)
	}
	return &rec, nil
}
