package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"vacuumworld/internal/app/ports"
)

//go:embed snapshot.schema.json
var snapshotSchema string

const snapshotSchemaURL = "snapshot.schema.json"

type Validator struct {
	schema *jsonschema.Schema
}

func NewSnapshotValidator() (*Validator, error) {
	s, err := jsonschema.CompileString(snapshotSchemaURL, snapshotSchema)
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

func MustSnapshotValidator() *Validator {
	v, err := NewSnapshotValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks raw against the snapshot layout. Bounds that depend on
// configuration, such as the grid size range, are checked when the
// environment is rebuilt.
func (v *Validator) Validate(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrInvalidPayload, err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrInvalidPayload, err)
	}
	return nil
}

var _ ports.SnapshotValidator = (*Validator)(nil)
