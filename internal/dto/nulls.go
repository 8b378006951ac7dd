package dto

import (
	"bytes"
	"encoding/json"
	"sort"
)

// nullKeys returns, sorted, the keys of the JSON object data that are present
// with an explicit null value.
func nullKeys(data []byte, keys ...string) []string {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return nil
	}

	var nulls []string
	for _, key := range keys {
		if value, ok := object[key]; ok && bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			nulls = append(nulls, key)
		}
	}
	sort.Strings(nulls)
	return nulls
}

func (r *CategoryRequest) UnmarshalJSON(data []byte) error {
	type body CategoryRequest
	if err := json.Unmarshal(data, (*body)(r)); err != nil {
		return err
	}
	r.nulls = nullKeys(data, "nombre")
	return nil
}

func (r *CategoryPatchRequest) UnmarshalJSON(data []byte) error {
	type body CategoryPatchRequest
	if err := json.Unmarshal(data, (*body)(r)); err != nil {
		return err
	}
	r.nulls = nullKeys(data, "nombre")
	return nil
}

func (r *TransactionRequest) UnmarshalJSON(data []byte) error {
	type body TransactionRequest
	if err := json.Unmarshal(data, (*body)(r)); err != nil {
		return err
	}
	r.nulls = nullKeys(data, "descripcion", "monto", "fecha")
	return nil
}

func (r *TransactionPatchRequest) UnmarshalJSON(data []byte) error {
	type body TransactionPatchRequest
	if err := json.Unmarshal(data, (*body)(r)); err != nil {
		return err
	}
	r.nulls = nullKeys(data, "descripcion", "monto", "fecha")
	return nil
}

// NullFields lists the fields the client explicitly set to null. None of
// them accept null.
func (r *CategoryRequest) NullFields() []string { return r.nulls }

func (r *CategoryPatchRequest) NullFields() []string { return r.nulls }

func (r *TransactionRequest) NullFields() []string { return r.nulls }

func (r *TransactionPatchRequest) NullFields() []string { return r.nulls }
