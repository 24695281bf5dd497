package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Marker is an optional raw JSON attribute. A missing value and JSON null are both
// absent; any other JSON value, including 0, false and "", is present.
type Marker []byte

var jsonNull = []byte("null")

// MarkerOf encodes v as a present marker. A nil v yields an absent marker.
func MarkerOf(v any) (Marker, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal marker: %w", err)
	}
	return normalize(data), nil
}

func normalize(data []byte) Marker {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return nil
	}
	return bytes.Clone(trimmed)
}

// Present reports whether the attribute is defined and non-null.
func (m Marker) Present() bool {
	trimmed := bytes.TrimSpace(m)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, jsonNull)
}

// Decode unmarshals the stored value into dest.
func (m Marker) Decode(dest any) error {
	if !m.Present() {
		return errors.New("marker is absent")
	}
	return json.Unmarshal(m, dest)
}

// Scan implements sql.Scanner interface
func (m *Marker) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		*m = normalize(v)
		return nil
	case string:
		*m = normalize([]byte(v))
		return nil
	case int64, float64, bool:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		*m = data
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into Marker", value)
	}
}

// Value implements driver.Valuer interface
func (m Marker) Value() (driver.Value, error) {
	if !m.Present() {
		return nil, nil
	}
	return string(m), nil
}

// GormDBDataType stores markers as jsonb on Postgres and as text elsewhere.
func (Marker) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

// MarshalJSON implements json.Marshaler - returns raw JSON
func (m Marker) MarshalJSON() ([]byte, error) {
	if !m.Present() {
		return jsonNull, nil
	}
	return m, nil
}

// UnmarshalJSON implements json.Unmarshaler - stores a copy of the raw JSON
func (m *Marker) UnmarshalJSON(data []byte) error {
	*m = normalize(data)
	return nil
}
