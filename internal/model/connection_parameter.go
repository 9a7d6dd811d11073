package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingConnectionParameter is returned when an update does not carry a
// value for one of the stored parameter ids.
var ErrMissingConnectionParameter = errors.New("missing connection parameter")

type ParameterType string

const (
	ParameterTypeText     ParameterType = "text"
	ParameterTypePassword ParameterType = "password"
	ParameterTypeNumber   ParameterType = "number"
	ParameterTypeJSON     ParameterType = "json"
)

// ConnectionParameter is a single named credential or config field
type ConnectionParameter struct {
	ID       string        `json:"id" validate:"required"`
	Name     string        `json:"name,omitempty"`
	Type     ParameterType `json:"type,omitempty"`
	Required bool          `json:"required,omitempty"`
	Value    string        `json:"value"`
}

// ConnectionParameters is the ordered parameter sequence of a data source,
// stored as a JSON column.
type ConnectionParameters []ConnectionParameter

// Value implements driver.Valuer interface for GORM
func (p ConnectionParameters) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface for GORM
func (p *ConnectionParameters) Scan(value interface{}) error {
	if value == nil {
		*p = ConnectionParameters{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for connection parameters", value)
	}

	return json.Unmarshal(bytes, p)
}

// Clone returns a deep copy of the sequence.
func (p ConnectionParameters) Clone() ConnectionParameters {
	if p == nil {
		return nil
	}
	out := make(ConnectionParameters, len(p))
	copy(out, p)
	return out
}

// WithValues returns a new sequence in the same order with every value
// replaced by the entry of values keyed by the parameter id. The receiver is
// left untouched. Every stored id must be present in values.
func (p ConnectionParameters) WithValues(values map[string]string) (ConnectionParameters, error) {
	updated := p.Clone()
	for i := range updated {
		v, ok := values[updated[i].ID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingConnectionParameter, updated[i].ID)
		}
		updated[i].Value = v
	}
	return updated, nil
}

// IDs returns the parameter ids in order
func (p ConnectionParameters) IDs() []string {
	ids := make([]string, len(p))
	for i, param := range p {
		ids[i] = param.ID
	}
	return ids
}
