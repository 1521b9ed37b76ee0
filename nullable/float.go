package nullable

import (
	"database/sql"
	"encoding/json"
)

// Float in `nullable` package
// implements: sql.Scanner and driver.Valuer by embedding sql.NullFloat64
// implements: json.Marshaler and json.Unmarshaler
type Float struct {
	sql.NullFloat64
}

// NewFloat returns a valid Float holding f.
func NewFloat(f float64) Float {
	return Float{sql.NullFloat64{Float64: f, Valid: true}}
}

func (n *Float) MarshalJSON() ([]byte, error) {
	if n.Valid {
		return json.Marshal(n.Float64)
	}
	return []byte("null"), nil
}

func (n *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Valid = false
		n.Float64 = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	n.Float64 = f
	n.Valid = true
	return nil
}

func (n *Float) ForceValue() float64 {
	if !n.Valid {
		return 0
	}
	return n.Float64
}

func (n *Float) IsNil() bool {
	return !n.Valid
}
