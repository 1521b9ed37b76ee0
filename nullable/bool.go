package nullable

import (
	"database/sql"
	"encoding/json"
)

// Bool in `nullable` package
// implements: sql.Scanner and driver.Valuer by embedding sql.NullBool
// implements: json.Marshaler and json.Unmarshaler
type Bool struct {
	sql.NullBool
}

// NewBool returns a valid Bool holding b.
func NewBool(b bool) Bool {
	return Bool{sql.NullBool{Bool: b, Valid: true}}
}

func (n *Bool) MarshalJSON() ([]byte, error) {
	if n.Valid {
		return json.Marshal(n.Bool)
	}
	return []byte("null"), nil
}

func (n *Bool) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Valid = false
		n.Bool = false
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	n.Bool = b
	n.Valid = true
	return nil
}

func (n *Bool) ForceValue() bool {
	if !n.Valid {
		return false
	}
	return n.Bool
}

func (n *Bool) IsNil() bool {
	return !n.Valid
}
