package db

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// StringList is a JSON-encoded string array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(err, "marshal string list")
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	b, err := columnBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*l = StringList{}
		return nil
	}
	return errors.Wrap(json.Unmarshal(b, l), "unmarshal string list")
}

// ImportantDateList is a JSON-encoded array of date/occasion pairs.
type ImportantDateList []ImportantDate

func (l ImportantDateList) Value() (driver.Value, error) {
	if l == nil {
		l = ImportantDateList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(err, "marshal important dates")
	}
	return string(b), nil
}

func (l *ImportantDateList) Scan(src interface{}) error {
	b, err := columnBytes(src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*l = ImportantDateList{}
		return nil
	}
	return errors.Wrap(json.Unmarshal(b, l), "unmarshal important dates")
}

func columnBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.Errorf("unsupported column type %T", src)
	}
}
