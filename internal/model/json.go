package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// scanJSON unmarshals a TEXT/BLOB column into dest.
func scanJSON(src any, dest any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

// StringList is a JSON-encoded []string column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// LinkList is a JSON-encoded []Link column.
type LinkList []Link

func (l LinkList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *LinkList) Scan(src any) error {
	return scanJSON(src, l)
}

// FileCheckList is a JSON-encoded []FileCheck column.
type FileCheckList []FileCheck

func (l FileCheckList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *FileCheckList) Scan(src any) error {
	return scanJSON(src, l)
}

func (p SearchPerformance) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

func (p *SearchPerformance) Scan(src any) error {
	return scanJSON(src, p)
}
