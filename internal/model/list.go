package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a string set persisted as a JSON array column. Order is
// preserved but membership helpers enforce set semantics.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	payload, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list failed: %w", err)
	}
	return string(payload), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported string list source type %T", src)
	}

	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("unmarshal string list failed: %w", err)
	}
	*l = items
	return nil
}

func (l StringList) GormDataType() string {
	return "json"
}

func (l StringList) Contains(item string) bool {
	for _, existing := range l {
		if existing == item {
			return true
		}
	}
	return false
}

// AddUnique appends item unless it is already a member.
func (l StringList) AddUnique(item string) StringList {
	if l.Contains(item) {
		return l
	}
	return append(l, item)
}

// Remove drops every occurrence of item.
func (l StringList) Remove(item string) StringList {
	out := make(StringList, 0, len(l))
	for _, existing := range l {
		if existing != item {
			out = append(out, existing)
		}
	}
	return out
}
