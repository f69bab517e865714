package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UnknownIDPrefix prefixes the question ID derived for a row without a value in its
// ID (first) column. Votes for such IDs are rejected.
const UnknownIDPrefix = "unknown_"

// Header is the ordered list of column names taken from the first row of a sheet.
type Header []string

// Record is a single sheet row as an ordered column name -> value mapping. Keys are
// unique and ordered by their first occurrence in the header.
type Record struct {
	keys   []string
	values map[string]string
}

// MakeRecord pairs header[i] with row[i]. Fields missing from a short row are mapped
// to "" and fields beyond the end of the header are ignored.
func MakeRecord(header Header, row []string) Record {
	record := Record{
		keys:   make([]string, 0, len(header)),
		values: make(map[string]string, len(header)),
	}

	for i, h := range header {
		v := ""
		if i < len(row) {
			v = row[i]
		}

		record.set(h, v)
	}

	return record
}

func (r *Record) set(key, value string) {
	if r.values == nil {
		r.values = map[string]string{}
	}

	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}

	r.values[key] = value
}

// Keys returns the record column names in header order.
func (r Record) Keys() []string {
	return append([]string{}, r.keys...)
}

func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]

	return v, ok
}

func (r Record) Len() int {
	return len(r.keys)
}

// Values returns the record values in header order.
func (r Record) Values() []string {
	values := make([]string, len(r.keys))
	for i, k := range r.keys {
		values[i] = r.values[k]
	}

	return values
}

func (r Record) String() string {
	fields := []string{}
	for _, k := range r.keys {
		fields = append(fields, fmt.Sprintf("%v:%q", k, r.values[k]))
	}

	return "{" + strings.Join(fields, " ") + "}"
}

// MarshalJSON encodes the record as a JSON object with the keys in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer

	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}

		b.Write(key)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, retaining the key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	if token, err := decoder.Token(); err != nil {
		return err
	} else if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("invalid record - expected JSON object")
	}

	*r = Record{
		keys:   []string{},
		values: map[string]string{},
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("invalid record key '%v'", token)
		}

		var value string
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("invalid value for '%v' (%v)", key, err)
		}

		r.set(key, value)
	}

	if _, err := decoder.Token(); err != nil {
		return err
	}

	return nil
}

// ID derives the question ID for the record at index in a list: the value of the first
// column or, if that is blank, UnknownIDPrefix followed by the index.
func ID(record Record, index int) string {
	if len(record.keys) > 0 {
		if id := clean(record.values[record.keys[0]]); id != "" {
			return id
		}
	}

	return fmt.Sprintf("%v%v", UnknownIDPrefix, index)
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
