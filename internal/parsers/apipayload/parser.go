// Package apipayload decodes the JSON bodies of the supported remote WHOIS
// APIs. Each provider shape is tried in a fixed order; the first whose
// discriminating key is present wins, even when its value turns out to be
// unusable.
package apipayload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"domaininfo/internal/domain"
)

// Shape identifies which provider payload layout matched.
type Shape string

const (
	// ShapeWhoisRecord: {"WhoisRecord": {"createdDate", "expiresDate", "registrar"}}
	ShapeWhoisRecord Shape = "whois_record"
	// ShapeFlat: {"creation_date", "expiration_date", "registrar"}
	ShapeFlat Shape = "flat"
	// ShapeResult: {"result": {"created_date", "expiration_date", "registrar"}}
	ShapeResult Shape = "result"
)

var ErrNoMatch = errors.New("payload matches no known provider shape")

type object = map[string]json.RawMessage

type layout struct {
	shape     Shape
	fields    func(top object) (object, bool, error)
	created   string
	expiry    string
	registrar string
}

var layouts = []layout{
	{ShapeWhoisRecord, nested("WhoisRecord"), "createdDate", "expiresDate", "registrar"},
	{ShapeFlat, flat("creation_date"), "creation_date", "expiration_date", "registrar"},
	{ShapeResult, nested("result"), "created_date", "expiration_date", "registrar"},
}

// Match is a decoded payload.
type Match struct {
	Shape  Shape
	Fields domain.RawFields
}

// Parse discriminates payload against the known shapes and extracts the
// registration fields. Missing fields are left empty; only an unknown
// shape or invalid JSON is an error.
func Parse(payload []byte) (Match, error) {
	var top object
	if err := json.Unmarshal(payload, &top); err != nil {
		return Match{}, fmt.Errorf("%w: %v", ErrNoMatch, err)
	}
	for _, l := range layouts {
		obj, ok, err := l.fields(top)
		if !ok {
			continue
		}
		if err != nil {
			return Match{}, err
		}
		return Match{
			Shape: l.shape,
			Fields: domain.RawFields{
				CreatedDate: text(obj[l.created]),
				ExpiryDate:  text(obj[l.expiry]),
				Registrar:   text(obj[l.registrar]),
			},
		}, nil
	}
	return Match{}, ErrNoMatch
}

// nested matches when key is present. Its value must be a JSON object.
func nested(key string) func(object) (object, bool, error) {
	return func(top object) (object, bool, error) {
		raw, ok := top[key]
		if !ok {
			return nil, false, nil
		}
		var inner object
		if err := json.Unmarshal(raw, &inner); err != nil || inner == nil {
			return nil, true, fmt.Errorf("%w: %q is not an object", ErrNoMatch, key)
		}
		return inner, true, nil
	}
}

// flat matches when the discriminating key is present at the top level.
func flat(key string) func(object) (object, bool, error) {
	return func(top object) (object, bool, error) {
		_, ok := top[key]
		return top, ok, nil
	}
}

// text renders a JSON value as a field string: strings verbatim, null or
// missing as empty, anything else as compact JSON.
func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
