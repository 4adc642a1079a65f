package eventstore

import (
	"errors"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

// PayloadFields holds the top level string fields of an event payload.
// Only those fields can be matched by a FilterPredicate.
type PayloadFields map[string]string

// ExtractPayloadFields decodes a payload and keeps its top level string fields.
func ExtractPayloadFields(payloadJSON []byte) (PayloadFields, error) {
	raw := make(map[string]any)
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &raw); err != nil {
		return nil, errors.Join(ErrInvalidPayloadJSON, err)
	}

	fields := make(PayloadFields, len(raw))
	for key, val := range raw {
		if s, ok := val.(string); ok {
			fields[key] = s
		}
	}

	return fields, nil
}

// Matches evaluates the Filter in process, with the same semantics the SQL engines
// give it in their WHERE clauses.
func (f Filter) Matches(eventType string, fields PayloadFields) bool {
	if len(f.items) == 0 {
		return true
	}

	for _, item := range f.items {
		if item.matches(eventType, fields) {
			return true
		}
	}

	return false
}

func (fi FilterItem) matches(eventType string, fields PayloadFields) bool {
	if len(fi.eventTypes) > 0 && !slices.Contains(fi.eventTypes, eventType) {
		return false
	}

	if len(fi.predicates) == 0 {
		return true
	}

	for _, predicate := range fi.predicates {
		val, ok := fields[predicate.key]
		hit := ok && val == predicate.val

		if fi.allPredicatesMustMatch && !hit {
			return false
		}

		if !fi.allPredicatesMustMatch && hit {
			return true
		}
	}

	return fi.allPredicatesMustMatch
}
