package models

import (
	"reflect"
	"strings"

	"shop_pos/internal/utility"
)

// SearchRecords keeps the records where some string-typed field contains query,
// ignoring case. An empty query keeps every record.
func SearchRecords(records []Record, query string) []Record {
	if query == "" {
		return CloneRecords(nonNil(records))
	}
	needle := strings.ToLower(query)
	out := make([]Record, 0)
	for _, r := range records {
		for _, v := range r {
			s, ok := v.(string)
			if ok && strings.Contains(strings.ToLower(s), needle) {
				out = append(out, r.Clone())
				break
			}
		}
	}
	return out
}

// FilterRecords keeps the records that equal every criterion. Values are compared
// after normalization so an int criterion matches an int64 or whole float64 value.
// A missing field equals nil. Empty criteria keep every record.
func FilterRecords(records []Record, criteria map[string]interface{}) []Record {
	if len(criteria) == 0 {
		return CloneRecords(nonNil(records))
	}
	out := make([]Record, 0)
	for _, r := range records {
		if matchesAll(r, criteria) {
			out = append(out, r.Clone())
		}
	}
	return out
}

func matchesAll(r Record, criteria map[string]interface{}) bool {
	for field, want := range criteria {
		if !valuesEqual(r[field], want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	a, b = NormalizeValue(a), NormalizeValue(b)
	if utility.IsNumber(a) && utility.IsNumber(b) {
		fa, _ := utility.ToFloat64(a)
		fb, _ := utility.ToFloat64(b)
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func nonNil(records []Record) []Record {
	if records == nil {
		return []Record{}
	}
	return records
}
