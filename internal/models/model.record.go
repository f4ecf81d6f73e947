package models

import (
	"encoding/json"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shop_pos/internal/utility"
)

// Field names with a meaning shared by every collection
const (
	FieldID      = "id"  // Application identifier, allocated by NextID
	FieldStoreID = "_id" // MongoDB identifier, stringified outside the store
)

// Record is an untyped document: field name -> value.
// Values are kept normalized: integers are int64, floats float64, nested
// documents Record-compatible maps and arrays []interface{}.
type Record map[string]interface{}

// ID returns the application identifier
func (r Record) ID() interface{} {
	return r[FieldID]
}

// String returns the field as a string ("" when missing)
func (r Record) String(field string) string {
	return utility.ToString(r[field])
}

// Float returns the field as a number; missing or malformed values are 0
func (r Record) Float(field string) float64 {
	return utility.FloatOrZero(r[field])
}

// Has reports whether the field is present
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Keys returns the field names in sorted order
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return cloneValue(map[string]interface{}(r)).(map[string]interface{})
}

// MissingFields returns the required fields of kind absent from r
func (r Record) MissingFields(kind Kind) []string {
	var missing []string
	for _, f := range requiredFields[kind] {
		if !r.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case Record:
		return cloneValue(map[string]interface{}(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// CloneRecords deep copies a record set
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// NormalizeRecord converts every value of r to its portable form
func NormalizeRecord(r map[string]interface{}) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = NormalizeValue(v)
	}
	return out
}

// NormalizeRecords normalizes a record set
func NormalizeRecords[M ~map[string]interface{}](records []M) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, NormalizeRecord(r))
	}
	return out
}

// NormalizeValue converts store or decoder specific values to the portable
// form used by the JSON cache: ObjectIDs become hex strings, dates become
// DateLayout strings, every integer int64 and every float float64.
func NormalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return utility.FormatDate(t.Time().UTC())
	case time.Time:
		return utility.FormatDate(t)
	case primitive.Decimal128:
		if f, ok := utility.ToFloat64(t.String()); ok {
			return f
		}
		return t.String()
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return float64(t)
	case primitive.D:
		out := make(map[string]interface{}, len(t))
		for _, e := range t {
			out[e.Key] = NormalizeValue(e.Value)
		}
		return out
	case primitive.M:
		return normalizeMap(t)
	case Record:
		return normalizeMap(t)
	case map[string]interface{}:
		return normalizeMap(t)
	case primitive.A:
		return normalizeSlice(t)
	case []interface{}:
		return normalizeSlice(t)
	case []Record:
		out := make([]interface{}, len(t))
		for i, r := range t {
			out[i] = normalizeMap(r)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i, r := range t {
			out[i] = normalizeMap(r)
		}
		return out
	default:
		return v
	}
}

func normalizeMap[M ~map[string]interface{}](m M) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = NormalizeValue(v)
	}
	return out
}

func normalizeSlice[S ~[]interface{}](s S) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = NormalizeValue(v)
	}
	return out
}
