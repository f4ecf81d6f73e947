package utility

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// PrettyJSON marshals v with a four space indent and a trailing newline
func PrettyJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeJSON decodes data keeping numbers as json.Number
func DecodeJSON(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// jsonFloat marshals whole floats with a decimal point so they decode as floats again
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return []byte(strconv.FormatFloat(v, 'f', 1, 64)), nil
	}
	return json.Marshal(v)
}

// KeepFloats returns v with every float wrapped so that 10.0 is written as
// "10.0" instead of "10". Maps and slices are copied.
func KeepFloats(v interface{}) interface{} {
	switch t := v.(type) {
	case float64:
		return jsonFloat(t)
	case float32:
		return jsonFloat(t)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = KeepFloats(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = KeepFloats(val)
		}
		return out
	default:
		return v
	}
}
