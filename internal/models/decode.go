package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// DecodeLenient unmarshals data into v, first rewriting whole numbers
// written in float form ("3.0", "3e0") as integers so they fit int fields.
// Fractional values are left alone and still fail on integer fields.
func DecodeLenient(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	fixed, err := json.Marshal(wholeNumbers(raw))
	if err != nil {
		return err
	}
	return json.Unmarshal(fixed, v)
}

func wholeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = wholeNumbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = wholeNumbers(e)
		}
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return t
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return t
		}
		return json.Number(strconv.FormatInt(int64(f), 10))
	}
	return v
}
