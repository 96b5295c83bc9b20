package predictor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Decode reads a /predict response body into a Result.
func (s Schema) Decode(body []byte) (*Result, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if raw == nil {
		return nil, &DecodeError{Err: errors.New("response is not a JSON object")}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Err: errors.New("unexpected data after JSON object")}
	}

	result := &Result{
		Schema:  s.Name,
		Numbers: make(map[string]float64),
		Texts:   make(map[string]string),
		Raw:     raw,
	}
	for _, f := range s.Fields {
		v, ok := raw[f.Key]
		if !ok || v == nil {
			if f.Required {
				return nil, &DecodeError{Field: f.Key, Err: errors.New("missing required value")}
			}
			continue
		}

		switch f.Kind {
		case KindNumeric:
			n, ok := v.(json.Number)
			if !ok {
				return nil, &DecodeError{Field: f.Key, Err: fmt.Errorf("expected a number, got %T", v)}
			}
			x, err := n.Float64()
			if err != nil {
				return nil, &DecodeError{Field: f.Key, Err: err}
			}
			result.Numbers[f.Name] = x
		case KindText:
			switch t := v.(type) {
			case string:
				result.Texts[f.Name] = t
			case json.Number:
				result.Texts[f.Name] = t.String()
			default:
				return nil, &DecodeError{Field: f.Key, Err: fmt.Errorf("expected a string, got %T", v)}
			}
		}
	}
	return result, nil
}

// Number returns a numeric value by logical name.
func (r *Result) Number(name string) (float64, bool) {
	v, ok := r.Numbers[name]
	return v, ok
}

// Text returns a text value by logical name.
func (r *Result) Text(name string) (string, bool) {
	v, ok := r.Texts[name]
	return v, ok
}

// Goals returns the predicted full time goals of both sides.
func (r *Result) Goals() (home, away float64) {
	return r.Numbers[FieldFTHG], r.Numbers[FieldFTAG]
}

// formatRaw renders a raw JSON value. Fractional numbers get four decimals,
// integers are printed as they came.
func formatRaw(v any) string {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil && !isIntegerLiteral(t.String()) {
			return strconv.FormatFloat(f, 'f', 4, 64)
		}
		return t.String()
	case string:
		return t
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func isIntegerLiteral(s string) bool {
	return !bytes.ContainsAny([]byte(s), ".eE")
}
