package series

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Value is a scalar result that may be complex. It encodes to JSON as a
// number, or as {"re":..,"im":..} when complex. NaN and infinities, which
// JSON numbers cannot carry, encode as "NaN", "+Inf" and "-Inf".
type Value struct {
	Re, Im  float64
	Complex bool
}

// String renders the value for text output.
func (v Value) String() string {
	re := formatFloat(v.Re)
	if !v.Complex {
		return re
	}
	im := formatFloat(v.Im)
	if im[0] != '-' && im[0] != '+' {
		im = "+" + im
	}
	return "(" + re + im + "i)"
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Complex {
		return appendComponent(nil, v.Re), nil
	}
	buf := []byte(`{"re":`)
	buf = appendComponent(buf, v.Re)
	buf = append(buf, `,"im":`...)
	buf = appendComponent(buf, v.Im)
	return append(buf, '}'), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var parts struct {
			Re json.RawMessage `json:"re"`
			Im json.RawMessage `json:"im"`
		}
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		re, err := parseComponent(parts.Re)
		if err != nil {
			return err
		}
		im, err := parseComponent(parts.Im)
		if err != nil {
			return err
		}
		*v = Value{Re: re, Im: im, Complex: true}
		return nil
	}
	re, err := parseComponent(data)
	if err != nil {
		return err
	}
	*v = Value{Re: re}
	return nil
}

func appendComponent(buf []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(buf, `"NaN"`...)
	case math.IsInf(f, 1):
		return append(buf, `"+Inf"`...)
	case math.IsInf(f, -1):
		return append(buf, `"-Inf"`...)
	}
	return strconv.AppendFloat(buf, f, 'g', -1, 64)
}

func parseComponent(data []byte) (float64, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		switch s {
		case "NaN":
			return math.NaN(), nil
		case "+Inf", "Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("invalid number %q", s)
	}
	var f float64
	err := json.Unmarshal(data, &f)
	return f, err
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
