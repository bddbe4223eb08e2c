package datastream

import (
	"errors"
	"fmt"
	"strings"
)

// DataType is the classification of a print data stream.
type DataType int

const (
	AFP       DataType = 1
	SCS       DataType = 2
	UserASCII DataType = 3
)

var dataTypeNames = map[DataType]string{
	AFP:       "AFP",
	SCS:       "SCS",
	UserASCII: "USERASCII",
}

func (t DataType) String() string {
	if s, ok := dataTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// Valid reports whether t is one of the three known types.
func (t DataType) Valid() bool {
	_, ok := dataTypeNames[t]
	return ok
}

// MarshalText encodes the type by name.
func (t DataType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid data type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name (see ParseDataType).
func (t *DataType) UnmarshalText(b []byte) error {
	v, err := ParseDataType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseDataType parses "AFP", "SCS" or "USERASCII" (case-insensitive;
// "USER_ASCII" and "ASCII" are accepted for the fallback type).
func ParseDataType(s string) (DataType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AFP":
		return AFP, nil
	case "SCS":
		return SCS, nil
	case "USERASCII", "USER_ASCII", "ASCII":
		return UserASCII, nil
	}
	return 0, fmt.Errorf("unknown data type %q", s)
}

// Verdict is the outcome of a single structural validator.
type Verdict int

const (
	// Negative: a byte or structure disqualified the stream.
	Negative Verdict = iota
	// Inconclusive: the window ended inside a structure, or nothing
	// decisive was seen.
	Inconclusive
	// Positive: the whole window walked cleanly and carried the evidence
	// the format requires.
	Positive
)

func (v Verdict) String() string {
	switch v {
	case Negative:
		return "negative"
	case Inconclusive:
		return "inconclusive"
	case Positive:
		return "positive"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// MarshalText encodes the verdict as its lowercase name.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// ErrInvalidWindow is matched by every WindowError.
var ErrInvalidWindow = errors.New("invalid byte window")

// WindowError reports an offset/length pair that does not fit the buffer.
type WindowError struct {
	BufLen int
	Offset int
	Length int
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("invalid byte window: offset=%d length=%d buffer=%d", e.Offset, e.Length, e.BufLen)
}

func (e *WindowError) Is(target error) bool { return target == ErrInvalidWindow }

// Report carries both validator verdicts and the resulting type.
type Report struct {
	Type   DataType `json:"type"`
	AFP    Verdict  `json:"afp"`
	SCS    Verdict  `json:"scs"`
	Length int      `json:"length"`
}
