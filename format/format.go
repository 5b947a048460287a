// Package format encodes parsed game records for output.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/cubes/bag"
	"github.com/dhamidi/cubes/record"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(records []record.Record) error
}

// NewEncoder returns the encoder registered under name ("json" or "text").
func NewEncoder(name string, w io.Writer, capacity bag.Bag) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w, capacity), nil
	case "text":
		return NewTextEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}

// TextEncoder writes records back in record syntax, one per line.
type TextEncoder struct {
	w       io.Writer
	records []record.Record
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(records []record.Record) error {
	e.records = records
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	if len(e.records) == 0 {
		return nil, nil
	}
	return []byte(record.Format(e.records) + "\n"), nil
}
