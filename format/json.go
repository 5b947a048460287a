package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cubes/bag"
	"github.com/dhamidi/cubes/record"
)

// JSONEncoder writes records together with their minimal bag, its power and
// whether the game is feasible for the configured capacity.
type JSONEncoder struct {
	w        io.Writer
	capacity bag.Bag
	records  []record.Record
}

func NewJSONEncoder(w io.Writer, capacity bag.Bag) *JSONEncoder {
	return &JSONEncoder{w: w, capacity: capacity}
}

func (e *JSONEncoder) Encode(records []record.Record) error {
	e.records = records
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildDocument()
	return json.MarshalIndent(data, "", "  ")
}

type jsonDocument struct {
	Capacity    bag.Bag      `json:"capacity"`
	Games       []jsonRecord `json:"games"`
	FeasibleSum int          `json:"feasibleSum"`
	PowerSum    int          `json:"powerSum"`
}

type jsonRecord struct {
	ID         int        `json:"id"`
	Draws      []jsonDraw `json:"draws"`
	MinimalBag bag.Bag    `json:"minimalBag"`
	Power      int        `json:"power"`
	Feasible   bool       `json:"feasible"`
}

type jsonDraw struct {
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`
}

func (e *JSONEncoder) buildDocument() jsonDocument {
	doc := jsonDocument{
		Capacity:    e.capacity,
		Games:       make([]jsonRecord, len(e.records)),
		FeasibleSum: bag.SumFeasibleIDs(e.records, e.capacity),
		PowerSum:    bag.SumPowers(e.records),
	}
	for i, r := range e.records {
		doc.Games[i] = e.buildRecord(r)
	}
	return doc
}

func (e *JSONEncoder) buildRecord(r record.Record) jsonRecord {
	minimal := bag.Minimal(r)
	result := jsonRecord{
		ID:         r.ID,
		Draws:      make([]jsonDraw, len(r.Draws)),
		MinimalBag: minimal,
		Power:      minimal.Power(),
		Feasible:   bag.Feasible(r, e.capacity),
	}
	for i, d := range r.Draws {
		result.Draws[i] = jsonDraw{Red: d.Red(), Green: d.Green(), Blue: d.Blue()}
	}
	return result
}
