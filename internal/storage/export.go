package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/episim/internal/epidemic"
)

type ExportData struct {
	ID           string             `json:"id,omitempty"`
	Model        string             `json:"model"`
	Seed         int64              `json:"seed"`
	Dt           float64            `json:"dt"`
	Distribution string             `json:"distribution,omitempty"`
	Steps        int                `json:"steps"`
	Labels       []string           `json:"labels"`
	Times        []float64          `json:"times"`
	Counts       [][]int64          `json:"counts"`
	Metrics      map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, rec *epidemic.Record) error {
	data := ExportData{
		Model:   rec.Model,
		Steps:   rec.Steps,
		Labels:  rec.Labels,
		Times:   rec.Times,
		Counts:  rec.Counts,
		Metrics: rec.Metrics,
	}
	if meta != nil {
		data.ID = meta.ID
		data.Seed = meta.Seed
		data.Dt = meta.Dt
		data.Distribution = meta.Distribution
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes one row per time point: time followed by every count.
func ExportCSV(w io.Writer, rec *epidemic.Record) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, rec.Labels...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, counts := range rec.Counts {
		row := make([]string, 0, len(counts)+1)
		row = append(row, strconv.FormatFloat(rec.Times[i], 'f', -1, 64))
		for _, v := range counts {
			row = append(row, strconv.FormatInt(v, 10))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
