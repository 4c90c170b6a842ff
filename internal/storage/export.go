package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/eulergrowth/internal/analysis"
	"github.com/san-kum/eulergrowth/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Comparison *analysis.Comparison `json:"comparison"`
}

// MarshalJSON flattens the run metadata next to the comparison, with
// non-finite values as null.
func (d ExportData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		runJSON
		Comparison *comparisonJSON `json:"comparison"`
	}{d.RunMetadata.wire(), newComparisonJSON(d.Comparison)})
}

func ExportJSON(w io.Writer, meta RunMetadata, traj dynamo.Trajectory) error {
	data := ExportData{
		RunMetadata: meta,
		Comparison:  analysis.Compare(traj, meta.Params.N0, meta.Params.Rate),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
