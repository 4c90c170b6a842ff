package storage

import (
	"encoding/json"
	"math"

	"github.com/san-kum/eulergrowth/internal/analysis"
	"github.com/san-kum/eulergrowth/internal/dynamo"
)

// jsonFloat encodes NaN and ±Inf as null. null decodes to NaN.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = jsonFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

type runAlias RunMetadata

type paramsJSON struct {
	N0       jsonFloat `json:"n0"`
	Rate     jsonFloat `json:"rate"`
	Dt       jsonFloat `json:"dt"`
	Duration jsonFloat `json:"duration"`
}

type runJSON struct {
	runAlias
	Params       paramsJSON           `json:"params"`
	DoublingTime jsonFloat            `json:"doubling_time,omitempty"`
	Metrics      map[string]jsonFloat `json:"metrics"`
}

func (m RunMetadata) wire() runJSON {
	w := runJSON{
		runAlias: runAlias(m),
		Params: paramsJSON{
			N0:       jsonFloat(m.Params.N0),
			Rate:     jsonFloat(m.Params.Rate),
			Dt:       jsonFloat(m.Params.Dt),
			Duration: jsonFloat(m.Params.Duration),
		},
		DoublingTime: jsonFloat(m.DoublingTime),
	}
	if m.Metrics != nil {
		w.Metrics = make(map[string]jsonFloat, len(m.Metrics))
		for name, v := range m.Metrics {
			w.Metrics[name] = jsonFloat(v)
		}
	}
	return w
}

func (m RunMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

func (m *RunMetadata) UnmarshalJSON(data []byte) error {
	var w runJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*m = RunMetadata(w.runAlias)
	m.Params = dynamo.Params{
		N0:       float64(w.Params.N0),
		Rate:     float64(w.Params.Rate),
		Dt:       float64(w.Params.Dt),
		Duration: float64(w.Params.Duration),
	}
	m.DoublingTime = float64(w.DoublingTime)
	m.Metrics = nil
	if w.Metrics != nil {
		m.Metrics = make(map[string]float64, len(w.Metrics))
		for name, v := range w.Metrics {
			m.Metrics[name] = float64(v)
		}
	}
	return nil
}

type sampleJSON struct {
	Time     jsonFloat `json:"t"`
	Euler    jsonFloat `json:"euler"`
	Exact    jsonFloat `json:"exact"`
	AbsError jsonFloat `json:"abs_error"`
	RelError jsonFloat `json:"rel_error"`
}

type comparisonJSON struct {
	Samples       []sampleJSON `json:"samples"`
	MaxAbsError   jsonFloat    `json:"max_abs_error"`
	FinalAbsError jsonFloat    `json:"final_abs_error"`
	FinalRelError jsonFloat    `json:"final_rel_error"`
}

func newComparisonJSON(cmp *analysis.Comparison) *comparisonJSON {
	if cmp == nil {
		return nil
	}
	out := &comparisonJSON{
		Samples:       make([]sampleJSON, len(cmp.Samples)),
		MaxAbsError:   jsonFloat(cmp.MaxAbsError),
		FinalAbsError: jsonFloat(cmp.FinalAbsError),
		FinalRelError: jsonFloat(cmp.FinalRelError),
	}
	for i, s := range cmp.Samples {
		out.Samples[i] = sampleJSON{
			Time:     jsonFloat(s.Time),
			Euler:    jsonFloat(s.Euler),
			Exact:    jsonFloat(s.Exact),
			AbsError: jsonFloat(s.AbsError),
			RelError: jsonFloat(s.RelError),
		}
	}
	return out
}
