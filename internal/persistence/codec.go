// Package persistence provides the whole-state save/load contract and the
// SQLite-backed snapshot store.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/seralo/citysim/internal/city"
)

// snapshotVersion tags the blob format.
const snapshotVersion = 1

type snapshotEnvelope struct {
	Version int             `json:"version"`
	City    json.RawMessage `json:"city"`
}

// Encode serializes the City State into an opaque blob.
func Encode(st *city.State) ([]byte, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode city state: %w", err)
	}
	return json.Marshal(snapshotEnvelope{Version: snapshotVersion, City: raw})
}

// Decode restores a City State from a blob. Unknown fields are ignored and
// missing fields keep their documented initial values; a snapshot from an
// older (or newer) writer still loads. Only a structurally unreadable blob
// errors.
func Decode(blob []byte) (*city.State, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("decode snapshot envelope: %w", err)
	}
	if env.Version != snapshotVersion {
		slog.Warn("snapshot version mismatch, loading with defaults for unknown fields",
			"found", env.Version, "expected", snapshotVersion)
	}

	// Start from initial values so absent fields default instead of zeroing.
	st := city.NewState()
	if len(env.City) > 0 {
		if err := json.Unmarshal(env.City, st); err != nil {
			return nil, fmt.Errorf("decode city state: %w", err)
		}
	}

	// Loaded data honors the same invariants as live data.
	sanitize(st)
	return st, nil
}

func sanitize(st *city.State) {
	if st.Date.Year < 1 {
		st.Date.Year = 1
	}
	if st.Date.Month < 1 || st.Date.Month > 12 {
		st.Date.Month = 1
	}
	if st.Date.Week < 1 || st.Date.Week > 4 {
		st.Date.Week = 1
	}
	if st.TaxRates.Citizen <= 0 {
		st.TaxRates.Citizen = city.NewState().TaxRates.Citizen
	}
	if st.TaxRates.Corporate <= 0 {
		st.TaxRates.Corporate = city.NewState().TaxRates.Corporate
	}
	if st.Support == nil {
		st.Support = make(map[string]*city.FactionStanding)
	}
	st.ClampAll()
}
