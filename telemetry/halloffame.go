package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/viltered/mycelium/components"
	"github.com/viltered/mycelium/sim"
)

// HallEntry records a colony at its observed peak size. Genome is the
// compact encoded form, pasteable back into a future run.
type HallEntry struct {
	MoldID    uint32 `json:"mold_id"`
	PeakCells int    `json:"peak_cells"`
	Age       int    `json:"age"`
	Tick      int64  `json:"tick"`
	Genome    string `json:"genome"`
}

// HallOfFame keeps the largest colonies ever observed, one entry per mold.
type HallOfFame struct {
	capacity int
	entries  map[components.MoldID]HallEntry
	floor    int // smallest peak worth encoding once the hall is full
}

// NewHallOfFame creates a hall keeping the top capacity colonies.
func NewHallOfFame(capacity int) *HallOfFame {
	if capacity < 1 {
		capacity = 1
	}
	return &HallOfFame{
		capacity: capacity,
		entries:  make(map[components.MoldID]HallEntry),
	}
}

// Observe offers one living mold at the current tick. encode is only called
// when the mold actually enters or improves its entry, since encoding every
// genome every window would dominate the sampling cost.
func (h *HallOfFame) Observe(info sim.MoldInfo, tick int64, encode func() string) {
	if have, ok := h.entries[info.ID]; ok {
		if info.Cells <= have.PeakCells {
			return
		}
	} else if len(h.entries) >= h.capacity && info.Cells <= h.floor {
		return
	}

	h.entries[info.ID] = HallEntry{
		MoldID:    uint32(info.ID),
		PeakCells: info.Cells,
		Age:       info.Age,
		Tick:      tick,
		Genome:    encode(),
	}
	h.trim()
}

// trim evicts beyond capacity and refreshes the admission floor.
func (h *HallOfFame) trim() {
	if len(h.entries) > h.capacity {
		var worst components.MoldID
		worstCells := -1
		for id, e := range h.entries {
			if worstCells == -1 || e.PeakCells < worstCells ||
				(e.PeakCells == worstCells && id > worst) {
				worst, worstCells = id, e.PeakCells
			}
		}
		delete(h.entries, worst)
	}
	if len(h.entries) >= h.capacity {
		h.floor = 0
		first := true
		for _, e := range h.entries {
			if first || e.PeakCells < h.floor {
				h.floor = e.PeakCells
				first = false
			}
		}
	}
}

// Entries returns the hall sorted by peak size descending, ties by mold id.
func (h *HallOfFame) Entries() []HallEntry {
	out := make([]HallEntry, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PeakCells != out[j].PeakCells {
			return out[i].PeakCells > out[j].PeakCells
		}
		return out[i].MoldID < out[j].MoldID
	})
	return out
}

// MarshalJSON serializes the hall as a sorted entry list.
func (h *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(struct {
		Entries []HallEntry `json:"entries"`
	}{Entries: h.Entries()}, "", "  ")
}
