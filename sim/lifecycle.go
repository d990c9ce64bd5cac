package sim

import (
	"slices"

	"github.com/viltered/mycelium/components"
	"github.com/viltered/mycelium/grid"
)

// Totals are monotonic lifetime counters of the World, used by telemetry to
// derive per-window event rates. They only ever increase.
type Totals struct {
	MoldsCreated     int
	MoldsDied        int
	SporesPlanted    int
	SporesGerminated int
	SporesLost       int
}

// Totals returns the lifetime event counters.
func (w *World) Totals() Totals {
	return w.totals
}

// killMold processes one starved mold: its cells return to Empty, then its
// spores resolve in ascending id order. Active spores germinate in place;
// Dormant ones are lost with the parent.
func (w *World) killMold(id components.MoldID) {
	entity := w.molds[id]
	body := w.bodyMap.Get(entity)
	for _, cell := range body.Cells {
		w.grid.Clear(cell.At)
	}

	var owned []components.SporeID
	for _, sid := range w.sporeIDs {
		if w.podMap.Get(w.spores[sid]).Parent == id {
			owned = append(owned, sid)
		}
	}

	w.moldMapper.Remove(entity)
	delete(w.molds, id)
	w.moldIDs = removeID(w.moldIDs, id)
	w.totals.MoldsDied++

	for _, sid := range owned {
		w.resolveSpore(sid)
	}
}

// resolveSpore settles a spore whose parent just died. If the site still
// holds this spore and the pod is Active, the site seeds a new single-cell
// mold with the spore's genome; otherwise the spore is simply discarded.
// Either way the spore entity is destroyed.
func (w *World) resolveSpore(sid components.SporeID) {
	entity := w.spores[sid]
	pod := w.podMap.Get(entity)
	gen := w.genMap.Get(entity)

	germinate := false
	if occ := w.grid.Occupant(pod.Site); occ.Kind == grid.SporeSite && occ.Spore == pod.ID {
		w.grid.Clear(pod.Site)
		germinate = pod.Phase == components.Active
	}
	site, facing, genome := pod.Site, pod.Facing, gen.Genome

	w.sporeMapper.Remove(entity)
	delete(w.spores, sid)
	w.sporeIDs = removeID(w.sporeIDs, sid)

	if germinate {
		w.spawnMold(site, facing, genome, 0)
		w.totals.SporesGerminated++
	} else {
		w.totals.SporesLost++
	}
}

// removeID deletes id from a sorted id slice, preserving order.
func removeID[T ~uint32](ids []T, id T) []T {
	i, ok := slices.BinarySearch(ids, id)
	if !ok {
		return ids
	}
	return append(ids[:i], ids[i+1:]...)
}
