package telemetry

import (
	"testing"

	"github.com/viltered/mycelium/sim"
)

// ---------- window boundaries ----------

func TestCollector_ShouldFlushAtWindowEnd(t *testing.T) {
	c := NewCollector(64)
	if c.ShouldFlush(63) {
		t.Error("flush requested one tick early")
	}
	if !c.ShouldFlush(64) {
		t.Error("flush not requested at window end")
	}
}

func TestCollector_MinimumWindowIsOneTick(t *testing.T) {
	c := NewCollector(0)
	if c.WindowTicks() != 1 {
		t.Errorf("window = %d ticks, want clamp to 1", c.WindowTicks())
	}
}

// ---------- counter differencing ----------

func TestCollector_FlushDiffsTotals(t *testing.T) {
	c := NewCollector(100)

	first := c.Flush(Sample{
		Tick:   100,
		Molds:  10,
		Spores: 3,
		Cells:  40,
		Light:  16,
		Totals: sim.Totals{MoldsCreated: 12, MoldsDied: 2, SporesPlanted: 5, SporesGerminated: 1, SporesLost: 1},
	})
	if first.Births != 12 || first.Deaths != 2 {
		t.Errorf("first window births/deaths = %d/%d, want 12/2", first.Births, first.Deaths)
	}
	if first.WindowStartTick != 0 || first.WindowEndTick != 100 {
		t.Errorf("first window = [%d, %d], want [0, 100]", first.WindowStartTick, first.WindowEndTick)
	}
	if first.CellsPerMold != 4.0 {
		t.Errorf("cells per mold = %f, want 4", first.CellsPerMold)
	}

	second := c.Flush(Sample{
		Tick:   200,
		Molds:  11,
		Totals: sim.Totals{MoldsCreated: 15, MoldsDied: 4, SporesPlanted: 9, SporesGerminated: 3, SporesLost: 2},
	})
	if second.Births != 3 || second.Deaths != 2 {
		t.Errorf("second window births/deaths = %d/%d, want 3/2", second.Births, second.Deaths)
	}
	if second.SporesPlanted != 4 || second.Germinations != 2 || second.SporesLost != 1 {
		t.Errorf("second window spore events = %d/%d/%d, want 4/2/1",
			second.SporesPlanted, second.Germinations, second.SporesLost)
	}
	if second.WindowStartTick != 100 {
		t.Errorf("second window starts at %d, want 100", second.WindowStartTick)
	}
}

func TestCollector_FlushWithNoMolds(t *testing.T) {
	c := NewCollector(10)
	stats := c.Flush(Sample{Tick: 10})
	if stats.CellsPerMold != 0 {
		t.Errorf("cells per mold with no molds = %f, want 0", stats.CellsPerMold)
	}
	if stats.EnergyMean != 0 {
		t.Errorf("energy mean with no samples = %f, want 0", stats.EnergyMean)
	}
}
