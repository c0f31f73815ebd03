package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCollectorFlushResetsAndComputesStats(t *testing.T) {
	c := NewCollector(10)

	c.RecordDrop()
	c.RecordDrop()
	c.RecordCell(0.2, 1.0)
	c.RecordCell(0.4, 3.0)

	stats := c.Flush(10, 3, 1.5)

	if stats.DropsSpawned != 2 {
		t.Errorf("expected 2 drops spawned, got %d", stats.DropsSpawned)
	}
	if stats.PlantCount != 3 {
		t.Errorf("expected plant count 3, got %d", stats.PlantCount)
	}
	if got, want := stats.DischargeMean, 0.3; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected discharge mean 0.3, got %v", got)
	}
	if stats.DischargeMax != 0.4 {
		t.Errorf("expected discharge max 0.4, got %v", stats.DischargeMax)
	}

	stats2 := c.Flush(20, 0, 0)
	if stats2.DropsSpawned != 0 {
		t.Errorf("expected counters reset after flush, got %d drops", stats2.DropsSpawned)
	}
}

func TestShouldFlushRespectsWindow(t *testing.T) {
	c := NewCollector(5)
	if c.ShouldFlush(4) {
		t.Errorf("expected no flush before window elapses")
	}
	if !c.ShouldFlush(5) {
		t.Errorf("expected flush once window elapses")
	}
}

func TestPerfCollectorAggregatesPhases(t *testing.T) {
	p := NewPerfCollector(4)

	p.StartTick()
	p.StartPhase(PhaseDescend)
	p.StartPhase(PhaseFilter)
	p.EndTick()

	stats := p.Stats()
	if stats.TicksPerSecond < 0 {
		t.Errorf("expected non-negative throughput")
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 1}); err != nil {
		t.Fatalf("WriteTelemetry: %v", err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 2}); err != nil {
		t.Fatalf("WriteTelemetry: %v", err)
	}
	om.Close()

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 3 {
		t.Errorf("expected 1 header line + 2 data lines, got %d lines", lines)
	}
}

func TestNilOutputManagerIsNoop(t *testing.T) {
	var om *OutputManager
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("expected nil OutputManager to no-op, got %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty dir for nil OutputManager")
	}
}
