package telemetry

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
)

func TestNilOutputManagerIsNoOp(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	if err := om.WriteStats(KindStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteWorld(1, nil); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesStats(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for tick := int32(1); tick <= 3; tick++ {
		for _, kind := range components.Kinds {
			if err := om.WriteStats(KindStats{Kind: kind, Time: tick, Population: int(tick)}); err != nil {
				t.Fatalf("WriteStats: %v", err)
			}
		}
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	const header = "time,energy,population,deaths,average_deaths,average_alive_lifetime," +
		"average_lifespan,average_reproduction_threshold,average_taste"

	for _, name := range []string{"food_data.csv", "bug_data.csv"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		sc := bufio.NewScanner(f)
		if !sc.Scan() {
			f.Close()
			t.Fatalf("%s: missing header", name)
		}
		if got := sc.Text(); got != header {
			f.Close()
			t.Fatalf("%s header = %q, want %q", name, got, header)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			t.Fatalf("seek %s: %v", name, err)
		}
		var rows []KindStats
		err = gocsv.UnmarshalFile(f, &rows)
		f.Close()
		if err != nil {
			t.Fatalf("unmarshal %s: %v", name, err)
		}
		if len(rows) != 3 {
			t.Fatalf("%s: expected 3 rows (one header), got %d", name, len(rows))
		}
		if rows[2].Time != 3 || rows[2].Population != 3 {
			t.Errorf("%s: last row = %+v", name, rows[2])
		}
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not loadable: %v", err)
	}
}

func TestOutputManagerWritesWorldDump(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	orgs := []components.OrganismSnapshot{
		{Kind: components.KindFood, X: 1, Y: 2, Energy: 20, Taste: 180},
		{Kind: components.KindBug, X: 1, Y: 2, Energy: 30, Taste: 90, Lifetime: 4},
	}
	if err := om.WriteWorld(40, orgs); err != nil {
		t.Fatalf("WriteWorld: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, WorldDataDir, "40.csv"))
	if err != nil {
		t.Fatalf("open dump: %v", err)
	}
	defer f.Close()

	var got []components.OrganismSnapshot
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatalf("unmarshal dump: %v", err)
	}
	if len(got) != 2 || got[1] != orgs[1] {
		t.Errorf("dump = %+v, want %+v", got, orgs)
	}
}

func TestOutputManagerWritesGenes(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	h := NewGeneHistogram(2)
	orgs := []components.OrganismSnapshot{{ReproductionThreshold: 50, Taste: 10}}
	for tick := int32(1); tick <= 2; tick++ {
		if err := om.WriteGenes(h.Observe(nil, tick, components.KindFood, orgs, 180)); err != nil {
			t.Fatalf("WriteGenes: %v", err)
		}
	}
	om.Close()

	f, err := os.Open(filepath.Join(dir, "genes.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []GeneBin
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("unmarshal genes: %v", err)
	}
	if len(rows) != 8 {
		t.Errorf("expected 8 rows, got %d", len(rows))
	}
}
