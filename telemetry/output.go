package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/bugsoup/components"
	"github.com/pthm-cable/bugsoup/config"
)

// WorldDataDir is the subdirectory holding per-tick world dumps.
const WorldDataDir = "world_data"

// csvFile appends records to one CSV file, writing the header once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func createCSV(path string) (*csvFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &csvFile{f: f}, nil
}

func (c *csvFile) append(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles experiment output: per-kind statistics, gene
// histograms, world dumps and the resolved configuration.
type OutputManager struct {
	dir   string
	stats [len(components.Kinds)]*csvFile
	genes *csvFile
}

// NewOutputManager creates the output directory and opens the CSV files.
// Returns nil if dir is empty (output disabled); every method is a no-op on
// a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Join(dir, WorldDataDir), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, kind := range components.Kinds {
		f, err := createCSV(filepath.Join(dir, kind.String()+"_data.csv"))
		if err != nil {
			om.Close()
			return nil, err
		}
		om.stats[kind] = f
	}
	f, err := createCSV(filepath.Join(dir, "genes.csv"))
	if err != nil {
		om.Close()
		return nil, err
	}
	om.genes = f

	return om, nil
}

// WriteConfig saves the resolved configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStats appends one row to <kind>_data.csv.
func (om *OutputManager) WriteStats(stats KindStats) error {
	if om == nil {
		return nil
	}
	if err := om.stats[stats.Kind].append([]KindStats{stats}); err != nil {
		return fmt.Errorf("writing %s stats: %w", stats.Kind, err)
	}
	return nil
}

// WriteGenes appends histogram rows to genes.csv.
func (om *OutputManager) WriteGenes(bins []GeneBin) error {
	if om == nil || len(bins) == 0 {
		return nil
	}
	if err := om.genes.append(bins); err != nil {
		return fmt.Errorf("writing genes: %w", err)
	}
	return nil
}

// WriteWorld dumps every organism alive at tick to world_data/<tick>.csv.
func (om *OutputManager) WriteWorld(tick int32, organisms []components.OrganismSnapshot) error {
	if om == nil {
		return nil
	}
	path := filepath.Join(om.dir, WorldDataDir, strconv.Itoa(int(tick))+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating world dump: %w", err)
	}
	if err := gocsv.Marshal(organisms, f); err != nil {
		f.Close()
		return fmt.Errorf("writing world dump: %w", err)
	}
	return f.Close()
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	files := append(om.stats[:], om.genes)
	for _, c := range files {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
