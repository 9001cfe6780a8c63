package faces

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is the persisted form of one retained identity.
type Record struct {
	ID            string       `json:"identity"`
	SightingCount int          `json:"sighting_count"`
	FramesSeen    []int        `json:"frames_seen"`
	MaxDiagonal   float64      `json:"max_diagonal"`
	CropFile      string       `json:"crop_file"`
	Appearances   []Appearance `json:"appearances"`
}

// Store writes retained identities to a directory: one crop image and one
// history JSON per identity, plus a cast.yaml appearance report covering all
// of them.
type Store struct {
	Dir string
}

func (s *Store) Save(ids []*Identity, fps float64, maxGap int) ([]Record, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(ids))
	for _, p := range ids {
		name := fileStem(p.ID)
		cropFile := ""
		if len(p.Crop) > 0 {
			cropFile = name + ".jpg"
			if err := os.WriteFile(filepath.Join(s.Dir, cropFile), p.Crop, 0o644); err != nil {
				return nil, fmt.Errorf("write crop for %s: %w", p.ID, err)
			}
		}
		rec := Record{
			ID:            p.ID,
			SightingCount: p.SightingCount,
			FramesSeen:    p.FramesSeen,
			MaxDiagonal:   p.MaxDiagonal,
			CropFile:      cropFile,
			Appearances:   Intervals(p, fps, maxGap),
		}
		if err := writeJSON(filepath.Join(s.Dir, name+".json"), rec); err != nil {
			return nil, fmt.Errorf("write record for %s: %w", p.ID, err)
		}
		records = append(records, rec)
	}
	if err := writeCast(filepath.Join(s.Dir, "cast.yaml"), records); err != nil {
		return nil, err
	}
	return records, nil
}

func writeCast(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	defer enc.Close()
	type entry struct {
		Identity    string       `yaml:"identity"`
		Sightings   int          `yaml:"sightings"`
		Appearances []Appearance `yaml:"appearances"`
	}
	cast := make([]entry, 0, len(records))
	for _, r := range records {
		cast = append(cast, entry{Identity: r.ID, Sightings: r.SightingCount, Appearances: r.Appearances})
	}
	return enc.Encode(cast)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fileStem maps "person #3" to "person_3".
func fileStem(id string) string {
	s := strings.ReplaceAll(id, " ", "_")
	return strings.ReplaceAll(s, "#", "")
}
