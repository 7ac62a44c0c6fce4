// Package directory holds the static hospital/unit/organization lookup.
// It is loaded once at process start and read-only afterwards.
package directory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"callforecast/internal/model"
)

// ErrDuplicateUnit is returned when two directory rows share a unit name.
// Unit names are the forecasting key and must be unique.
var ErrDuplicateUnit = errors.New("duplicate unit name in directory")

// Directory maps unit names to their hospital and organization identity.
type Directory struct {
	units map[string]model.DirectoryEntry
}

// New builds a directory from entries, rejecting duplicate unit names.
func New(entries []model.DirectoryEntry) (*Directory, error) {
	units := make(map[string]model.DirectoryEntry, len(entries))
	for _, e := range entries {
		if _, ok := units[e.UnitName]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUnit, e.UnitName)
		}
		units[e.UnitName] = e
	}
	return &Directory{units: units}, nil
}

// OrganizationID resolves a unit name to its organization identifier.
func (d *Directory) OrganizationID(unit string) (int64, bool) {
	e, ok := d.units[unit]
	return e.OrganizationID, ok
}

// Entry returns the full directory row for a unit.
func (d *Directory) Entry(unit string) (model.DirectoryEntry, bool) {
	e, ok := d.units[unit]
	return e, ok
}

// Entries returns all rows sorted by hospital then unit name.
func (d *Directory) Entries() []model.DirectoryEntry {
	entries := make([]model.DirectoryEntry, 0, len(d.units))
	for _, e := range d.units {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].HospitalName != entries[j].HospitalName {
			return entries[i].HospitalName < entries[j].HospitalName
		}
		return entries[i].UnitName < entries[j].UnitName
	})
	return entries
}

// Len returns the number of units.
func (d *Directory) Len() int {
	return len(d.units)
}

// LoadCSV reads directory rows from CSV with a required header
// `organization_id,hospital_name,unit_name`.
func LoadCSV(r io.Reader) (*Directory, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading directory header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"organization_id", "hospital_name", "unit_name"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("directory is missing column %q", required)
		}
	}

	var entries []model.DirectoryEntry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading directory line %d: %w", line, err)
		}

		orgID, err := strconv.ParseInt(record[col["organization_id"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("directory line %d: invalid organization_id %q", line, record[col["organization_id"]])
		}
		entries = append(entries, model.DirectoryEntry{
			OrganizationID: orgID,
			HospitalName:   record[col["hospital_name"]],
			UnitName:       record[col["unit_name"]],
		})
	}

	return New(entries)
}

// LoadCSVFile reads a directory CSV from disk.
func LoadCSVFile(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return LoadCSV(f)
}
