package model

// Conventional census column names. The feature schema decides which of
// these a trained model actually consumes; nothing outside test fixtures
// assumes this exact set.
const (
	CensusRoomsWithPatients   = "rooms_with_patients"
	CensusSuspendedRooms      = "suspended_rooms_with_patients"
	CensusOfflineRooms        = "offline_rooms_with_patients"
	CensusUnpluggedRooms      = "unplugged_rooms_with_patients"
	CensusLowBatteryRooms     = "low_battery_rooms_with_patients"
)

// UnitCensus maps census column names to room counts for a single unit.
type UnitCensus map[string]int

// CensusInput maps unit names to their census, covering one forecast request.
type CensusInput map[string]UnitCensus

// DirectoryEntry is one row of the static hospital directory.
type DirectoryEntry struct {
	OrganizationID int64  `json:"organization_id"`
	HospitalName   string `json:"hospital_name"`
	UnitName       string `json:"unit_name"`
}

// DefaultCategories is the call-category order the bundled demo model was
// trained against. The authoritative list always comes from the loaded
// model artifact; this exists for fixtures and documentation.
var DefaultCategories = []string{"Pain", "Mobility", "Basic Need", "Housekeeping", "Clinical", "Other"}
