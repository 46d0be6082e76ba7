// Package rules evaluates the Islamic legal fasting status (hukum) of a
// day. The engine walks a fixed, priority-ordered rule pipeline over the
// Hijri date and weekday, records a trace of every rule that fired, and
// resolves conflicts through an explicit status rank table.
package rules

// FastingStatus is the legal ruling for fasting on a day. The six values
// are totally ordered by severity; see Rank.
type FastingStatus int

// Status values carry explicit numeric identities. Ordering decisions go
// through the rank table, never through declaration order.
const (
	Mubah           FastingStatus = 0
	Makruh          FastingStatus = 1
	Sunnah          FastingStatus = 2
	SunnahMuakkadah FastingStatus = 3
	Wajib           FastingStatus = 4
	Haram           FastingStatus = 5
)

// statusRank is the single source of truth for conflict resolution between
// statuses: higher rank wins.
var statusRank = map[FastingStatus]int{
	Mubah:           0,
	Makruh:          1,
	Sunnah:          2,
	SunnahMuakkadah: 3,
	Wajib:           4,
	Haram:           5,
}

var statusNames = map[FastingStatus]string{
	Mubah:           "Mubah",
	Makruh:          "Makruh",
	Sunnah:          "Sunnah",
	SunnahMuakkadah: "SunnahMuakkadah",
	Wajib:           "Wajib",
	Haram:           "Haram",
}

// Rank returns the severity rank of the status, ascending from Mubah (0)
// to Haram (5).
func (s FastingStatus) Rank() int { return statusRank[s] }

// Outranks reports whether s resolves above other in a conflict.
func (s FastingStatus) Outranks(other FastingStatus) bool {
	return statusRank[s] > statusRank[other]
}

func (s FastingStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsHaram reports whether fasting is forbidden.
func (s FastingStatus) IsHaram() bool { return s == Haram }

// IsWajib reports whether fasting is obligatory.
func (s FastingStatus) IsWajib() bool { return s == Wajib }

// IsSunnah reports whether fasting is recommended (plain or emphasized).
func (s FastingStatus) IsSunnah() bool { return s == Sunnah || s == SunnahMuakkadah }

// IsMakruh reports whether fasting is disliked.
func (s FastingStatus) IsMakruh() bool { return s == Makruh }

// IsMubah reports whether fasting is neutrally permissible.
func (s FastingStatus) IsMubah() bool { return s == Mubah }

// FastingType identifies the canonical reason a status was assigned. It is
// an open set keyed by name, so custom rules can contribute their own types
// without touching this package.
type FastingType string

// Built-in fasting types.
const (
	TypeRamadhan          FastingType = "Ramadhan"
	TypeArafah            FastingType = "Arafah"
	TypeTasua             FastingType = "Tasua"
	TypeAshura            FastingType = "Ashura"
	TypeAyyamulBidh       FastingType = "AyyamulBidh"
	TypeMonday            FastingType = "Monday"
	TypeThursday          FastingType = "Thursday"
	TypeShawwal           FastingType = "Shawwal"
	TypeDaud              FastingType = "Daud"
	TypeEidAlFitr         FastingType = "EidAlFitr"
	TypeEidAlAdha         FastingType = "EidAlAdha"
	TypeTashriq           FastingType = "Tashriq"
	TypeFridayExclusive   FastingType = "FridayExclusive"
	TypeSaturdayExclusive FastingType = "SaturdayExclusive"
)

// Madhab selects a school of jurisprudence. The four Sunni schools agree on
// every rule this engine implements (including the weekday-isolation makruh
// rule), so the selector currently has no behavioral effect; it is part of
// the context so rulings that do diverge can be added without an API break.
type Madhab int

const (
	Shafi Madhab = iota
	Hanafi
	Maliki
	Hanbali
)

var madhabNames = map[Madhab]string{
	Shafi:   "Shafi",
	Hanafi:  "Hanafi",
	Maliki:  "Maliki",
	Hanbali: "Hanbali",
}

func (m Madhab) String() string {
	if name, ok := madhabNames[m]; ok {
		return name
	}
	return "Unknown"
}

// MadhabByName resolves a madhab identifier as used in config files and CLI
// flags.
func MadhabByName(name string) (Madhab, bool) {
	switch name {
	case "shafi":
		return Shafi, true
	case "hanafi":
		return Hanafi, true
	case "maliki":
		return Maliki, true
	case "hanbali":
		return Hanbali, true
	default:
		return Shafi, false
	}
}

// DaudStrategy decides what happens to a Daud fasting turn that lands on a
// Haram day.
type DaudStrategy int

const (
	// Skip forfeits the turn: the day is consumed and the alternation
	// continues as if the fast had happened.
	Skip DaudStrategy = iota

	// Postpone carries the turn over to the next permissible day.
	Postpone
)

func (d DaudStrategy) String() string {
	if d == Postpone {
		return "Postpone"
	}
	return "Skip"
}

// StrategyByName resolves a strategy identifier as used in config files and
// CLI flags.
func StrategyByName(name string) (DaudStrategy, bool) {
	switch name {
	case "skip":
		return Skip, true
	case "postpone":
		return Postpone, true
	default:
		return Skip, false
	}
}
