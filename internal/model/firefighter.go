package model

import "slices"

// Firefighter is a member of the brigade roster.
type Firefighter struct {
	ID           int    `json:"id"`
	NazwiskoImie string `json:"nazwisko_imie"`
	Stopien      string `json:"stopien"`
	Stanowisko   string `json:"stanowisko"`
	Jednostka    string `json:"jednostka"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// FirefighterInput is the create/update payload.
type FirefighterInput struct {
	NazwiskoImie string `json:"nazwisko_imie"`
	Stopien      string `json:"stopien"`
	Stanowisko   string `json:"stanowisko"`
	Jednostka    string `json:"jednostka"`
}

// Input converts a stored firefighter into its editable form.
func (f Firefighter) Input() FirefighterInput {
	return FirefighterInput{
		NazwiskoImie: f.NazwiskoImie,
		Stopien:      f.Stopien,
		Stanowisko:   f.Stanowisko,
		Jednostka:    f.Jednostka,
	}
}

// FirefighterList is the body of GET /api/firefighters/.
type FirefighterList struct {
	Firefighters []Firefighter `json:"firefighters"`
	Skip         int           `json:"skip"`
	Limit        int           `json:"limit"`
	Count        int           `json:"count"`
}

// FirefighterMutation is returned by create and update.
type FirefighterMutation struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Firefighter Firefighter `json:"firefighter"`
}

// ImportResult summarises a roster spreadsheet import.
type ImportResult struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	CreatedCount int      `json:"created_count"`
	SkippedCount int      `json:"skipped_count"`
	Errors       []string `json:"errors"`
}

// Ranks is the fixed list of State Fire Service ranks offered by the editor,
// lowest first.
var Ranks = []string{
	"Strażak",
	"Starszy strażak",
	"Sekcyjny",
	"Starszy sekcyjny",
	"Młodszy ogniomistrz",
	"Ogniomistrz",
	"Starszy ogniomistrz",
	"Młodszy aspirant",
	"Aspirant",
	"Starszy aspirant",
	"Aspirant sztabowy",
	"Młodszy kapitan",
	"Kapitan",
	"Starszy kapitan",
	"Młodszy brygadier",
	"Brygadier",
	"Starszy brygadier",
	"Nadbrygadier",
	"Generał brygadier",
}

// Positions is the fixed list of roles (stanowiska) offered by the editor.
var Positions = []string{
	"Stażysta",
	"Młodszy ratownik",
	"Ratownik",
	"Starszy ratownik",
	"Młodszy operator sprzętu",
	"Operator sprzętu",
	"Starszy operator sprzętu",
	"Dowódca zastępu",
	"Dowódca sekcji",
	"Zastępca dowódcy zmiany",
	"Dowódca zmiany",
	"Zastępca dowódcy JRG",
	"Dowódca JRG",
}

// IsRank reports whether s is one of Ranks.
func IsRank(s string) bool { return slices.Contains(Ranks, s) }

// IsPosition reports whether s is one of Positions.
func IsPosition(s string) bool { return slices.Contains(Positions, s) }
