package models

// FieldID identifies one column extracted from a store page.
type FieldID string

const (
	FieldPrice            FieldID = "price"
	FieldReleaseDate      FieldID = "release_date"
	FieldDev              FieldID = "dev"
	FieldMetascore        FieldID = "metascore"
	FieldReviewsCount     FieldID = "reviews_count"
	FieldReviewsTone      FieldID = "reviews_tone"
	FieldRussianVoiceover FieldID = "russian_voiceover"
	FieldTags             FieldID = "tags"
	FieldPegi             FieldID = "pegi"
	FieldPlayed           FieldID = "played"
	FieldDetailURL        FieldID = "detail_url"
)

// FieldOrder is the canonical column order of the output table. Every
// GameRecord carries exactly one value per entry, success or not.
var FieldOrder = []FieldID{
	FieldPrice,
	FieldReleaseDate,
	FieldDev,
	FieldMetascore,
	FieldReviewsCount,
	FieldReviewsTone,
	FieldRussianVoiceover,
	FieldTags,
	FieldPegi,
	FieldPlayed,
	FieldDetailURL,
}

type FieldState int

const (
	StateFound FieldState = iota
	StateNotFound
	StateError
)

// FieldValue is the tagged outcome of a single field extraction.
type FieldValue struct {
	State FieldState
	Text  string
}

func Found(text string) FieldValue {
	return FieldValue{State: StateFound, Text: text}
}

func NotFound() FieldValue {
	return FieldValue{State: StateNotFound}
}

func ExtractionError(field FieldID) FieldValue {
	return FieldValue{State: StateError, Text: string(field)}
}

// Display normalizes the tagged value to the string written into the table.
func (v FieldValue) Display() string {
	switch v.State {
	case StateFound:
		return v.Text
	case StateError:
		return "Error extracting " + v.Text
	default:
		return "not found"
	}
}

type Status string

const (
	StatusSuccess      Status = "Success"
	StatusSearchFailed Status = "Search failed"
	StatusParseFailed  Status = "Parse failed"
)

// GameRecord is one output row. Assembled once per input name and never
// mutated afterwards.
type GameRecord struct {
	GameName  string
	Status    Status
	DetailURL string
	Fields    map[FieldID]FieldValue
}

// NewGameRecord returns a record with every declared field pre-filled as
// NotFound, so failure paths still produce a schema-complete row.
func NewGameRecord(name string, status Status) *GameRecord {
	fields := make(map[FieldID]FieldValue, len(FieldOrder))
	for _, id := range FieldOrder {
		fields[id] = NotFound()
	}
	return &GameRecord{
		GameName: name,
		Status:   status,
		Fields:   fields,
	}
}

// Row flattens the record into output-column order: game_name, status, then
// one cell per declared field.
func (r *GameRecord) Row() []string {
	row := make([]string, 0, 2+len(FieldOrder))
	row = append(row, r.GameName, string(r.Status))
	for _, id := range FieldOrder {
		row = append(row, r.Fields[id].Display())
	}
	return row
}

// Columns returns the header row matching Row.
func Columns() []string {
	cols := make([]string, 0, 2+len(FieldOrder))
	cols = append(cols, "game_name", "status")
	for _, id := range FieldOrder {
		cols = append(cols, string(id))
	}
	return cols
}
