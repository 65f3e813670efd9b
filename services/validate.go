// services/validate.go
package services

import (
	"math"
	"strings"
	"unicode/utf8"

	"georound-backend/models"
)

// ValidationError names the first field that failed validation. Fields are
// checked in a fixed order and the first failure short-circuits the rest, so
// the client always sees a single, stable message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Request bodies decode into pointer fields so a missing key is
// distinguishable from a zero value. Validation produces the typed records
// below; nothing downstream ever touches the raw input again.

type LocationReportInput struct {
	Token    *string  `json:"token"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Map      *string  `json:"map"`
	Game     *string  `json:"game"`
	Round    *float64 `json:"round"`
	Type     *string  `json:"type"`
	Location *string  `json:"location"`
}

// LocationReport is a fully validated point report.
type LocationReport struct {
	Token    string
	Lat      float64
	Lng      float64
	Map      string
	Game     string
	Round    int
	Type     string
	Location *string
}

type PositionInput struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ResultSubmissionInput struct {
	Token      *string         `json:"token"`
	Game       *string         `json:"game"`
	Map        *string         `json:"map"`
	MapName    *string         `json:"mapName"`
	RoundCount *float64        `json:"roundCount"`
	Moving     *bool           `json:"moving"`
	Zooming    *bool           `json:"zooming"`
	Rotating   *bool           `json:"rotating"`
	TimeLimit  *float64        `json:"timeLimit"`
	Score      *float64        `json:"score"`
	Distance   *float64        `json:"distance"`
	Time       *float64        `json:"time"`
	UserID     *string         `json:"userId"`
	UserNick   *string         `json:"userNick"`
	Rounds     []PositionInput `json:"rounds"`
	Guesses    []PositionInput `json:"guesses"`
}

// ResultSubmission is a fully validated game result. Round and guess
// positions are NOT range-checked here — that happens per point while
// recording, and a bad point aborts only the remaining location writes.
type ResultSubmission struct {
	Token      string
	Game       string
	Map        string
	MapName    string
	RoundCount int
	Moving     bool
	Zooming    bool
	Rotating   bool
	TimeLimit  float64
	Score      float64
	Distance   float64
	Time       float64
	UserID     string
	UserNick   string
	Rounds     []PositionInput
	Guesses    []PositionInput
}

func checkString(s *string, maxLen int, field, message string) (string, *ValidationError) {
	if s == nil || *s == "" {
		return "", invalid(field, message)
	}
	// Length limits count characters, not bytes, so non-ASCII names get
	// the full declared width.
	if maxLen > 0 && utf8.RuneCountInString(*s) > maxLen {
		return "", invalid(field, message)
	}
	return *s, nil
}

func checkNumber(n *float64, min float64, field, message string) (float64, *ValidationError) {
	if n == nil || math.IsNaN(*n) || *n < min {
		return 0, invalid(field, message)
	}
	return *n, nil
}

// checkPositiveNumber admits any value strictly above zero, fractions
// included — elapsed times come in as fractional seconds.
func checkPositiveNumber(n *float64, field, message string) (float64, *ValidationError) {
	if n == nil || math.IsNaN(*n) || *n <= 0 {
		return 0, invalid(field, message)
	}
	return *n, nil
}

func checkBool(b *bool, field, message string) (bool, *ValidationError) {
	if b == nil {
		return false, invalid(field, message)
	}
	return *b, nil
}

// checkPosition range-checks one coordinate pair.
// NOTE: the longitude upper bound compares lat, not lng. Deployed clients
// depend on over-range longitudes being accepted; do not tighten.
func checkPosition(lat, lng float64) *ValidationError {
	if lat < -90 || lat > 90 {
		return invalid("lat", "Invalid latitude")
	}
	if lng < -180 || lat > 180 {
		return invalid("lng", "Invalid longitude")
	}
	return nil
}

var locationTypes = []string{
	models.LocationTypeOriginal,
	models.LocationTypeGuess,
	models.LocationTypeTravel,
	models.LocationTypeBookmark,
}

// ValidateLocationReport checks a point report field by field, in the order
// clients see error messages: token, lat, lng, map, game, round, type.
func ValidateLocationReport(in LocationReportInput) (*LocationReport, *ValidationError) {
	token, verr := checkString(in.Token, 32, "token", "Invalid token")
	if verr != nil {
		return nil, verr
	}

	if in.Lat == nil || *in.Lat < -90 || *in.Lat > 90 {
		return nil, invalid("lat", "Invalid latitude")
	}
	lat := *in.Lat

	// Same quirk as checkPosition: upper bound reads lat.
	if in.Lng == nil || *in.Lng < -180 || lat > 180 {
		return nil, invalid("lng", "Invalid longitude")
	}
	lng := *in.Lng

	mapCode, verr := checkString(in.Map, 32, "map", "Invalid map")
	if verr != nil {
		return nil, verr
	}

	if in.Game == nil || utf8.RuneCountInString(*in.Game) != 16 {
		return nil, invalid("game", "Invalid game")
	}
	game := *in.Game

	if in.Round == nil {
		return nil, invalid("round", "Invalid round")
	}
	round := int(math.Ceil(*in.Round))
	if round <= 0 {
		return nil, invalid("round", "Invalid round")
	}

	typeOK := false
	if in.Type != nil {
		for _, t := range locationTypes {
			if *in.Type == t {
				typeOK = true
				break
			}
		}
	}
	if !typeOK {
		return nil, invalid("type", "Invalid type")
	}

	// The label is the one field that truncates instead of rejecting.
	var label *string
	if in.Location != nil {
		trimmed := strings.TrimSpace(*in.Location)
		if trimmed != "" {
			// Truncate on a rune boundary so a split label stays valid UTF-8
			if utf8.RuneCountInString(trimmed) > 64 {
				trimmed = string([]rune(trimmed)[:64])
			}
			label = &trimmed
		}
	}

	return &LocationReport{
		Token:    token,
		Lat:      lat,
		Lng:      lng,
		Map:      mapCode,
		Game:     game,
		Round:    round,
		Type:     *in.Type,
		Location: label,
	}, nil
}

// ValidateResultSubmission checks a result submission in declared field
// order. The first failing field aborts with its message.
func ValidateResultSubmission(in ResultSubmissionInput) (*ResultSubmission, *ValidationError) {
	out := &ResultSubmission{Rounds: in.Rounds, Guesses: in.Guesses}
	var verr *ValidationError

	if out.Token, verr = checkString(in.Token, 32, "token", "Invalid user token"); verr != nil {
		return nil, verr
	}
	if out.Game, verr = checkString(in.Game, 32, "game", "Invalid game ID"); verr != nil {
		return nil, verr
	}
	roundCount, verr := checkNumber(in.RoundCount, 0, "roundCount", "Invalid number of rounds")
	if verr != nil {
		return nil, verr
	}
	out.RoundCount = int(roundCount)
	if out.Moving, verr = checkBool(in.Moving, "moving", "Invalid moving flag"); verr != nil {
		return nil, verr
	}
	if out.Zooming, verr = checkBool(in.Zooming, "zooming", "Invalid zooming flag"); verr != nil {
		return nil, verr
	}
	if out.Rotating, verr = checkBool(in.Rotating, "rotating", "Invalid rotating flag"); verr != nil {
		return nil, verr
	}
	if out.TimeLimit, verr = checkNumber(in.TimeLimit, 0, "timeLimit", "Invalid time limit"); verr != nil {
		return nil, verr
	}
	if out.Score, verr = checkNumber(in.Score, 0, "score", "Invalid score"); verr != nil {
		return nil, verr
	}
	if out.Distance, verr = checkNumber(in.Distance, 0, "distance", "Invalid distance"); verr != nil {
		return nil, verr
	}
	if out.Time, verr = checkPositiveNumber(in.Time, "time", "Invalid time"); verr != nil {
		return nil, verr
	}
	if out.UserID, verr = checkString(in.UserID, 32, "userId", "Invalid User ID"); verr != nil {
		return nil, verr
	}
	if out.UserNick, verr = checkString(in.UserNick, 128, "userNick", "Invalid nick"); verr != nil {
		return nil, verr
	}
	if out.Map, verr = checkString(in.Map, 32, "map", "Invalid Map ID"); verr != nil {
		return nil, verr
	}
	if out.MapName, verr = checkString(in.MapName, 128, "mapName", "Invalid map name"); verr != nil {
		return nil, verr
	}

	return out, nil
}
