package form

// Choice is one selectable option of a select field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk",
	"Hip-Hop", "Heavy Metal", "Instrumental", "Jazz", "Musical Theatre", "Pop",
	"Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Other",
}

var states = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI", "ID",
	"IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH", "NJ", "NM",
	"NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA",
	"RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

var (
	genreSet = toSet(genres)
	stateSet = toSet(states)
)

func toSet(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

// IsGenre reports whether g is one of the genre choices.
func IsGenre(g string) bool {
	_, ok := genreSet[g]
	return ok
}

// IsState reports whether s is one of the state choices.
func IsState(s string) bool {
	_, ok := stateSet[s]
	return ok
}

// GenreChoices returns the genre options in display order.
func GenreChoices() []Choice {
	return choices(genres)
}

// StateChoices returns the state options in display order.
func StateChoices() []Choice {
	return choices(states)
}

func choices(values []string) []Choice {
	out := make([]Choice, len(values))
	for i, v := range values {
		out[i] = Choice{Value: v, Label: v}
	}
	return out
}
