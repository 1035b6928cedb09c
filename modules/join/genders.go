package join

import "github.com/dmitrymomot/widgetkit/pkg/messages"

type Gender string

const (
	Female Gender = "female"
	Male   Gender = "male"
)

// GenderItem is the value the product join page expects for both gender
// parameters, e.g. {"type":"female","string":"Woman"}.
type GenderItem struct {
	Type   Gender `json:"type"`
	String string `json:"string"`
}

// Genders are the options of "I am a" and "Looking for a", in display order.
var Genders = []GenderItem{
	{Type: Female, String: "Woman"},
	{Type: Male, String: "Man"},
}

var genderLabelKeys = map[Gender]string{
	Female: "genderFemale",
	Male:   "genderMale",
}

// LookupGender returns the option with the given type.
func LookupGender(v string) (GenderItem, bool) {
	for _, g := range Genders {
		if string(g.Type) == v {
			return g, true
		}
	}
	return GenderItem{}, false
}

// Label is the localized display text of g.
func (g GenderItem) Label(t messages.Table) string {
	if key, ok := genderLabelKeys[g.Type]; ok && t != nil {
		return t.T(key)
	}
	return g.String
}
