package subscribe

// State is an Australian state or territory events can be filtered by.
type State struct {
	Value    string
	LabelKey string
}

// States in display order. ANY, the first entry, is the default.
var States = []State{
	{Value: "ANY", LabelKey: "stateAny"},
	{Value: "NSW", LabelKey: "stateNSW"},
	{Value: "VIC", LabelKey: "stateVIC"},
	{Value: "QLD", LabelKey: "stateQLD"},
	{Value: "WA", LabelKey: "stateWA"},
	{Value: "SA", LabelKey: "stateSA"},
	{Value: "TAS", LabelKey: "stateTAS"},
	{Value: "NT", LabelKey: "stateNT"},
	{Value: "ACT", LabelKey: "stateACT"},
}

// LookupState returns the state with value, or ANY.
func LookupState(value string) State {
	for _, s := range States {
		if s.Value == value {
			return s
		}
	}
	return States[0]
}
