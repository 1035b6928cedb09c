package contact

// Subject is one entry of the subject drop-down. Value is sent to the
// backend, LabelKey names the display text in the message table.
type Subject struct {
	Value    string
	LabelKey string
}

// Subjects in display order. The first entry is the default.
var Subjects = []Subject{
	{Value: "feedback", LabelKey: "subjectFeedback"},
	{Value: "profile", LabelKey: "subjectProfile"},
	{Value: "search", LabelKey: "subjectSearch"},
	{Value: "matches", LabelKey: "subjectMatches"},
	{Value: "contacts", LabelKey: "subjectContacts"},
	{Value: "account", LabelKey: "subjectAccount"},
	{Value: "payment", LabelKey: "subjectPayment"},
	{Value: "privacy", LabelKey: "subjectPrivacy"},
	{Value: "technical", LabelKey: "subjectTechnical"},
	{Value: "scammer", LabelKey: "subjectScammer"},
	{Value: "event", LabelKey: "subjectEvent"},
	{Value: "other", LabelKey: "subjectOther"},
}

// LookupSubject returns the subject with value, falling back to the first
// subject for empty or unknown values such as a mistyped ?subject= link.
func LookupSubject(value string) Subject {
	for _, s := range Subjects {
		if s.Value == value {
			return s
		}
	}
	return Subjects[0]
}
