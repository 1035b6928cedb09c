// Package join implements the join lead-capture widget.
//
// A visitor picks who they are and who they are looking for, then types a
// suburb, town or postcode and picks one of the suggested locations. The
// suggestions come from a debounced location.Lookup owned by the visitor's
// Form. Service exposes the widget:
//
//	GET  /                  widget, starts a session
//	POST /gender            gender pickers
//	POST /location          keystroke, schedules a search
//	POST /location/select   candidate picked
//	POST /location/blur     field lost focus
//	GET  /stream            Datastar stream of the candidate list
//	POST /                  submit, redirects to the product join page
//
// The join page receives gender, seekingGender and location as JSON query
// parameters plus join=true.
package join
