// Package binder fills widget request structs from the incoming HTTP request.
//
// Widgets post either a plain urlencoded form (no script) or the Datastar
// signal store. Each binder handles one source and returns ErrNotApplicable
// for requests it does not understand, so handler.Wrap can chain them:
//
//	type contactRequest struct {
//		Name  string `form:"name" json:"name"`
//		Email string `form:"email" json:"email"`
//		Topic string `query:"subject" json:"subject"`
//	}
//
//	handler.Wrap(submit, handler.WithBinders[handler.Context, contactRequest](
//		binder.Query(), binder.Form(), binder.Signals(),
//	))
//
// Form and Query understand string, integer, float and bool fields, pointers
// to them and slices for repeated keys. Signals uses encoding/json rules.
package binder
