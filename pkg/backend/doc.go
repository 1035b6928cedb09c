// Package backend holds the typed operations the widgets send to the dating-site GraphQL
// API: creating a support ticket, subscribing to events and searching locations.
//
// API wraps a graphql.Transport. Every call returns a graphql.Result, and a reply with
// ok=false is reported as graphql.KindRejected carrying the server error code.
package backend
