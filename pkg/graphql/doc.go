// Package graphql is a small GraphQL-over-HTTP client.
//
// Operations are parsed once with gqlparser when they are declared, so a malformed
// document fails at startup instead of on the first request. When a schema is supplied,
// documents are also validated against it.
//
//	op := graphql.MustParse(`query getLocationsBySearch($keyword: String!) {
//		getLocationsBySearch(keyword: $keyword) { id words }
//	}`)
//	client, _ := graphql.New("https://api.example.com/graphql")
//	res := graphql.Execute[Payload](ctx, client, op, graphql.Vars{"keyword": "syd"})
//	if v, ok := res.Value(); ok { ... }
//
// Queries are retried with backoff on temporary failures (network errors, timeouts,
// 5xx and 408/425/429 responses). Mutations are sent exactly once. An optional circuit
// breaker fails requests fast while the endpoint keeps failing.
//
// Execute returns a Result that is either a decoded value or an ErrorKind describing why
// the call failed, so callers can switch on the failure class without string matching.
package graphql
