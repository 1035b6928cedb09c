// Package clientip resolves the visitor's IP address behind proxies.
//
// The address is passed to the bot-check verifier and attached to log records.
// Headers are read in the order given (DefaultHeaders unless configured) and
// the TCP peer address is the fallback:
//
//	r.Use(clientip.Middleware())
//	ip := clientip.GetIPFromContext(r.Context())
//
// Only list headers your edge proxy overwrites; anything else can be forged
// by the client.
package clientip
