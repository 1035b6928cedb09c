// Package session keeps server-side state for embedded widgets.
//
// Widgets run inside third-party pages where cookies are unreliable, so the
// session id travels with each request as a form field or Datastar signal.
// A Store maps ids to values of any type, creates them on demand and releases
// them after an idle timeout or when capacity is reached:
//
//	lookups := session.NewFromConfig(cfg.Session,
//		func(id string) *location.Lookup { return location.New(api) },
//		session.WithOnRelease(func(_ string, l *location.Lookup) { l.Close() }),
//	)
//	defer lookups.Close()
//
//	id, lookup, err := lookups.Ensure(req.SessionID)
//
// Ids are random UUIDs. Get rejects anything else with ErrInvalidID.
package session
