// Package cache provides a generic, thread-safe LRU cache with optional expiry.
//
// The widgets use it for two things: short-lived location search results keyed by the
// normalized keyword, and the registry of open join-widget sessions, where the evict
// callback releases the session's background lookup.
//
//	results := cache.NewLRUCache[string, []backend.Location](256, time.Minute)
//	results.Put("sydney", locations)
//	if locs, ok := results.Get("sydney"); ok {
//		// fresh hit
//	}
//
// Items leave the cache when capacity is exceeded (least recently used first), when
// their ttl passes, or through Remove and Clear. SetEvictCallback observes all four.
// SetSliding makes reads extend the expiry, which suits session storage.
package cache
