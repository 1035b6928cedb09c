// Package modules mounts the widget services under one router.
package modules

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// Mount paths. A service's Config.Action must match where it is mounted.
const (
	ContactPath   = "/contact"
	SubscribePath = "/subscribe"
	JoinPath      = "/join"
)

// RouterOptions selects the widgets to serve. Each one is optional and is
// only mounted when provided.
type RouterOptions struct {
	Contact   Mountable
	Subscribe Mountable
	Join      Mountable
}

// Router creates the widget router.
//
// Example:
//
//	contactSvc := contact.NewService(contact.Config{Action: "/widgets/contact"}, api, catalog)
//	joinSvc := join.NewService(join.Config{Action: "/widgets/join"}, api, catalog)
//
//	r := chi.NewRouter()
//	r.Mount("/widgets", modules.Router(modules.RouterOptions{
//	    Contact: contactSvc,
//	    Join:    joinSvc,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Contact != nil {
		r.Mount(ContactPath, opts.Contact.Handle())
	}
	if opts.Subscribe != nil {
		r.Mount(SubscribePath, opts.Subscribe.Handle())
	}
	if opts.Join != nil {
		r.Mount(JoinPath, opts.Join.Handle())
	}

	return r
}
