package backend

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/dmitrymomot/widgetkit/pkg/graphql"
)

//go:embed schema.graphql
var schemaSDL string

const (
	createTicketDocument = `mutation createNonLoginTicket($input: AnonymousTicketInput) {
  createNonLoginTicket(input: $input) {
    ok
    id
  }
}`

	subscribeEventDocument = `mutation subscribeEvent($input: SubscribeEventInput) {
  subscribeEvent(input: $input) {
    ok
    errorCode
  }
}`

	searchLocationsDocument = `query getLocationsBySearch($keyword: String!) {
  getLocationsBySearch(keyword: $keyword) {
    id
    words
    countryName
    regionName
    placeName
    longitude
    latitude
  }
}`
)

// Schema returns the subset of the remote schema the widgets rely on.
func Schema() (*ast.Schema, error) {
	return graphql.LoadSchema("schema.graphql", schemaSDL)
}

// API sends the widget operations through a GraphQL transport.
type API struct {
	transport       graphql.Transport
	createTicket    graphql.Operation
	subscribeEvent  graphql.Operation
	searchLocations graphql.Operation
}

// New validates the operation documents against the embedded schema.
func New(transport graphql.Transport) (*API, error) {
	schema, err := Schema()
	if err != nil {
		return nil, err
	}

	api := &API{transport: transport}
	for _, def := range []struct {
		dst *graphql.Operation
		doc string
	}{
		{&api.createTicket, createTicketDocument},
		{&api.subscribeEvent, subscribeEventDocument},
		{&api.searchLocations, searchLocationsDocument},
	} {
		op, err := graphql.ParseWithSchema(schema, def.doc)
		if err != nil {
			return nil, err
		}
		*def.dst = op
	}

	return api, nil
}

// CreateNonLoginTicket creates a support ticket for a visitor who is not logged in.
func (a *API) CreateNonLoginTicket(ctx context.Context, in TicketInput) graphql.Result[Ticket] {
	type payload struct {
		CreateNonLoginTicket *Ticket `json:"createNonLoginTicket"`
	}

	res := graphql.Execute[payload](ctx, a.transport, a.createTicket, graphql.Vars{"input": in})
	return graphql.Map(res, func(p payload) (Ticket, error) {
		if p.CreateNonLoginTicket == nil || !p.CreateNonLoginTicket.OK {
			return Ticket{}, &RejectedError{Operation: a.createTicket.Name}
		}
		if p.CreateNonLoginTicket.ID == "" {
			return Ticket{}, fmt.Errorf("%w: %w", graphql.ErrDecode, ErrNoTicketID)
		}
		return *p.CreateNonLoginTicket, nil
	})
}

// SubscribeEvent subscribes an email address to event announcements for a state.
func (a *API) SubscribeEvent(ctx context.Context, in SubscribeInput) graphql.Result[Subscription] {
	type payload struct {
		SubscribeEvent *Subscription `json:"subscribeEvent"`
	}

	res := graphql.Execute[payload](ctx, a.transport, a.subscribeEvent, graphql.Vars{"input": in})
	return graphql.Map(res, func(p payload) (Subscription, error) {
		if p.SubscribeEvent == nil {
			return Subscription{}, &RejectedError{Operation: a.subscribeEvent.Name}
		}
		if !p.SubscribeEvent.OK {
			return Subscription{}, &RejectedError{Operation: a.subscribeEvent.Name, Code: p.SubscribeEvent.ErrorCode}
		}
		return *p.SubscribeEvent, nil
	})
}

// GetLocationsBySearch returns candidate locations in the order the server ranked them.
func (a *API) GetLocationsBySearch(ctx context.Context, keyword string) graphql.Result[[]Location] {
	type payload struct {
		GetLocationsBySearch []Location `json:"getLocationsBySearch"`
	}

	res := graphql.Execute[payload](ctx, a.transport, a.searchLocations, graphql.Vars{"keyword": keyword})
	return graphql.Map(res, func(p payload) ([]Location, error) {
		if p.GetLocationsBySearch == nil {
			return []Location{}, nil
		}
		return p.GetLocationsBySearch, nil
	})
}

// SearchLocations adapts GetLocationsBySearch to the plain error form.
func (a *API) SearchLocations(ctx context.Context, keyword string) ([]Location, error) {
	return a.GetLocationsBySearch(ctx, keyword).Unwrap()
}
