package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID accepts both numeric and string identifiers on the wire.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("backend: invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Int returns the numeric form of the id, if it has one.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

// Location is a place returned by the location search, kept exactly as received.
type Location struct {
	ID          ID      `json:"id"`
	Words       string  `json:"words"`
	CountryName string  `json:"countryName"`
	RegionName  string  `json:"regionName"`
	PlaceName   string  `json:"placeName"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
}

// Label is the text shown in the candidate list.
func (l Location) Label() string {
	if l.RegionName == "" {
		return l.Words
	}
	return l.Words + ", " + l.RegionName
}

// TicketInput is the payload of createNonLoginTicket.
type TicketInput struct {
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	EmailAddress string `json:"emailAddress"`
}

// Ticket is a created support ticket.
type Ticket struct {
	OK bool `json:"ok"`
	ID ID   `json:"id"`
}

// SubscribeInput is the payload of subscribeEvent.
type SubscribeInput struct {
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
	State        string `json:"state"`
}

// Subscription is the reply of subscribeEvent.
type Subscription struct {
	OK        bool   `json:"ok"`
	ErrorCode string `json:"errorCode"`
}
