// Package backendtest runs an in-process GraphQL server that answers the widget
// operations with canned replies.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/dmitrymomot/widgetkit/pkg/graphql"
)

// Call is a request received by the server.
type Call struct {
	Operation string
	Variables map[string]any
}

// Reply produces the JSON body for a call. Status 0 means 200.
type Reply func(call Call) (status int, body string)

// Server is a fake GraphQL endpoint keyed by operation name.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	replies map[string]Reply
	calls   []Call
}

// New starts a server. Unknown operations get a GraphQL error reply.
func New() *Server {
	s := &Server{replies: make(map[string]Reply)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle sets the reply for operation.
func (s *Server) Handle(operation string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[operation] = reply
}

// HandleData replies with {"data": data} for operation.
func (s *Server) HandleData(operation string, data any) {
	body, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		panic(err)
	}
	s.Handle(operation, func(Call) (int, string) { return http.StatusOK, string(body) })
}

// Calls returns the received calls in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallsTo returns the received calls of one operation.
func (s *Server) CallsTo(operation string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Operation == operation {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	var req graphql.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	call := Call{Operation: req.OperationName, Variables: req.Variables}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	reply, ok := s.replies[req.OperationName]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"unknown operation"}]}`))
		return
	}

	status, body := reply(call)
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
