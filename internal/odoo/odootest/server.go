// Package odootest provides an in-process fake Odoo server for tests.
package odootest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// Request is a recorded JSON-2 call.
type Request struct {
	Model  string
	Method string
	Header http.Header
	Raw    []byte
	Body   map[string]any
}

// HandlerFunc produces the status code and raw body for a call.
type HandlerFunc func(Request) (int, string)

type user struct {
	password string
	uid      int64
}

// Server records JSON-2 calls and answers them from registered handlers.
// Calls without a handler get 404 "Not Found".
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	handlers map[string]HandlerFunc
	users    map[string]user
	apiKey   string
	authFn   HandlerFunc
}

// NewServer starts a fake server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		handlers: make(map[string]HandlerFunc),
		users:    make(map[string]user),
	}

	r := mux.NewRouter()
	r.HandleFunc("/json/2/{model}/{method}", s.serveCall).Methods(http.MethodPost)
	r.HandleFunc("/web/session/authenticate", s.serveAuth).Methods(http.MethodPost)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)

	return s
}

func key(model, method string) string {
	return model + "/" + method
}

// Handle answers model/method with a fixed status and body.
func (s *Server) Handle(model, method string, status int, body string) {
	s.HandleFunc(model, method, func(Request) (int, string) {
		return status, body
	})
}

// HandleJSON answers model/method with 200 and v encoded as JSON.
func (s *Server) HandleJSON(model, method string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	s.Handle(model, method, http.StatusOK, string(data))
}

// HandleFunc registers fn for model/method.
func (s *Server) HandleFunc(model, method string, fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers[key(model, method)] = fn
}

// RequireAPIKey makes JSON-2 calls without "Bearer <apiKey>" fail with 401.
func (s *Server) RequireAPIKey(apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apiKey = apiKey
}

// AddUser lets login/password authenticate as uid.
func (s *Server) AddUser(login, password string, uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[login] = user{password: password, uid: uid}
}

// HandleAuth overrides the session authentication reply.
func (s *Server) HandleAuth(fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authFn = fn
}

// Requests returns every recorded JSON-2 call in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

// RequestsFor returns the recorded calls for model/method.
func (s *Server) RequestsFor(model, method string) []Request {
	var out []Request

	for _, r := range s.Requests() {
		if r.Model == model && r.Method == method {
			out = append(out, r)
		}
	}

	return out
}

func (s *Server) serveCall(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	raw, _ := io.ReadAll(r.Body)

	req := Request{
		Model:  vars["model"],
		Method: vars["method"],
		Header: r.Header.Clone(),
		Raw:    raw,
	}
	_ = json.Unmarshal(raw, &req.Body)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	fn := s.handlers[key(req.Model, req.Method)]
	apiKey := s.apiKey
	s.mu.Unlock()

	if apiKey != "" && r.Header.Get("Authorization") != "Bearer "+apiKey {
		http.Error(w, `{"name":"werkzeug.exceptions.Unauthorized","message":"Invalid apikey"}`, http.StatusUnauthorized)
		return
	}

	if fn == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	status, body := fn(req)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (s *Server) serveAuth(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	var env struct {
		ID     any `json:"id"`
		Params struct {
			DB       string `json:"db"`
			Login    string `json:"login"`
			Password string `json:"password"`
		} `json:"params"`
	}
	_ = json.Unmarshal(raw, &env)

	s.mu.Lock()
	fn := s.authFn
	u, known := s.users[env.Params.Login]
	s.mu.Unlock()

	if fn != nil {
		status, body := fn(Request{Method: "authenticate", Header: r.Header.Clone(), Raw: raw})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)

		return
	}

	reply := map[string]any{"jsonrpc": "2.0", "id": env.ID}

	if known && u.password == env.Params.Password {
		reply["result"] = map[string]any{
			"uid":      u.uid,
			"username": env.Params.Login,
			"name":     env.Params.Login,
			"db":       env.Params.DB,
		}
	} else {
		reply["error"] = map[string]any{
			"code":    200,
			"message": "Odoo Server Error",
			"data": map[string]any{
				"name":    "odoo.exceptions.AccessDenied",
				"message": "Access Denied",
			},
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reply)
}
