package odoo

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/jhoicas/appwms-api/pkg/config"
)

// call registrada por el ERP falso.
type rpcCall struct {
	Service string
	Model   string
	Method  string
	Args    []any
	Kwargs  map[string]any
}

// handlerFunc responde una llamada a execute_kw; un *rpcError se devuelve como fallo.
type handlerFunc func(model, method string, args []any, kwargs map[string]any) (any, *rpcError)

type fakeERP struct {
	t       *testing.T
	srv     *httptest.Server
	handler handlerFunc

	mu    sync.Mutex
	calls []rpcCall
}

func newFakeERP(t *testing.T, h handlerFunc) (*fakeERP, *Client) {
	t.Helper()
	f := &fakeERP{t: t, handler: h}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	c := NewClient(config.ERPConfig{
		URL:      f.srv.URL + "/",
		DB:       "wms",
		User:     "api",
		Password: "secret",
		Timeout:  5 * time.Second,
	})
	return f, c
}

func (f *fakeERP) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/jsonrpc" {
		http.NotFound(w, r)
		return
	}
	var req struct {
		ID int64 `json:"id"`
		Params struct {
			Service string `json:"service"`
			Method  string `json:"method"`
			Args    []any  `json:"args"`
		} `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	call := rpcCall{Service: req.Params.Service, Method: req.Params.Method}
	var result any
	var rpcErr *rpcError
	switch {
	case req.Params.Service == "common" && req.Params.Method == "authenticate":
		login, _ := req.Params.Args[1].(string)
		password, _ := req.Params.Args[2].(string)
		result, rpcErr = f.handler("", "authenticate", []any{login, password}, nil)
	case req.Params.Service == "object" && req.Params.Method == "execute_kw":
		a := req.Params.Args
		call.Model, _ = a[3].(string)
		call.Method, _ = a[4].(string)
		call.Args, _ = a[5].([]any)
		call.Kwargs, _ = a[6].(map[string]any)
		result, rpcErr = f.handler(call.Model, call.Method, call.Args, call.Kwargs)
	default:
		rpcErr = &rpcError{Code: 200, Message: "servicio desconocido"}
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// count cuenta las llamadas a model.method.
func (f *fakeERP) count(model, method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Model == model && c.Method == method {
			n++
		}
	}
	return n
}

// last devuelve la última llamada a model.method.
func (f *fakeERP) last(model, method string) (rpcCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if c := f.calls[i]; c.Model == model && c.Method == method {
			return c, true
		}
	}
	return rpcCall{}, false
}

// fault construye un error JSON-RPC con la excepción del ERP.
func fault(name, msg string) *rpcError {
	e := &rpcError{Code: 200, Message: "Odoo Server Error"}
	e.Data.Name = name
	e.Data.Message = msg
	return e
}

// fieldsGet respuesta de fields_get con los campos dados.
func fieldsGet(names ...string) map[string]any {
	out := make(map[string]any, len(names))
	for _, n := range names {
		out[n] = map[string]any{"type": "char"}
	}
	return out
}
