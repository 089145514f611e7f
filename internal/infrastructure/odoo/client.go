package odoo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/pkg/config"
)

// ── Cliente JSON-RPC ──────────────────────────────────────────────────────────

// Client llama al endpoint /jsonrpc del ERP con la cuenta técnica del servicio.
// El uid de la cuenta y los fields_get se guardan tras la primera llamada.
type Client struct {
	endpoint   string
	db         string
	login      string
	password   string
	httpClient *http.Client

	authMu sync.Mutex
	uid    int64

	mu     sync.Mutex
	fields map[string]map[string]string
	xmlids map[string]int64
	seq    atomic.Int64
}

// NewClient construye el cliente. No contacta al ERP hasta la primera llamada.
func NewClient(cfg config.ERPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.URL, "/") + "/jsonrpc",
		db:         cfg.DB,
		login:      cfg.User,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: timeout},
		fields:     make(map[string]map[string]string),
		xmlids:     make(map[string]int64),
	}
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"data"`
}

// call ejecuta service.method y devuelve el result crudo.
func (c *Client) call(ctx context.Context, service, method string, args ...any) (json.RawMessage, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      c.seq.Add(1),
	})
	if err != nil {
		return nil, fmt.Errorf("odoo: serializar petición: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("odoo: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("odoo: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("odoo: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("odoo: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odoo: HTTP %d", resp.StatusCode)
	}

	var out rpcResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("odoo: decodificar respuesta: %w", err)
	}
	if out.Error != nil {
		return nil, classifyFault(out.Error)
	}
	return out.Result, nil
}

// classifyFault traduce la excepción del ERP a un error de dominio.
func classifyFault(e *rpcError) error {
	msg := e.Data.Message
	if msg == "" {
		msg = e.Message
	}
	name := e.Data.Name
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	switch name {
	case "AccessError", "AccessDenied":
		return domain.Detail(domain.ErrForbidden, "%s", msg)
	case "MissingError":
		return domain.Detail(domain.ErrNotFound, "%s", msg)
	case "UserError", "ValidationError":
		return domain.Detail(domain.ErrBusinessRule, "%s", msg)
	default:
		return fmt.Errorf("odoo: %s: %s", e.Data.Name, msg)
	}
}

// ── Autenticación ─────────────────────────────────────────────────────────────

// Authenticate valida credenciales con common.authenticate. Devuelve 0 si no son válidas.
func (c *Client) Authenticate(ctx context.Context, login, password string) (int64, error) {
	raw, err := c.call(ctx, "common", "authenticate", c.db, login, password, map[string]any{})
	if err != nil {
		return 0, err
	}
	var uid Int
	if err := json.Unmarshal(raw, &uid); err != nil {
		return 0, fmt.Errorf("odoo: uid inválido: %w", err)
	}
	return int64(uid), nil
}

// serviceUID autentica la cuenta técnica una sola vez.
func (c *Client) serviceUID(ctx context.Context) (int64, error) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	if c.uid != 0 {
		return c.uid, nil
	}
	uid, err := c.Authenticate(ctx, c.login, c.password)
	if err != nil {
		return 0, err
	}
	if uid == 0 {
		return 0, fmt.Errorf("odoo: credenciales de servicio rechazadas para %q", c.login)
	}
	c.uid = uid
	return uid, nil
}

// ── object.execute_kw ─────────────────────────────────────────────────────────

// ExecuteKW ejecuta model.method con la cuenta técnica y decodifica el resultado en out (puede ser nil).
func (c *Client) ExecuteKW(ctx context.Context, model, method string, args []any, kwargs map[string]any, out any) error {
	uid, err := c.serviceUID(ctx)
	if err != nil {
		return err
	}
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	raw, err := c.call(ctx, "object", "execute_kw", c.db, uid, c.password, model, method, args, kwargs)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("odoo: decodificar %s.%s: %w", model, method, err)
	}
	return nil
}

// Query opciones de search_read.
type Query struct {
	Fields []string
	Order  string
	Limit  int
}

// SearchRead ejecuta search_read con el dominio dado.
func (c *Client) SearchRead(ctx context.Context, model string, dom Domain, q Query, out any) error {
	kw := map[string]any{}
	if len(q.Fields) > 0 {
		kw["fields"] = q.Fields
	}
	if q.Order != "" {
		kw["order"] = q.Order
	}
	if q.Limit > 0 {
		kw["limit"] = q.Limit
	}
	return c.ExecuteKW(ctx, model, "search_read", []any{dom.args()}, kw, out)
}

// Read lee registros por id.
func (c *Client) Read(ctx context.Context, model string, ids []int64, fields []string, out any) error {
	return c.ExecuteKW(ctx, model, "read", []any{ids}, map[string]any{"fields": fields}, out)
}

// Create crea un registro y devuelve su id.
func (c *Client) Create(ctx context.Context, model string, vals map[string]any, rpcCtx map[string]any) (int64, error) {
	var kw map[string]any
	if len(rpcCtx) > 0 {
		kw = map[string]any{"context": rpcCtx}
	}
	var id Int
	if err := c.ExecuteKW(ctx, model, "create", []any{vals}, kw, &id); err != nil {
		return 0, err
	}
	return int64(id), nil
}

// Write actualiza registros.
func (c *Client) Write(ctx context.Context, model string, ids []int64, vals map[string]any) error {
	return c.ExecuteKW(ctx, model, "write", []any{ids, vals}, nil, nil)
}

// fieldsOf consulta fields_get del modelo; el resultado (campo → modelo relacionado) queda en memoria.
func (c *Client) fieldsOf(ctx context.Context, model string) (map[string]string, error) {
	c.mu.Lock()
	set, ok := c.fields[model]
	c.mu.Unlock()
	if ok {
		return set, nil
	}
	var desc map[string]struct {
		Relation Str `json:"relation"`
	}
	err := c.ExecuteKW(ctx, model, "fields_get", nil, map[string]any{"attributes": []string{"type", "relation"}}, &desc)
	if err != nil {
		return nil, err
	}
	set = make(map[string]string, len(desc))
	for name, d := range desc {
		set[name] = string(d.Relation)
	}
	c.mu.Lock()
	c.fields[model] = set
	c.mu.Unlock()
	return set, nil
}

// HasField indica si el modelo tiene el campo (depende de los módulos instalados en el ERP).
func (c *Client) HasField(ctx context.Context, model, field string) (bool, error) {
	set, err := c.fieldsOf(ctx, model)
	if err != nil {
		return false, err
	}
	_, ok := set[field]
	return ok, nil
}

// Relation devuelve el modelo relacionado de un campo relacional, o "" si el campo no existe.
func (c *Client) Relation(ctx context.Context, model, field string) (string, error) {
	set, err := c.fieldsOf(ctx, model)
	if err != nil {
		return "", err
	}
	return set[field], nil
}

// withOptional añade a base los campos opcionales que existen en el modelo.
func (c *Client) withOptional(ctx context.Context, model string, base []string, optional ...string) ([]string, error) {
	set, err := c.fieldsOf(ctx, model)
	if err != nil {
		return nil, err
	}
	out := append([]string(nil), base...)
	for _, f := range optional {
		if _, ok := set[f]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// XMLID resuelve un id externo (módulo.nombre) al id del registro. 0 si no existe.
func (c *Client) XMLID(ctx context.Context, xmlid string) (int64, error) {
	c.mu.Lock()
	id, ok := c.xmlids[xmlid]
	c.mu.Unlock()
	if ok {
		return id, nil
	}
	module, name, found := strings.Cut(xmlid, ".")
	if !found {
		return 0, fmt.Errorf("odoo: id externo inválido %q", xmlid)
	}
	var rows []struct {
		ResID Int `json:"res_id"`
	}
	dom := Domain{Cond("module", "=", module), Cond("name", "=", name)}
	if err := c.SearchRead(ctx, "ir.model.data", dom, Query{Fields: []string{"res_id"}, Limit: 1}, &rows); err != nil {
		return 0, err
	}
	if len(rows) > 0 {
		id = int64(rows[0].ResID)
	}
	c.mu.Lock()
	c.xmlids[xmlid] = id
	c.mu.Unlock()
	return id, nil
}
