package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jgardel/vivero-api/internal/httpx"
	ord "github.com/jgardel/vivero-api/internal/order"
)

//
// ---------- STUBS & FAKES ----------
//

type stubProduct struct {
	nombre string
	precio string
	stock  int
	estado string
}

// stubOrderRepo implementa ord.Repository en memoria, con la misma semántica
// de decremento condicional todo-o-nada que el repo real.
type stubOrderRepo struct {
	mu          sync.Mutex
	products    map[string]*stubProduct
	orders      map[string]*ord.Order
	items       map[string][]ord.Item
	byIdem      map[string]string
	users       map[string][2]string // id -> (nombre, email)
	seq         int64
	createCalls int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		products: map[string]*stubProduct{},
		orders:   map[string]*ord.Order{},
		items:    map[string][]ord.Item{},
		byIdem:   map[string]string{},
		users:    map[string][2]string{},
	}
}

func (s *stubOrderRepo) addProduct(id, nombre, precio string, stock int) {
	s.products[id] = &stubProduct{nombre: nombre, precio: precio, stock: stock, estado: "activo"}
}

func (s *stubOrderRepo) stockOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].stock
}

func (s *stubOrderRepo) Create(ctx context.Context, o *ord.Order, items []ord.ItemInput) ([]ord.Item, bool, error) {
	if err := ord.ValidateCreate(o, items); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++

	if o.IdempotencyKey != "" {
		if oid, ok := s.byIdem[o.UserID+"|"+o.IdempotencyKey]; ok {
			*o = *s.orders[oid]
			return append([]ord.Item(nil), s.items[oid]...), true, nil
		}
	}

	// snapshot + total del servidor
	type line struct {
		input    ord.ItemInput
		nombre   string
		precio   string
		subtotal decimal.Decimal
	}
	var lines []line
	total := decimal.Zero
	for _, it := range items {
		p, ok := s.products[it.ProductID]
		if !ok || p.estado != "activo" {
			return nil, false, &ord.ValidationError{Reason: "producto no disponible: " + it.ProductID}
		}
		sub, err := ord.Subtotal(p.precio, it.Cantidad)
		if err != nil {
			return nil, false, err
		}
		lines = append(lines, line{input: it, nombre: p.nombre, precio: p.precio, subtotal: sub})
		total = total.Add(sub)
	}
	if o.Total != "" {
		claimed, _ := ord.ParseMonto(o.Total)
		if !claimed.Equal(total) {
			return nil, false, &ord.ValidationError{Reason: "total no coincide con la suma de los ítems"}
		}
	}

	// decremento condicional, todo-o-nada
	pending := map[string]int{}
	for _, ln := range lines {
		p := s.products[ln.input.ProductID]
		available := p.stock - pending[ln.input.ProductID]
		if available < ln.input.Cantidad {
			return nil, false, &ord.InsufficientStockError{
				ProductID: ln.input.ProductID,
				Requested: ln.input.Cantidad,
				Available: available,
			}
		}
		pending[ln.input.ProductID] += ln.input.Cantidad
	}
	for pid, qty := range pending {
		s.products[pid].stock -= qty
	}

	o.ID = uuid.NewString()
	o.Estado = ord.EstadoPendiente
	o.Total = ord.FormatMonto(total)
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	s.orders[o.ID] = &cp

	var out []ord.Item
	for _, ln := range lines {
		s.seq++
		out = append(out, ord.Item{
			ID:             s.seq,
			OrderID:        o.ID,
			ProductID:      ln.input.ProductID,
			NombreProducto: ln.nombre,
			Cantidad:       ln.input.Cantidad,
			PrecioUnitario: ln.precio,
			Subtotal:       ord.FormatMonto(ln.subtotal),
		})
	}
	s.items[o.ID] = out
	if o.IdempotencyKey != "" {
		s.byIdem[o.UserID+"|"+o.IdempotencyKey] = o.ID
	}
	return append([]ord.Item(nil), out...), false, nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id string) (*ord.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ord.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderRepo) GetItems(ctx context.Context, orderID string) ([]ord.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ord.Item(nil), s.items[orderID]...), nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]ord.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []ord.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubOrderRepo) ListAll(ctx context.Context) ([]ord.AdminOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []ord.AdminOrder{}
	for _, o := range s.orders {
		u := s.users[o.UserID]
		out = append(out, ord.AdminOrder{Order: *o, UserNombre: u[0], UserEmail: u[1]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubOrderRepo) UpdateEstado(ctx context.Context, id string, next ord.Estado) error {
	if !ord.ValidEstado(next) {
		return &ord.ValidationError{Reason: "estado desconocido"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return ord.ErrNotFound
	}
	if !ord.CanTransition(o.Estado, next) {
		return ord.ErrInvalidTransition
	}
	o.Estado = next
	if next == ord.EstadoCancelado {
		for _, it := range s.items[id] {
			s.products[it.ProductID].stock += it.Cantidad
		}
	}
	return nil
}

// stubCache implementa redisx.Cache en memoria.
type stubCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newStubCache() *stubCache { return &stubCache{data: map[string]string{}} }

func (c *stubCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", fmt.Errorf("miss")
	}
	return v, nil
}

func (c *stubCache) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = val
	return nil
}

// authAs simula el middleware de auth poniendo la identidad en el contexto.
func authAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(httpx.CtxUserID, userID)
		c.Next()
	}
}

func orderRouter(repo ord.Repository, cache *stubCache, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders/create", authAs(userID), createOrderHandler(repo, cache))
	r.GET("/orders/my-orders", authAs(userID), myOrdersHandler(repo))
	r.GET("/orders/all", authAs(userID), allOrdersHandler(repo))
	r.GET("/orders/:id", authAs(userID), getOrderHandler(repo))
	r.PUT("/orders/:id/status", authAs(userID), updateOrderStatusHandler(repo, cache))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

//
// ---------- TESTS ----------
//

// Escenario: stock 3, se piden 2 → orden creada, stock queda en 1.
func TestCreateOrder_HappyPath(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Monstera", "15.00", 3)
	uid := uuid.NewString()
	r := orderRouter(repo, newStubCache(), uid)

	body := fmt.Sprintf(`{"direccion_envio":"Calle 1","telefono_contacto":"123",
		"items":[{"product_id":%q,"cantidad":2}]}`, prodID)
	w := postJSON(r, "/orders/create", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := repo.stockOf(prodID); got != 1 {
		t.Fatalf("stock esperado=1, real=%d", got)
	}

	var resp struct {
		Order ord.Order  `json:"order"`
		Items []ord.Item `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if resp.Order.Estado != ord.EstadoPendiente {
		t.Fatalf("estado=%s, esperaba pendiente", resp.Order.Estado)
	}
	if resp.Order.Total != "30.00" {
		t.Fatalf("total=%s, esperaba 30.00 (recalculado por el servidor)", resp.Order.Total)
	}
	if len(resp.Items) != 1 || resp.Items[0].Cantidad != 2 || resp.Items[0].Subtotal != "30.00" {
		t.Fatalf("items inesperados: %+v", resp.Items)
	}
}

// Carrito vacío → 400 antes de tocar el storage, ninguna orden creada.
func TestCreateOrder_EmptyCart(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	r := orderRouter(repo, newStubCache(), uuid.NewString())

	w := postJSON(r, "/orders/create",
		`{"direccion_envio":"Calle 1","telefono_contacto":"123","items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no debía crearse ninguna orden")
	}
}

func TestCreateOrder_MissingShippingFields(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Pothos", "5.00", 10)
	r := orderRouter(repo, newStubCache(), uuid.NewString())

	w := postJSON(r, "/orders/create",
		fmt.Sprintf(`{"telefono_contacto":"123","items":[{"product_id":%q,"cantidad":1}]}`, prodID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d (esperaba 400 por direccion_envio faltante)", w.Code)
	}
	if got := repo.stockOf(prodID); got != 10 {
		t.Fatalf("stock no debía cambiar: %d", got)
	}
}

// Stock insuficiente → 409 con detalle del producto, nada persiste.
func TestCreateOrder_InsufficientStock(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Ficus", "10.00", 1)
	r := orderRouter(repo, newStubCache(), uuid.NewString())

	w := postJSON(r, "/orders/create",
		fmt.Sprintf(`{"direccion_envio":"Calle 1","telefono_contacto":"123",
			"items":[{"product_id":%q,"cantidad":2}]}`, prodID))
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s (esperaba 409)", w.Code, w.Body.String())
	}
	var resp struct {
		ProductID string `json:"product_id"`
		Available int    `json:"available"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.ProductID != prodID || resp.Available != 1 {
		t.Fatalf("detalle inesperado: %s", w.Body.String())
	}
	if got := repo.stockOf(prodID); got != 1 {
		t.Fatalf("stock cambió y no debía: %d", got)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no debía crearse ninguna orden")
	}
}

// Dos ítems y el segundo sin stock → rollback total: ni la orden ni el
// decremento del primer ítem quedan visibles.
func TestCreateOrder_SecondItemInsufficient_RollsBack(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	p1 := uuid.NewString()
	p2 := uuid.NewString()
	repo.addProduct(p1, "Rosa", "8.00", 5)
	repo.addProduct(p2, "Cactus", "4.00", 0)
	r := orderRouter(repo, newStubCache(), uuid.NewString())

	w := postJSON(r, "/orders/create",
		fmt.Sprintf(`{"direccion_envio":"Calle 1","telefono_contacto":"123",
			"items":[{"product_id":%q,"cantidad":1},{"product_id":%q,"cantidad":1}]}`, p1, p2))
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s (esperaba 409)", w.Code, w.Body.String())
	}
	if got := repo.stockOf(p1); got != 5 {
		t.Fatalf("el decremento del primer ítem quedó visible: stock=%d", got)
	}
	if len(repo.orders) != 0 || repo.seq != 0 {
		t.Fatalf("quedó estado parcial: orders=%d items-seq=%d", len(repo.orders), repo.seq)
	}
}

// El total del cliente no cuadra con el recalculado → 400.
func TestCreateOrder_TotalMismatch(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Helecho", "12.50", 4)
	r := orderRouter(repo, newStubCache(), uuid.NewString())

	w := postJSON(r, "/orders/create",
		fmt.Sprintf(`{"total":"999.00","direccion_envio":"Calle 1","telefono_contacto":"123",
			"items":[{"product_id":%q,"cantidad":2}]}`, prodID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}
	if got := repo.stockOf(prodID); got != 4 {
		t.Fatalf("stock no debía cambiar: %d", got)
	}
}

// Dos checkouts concurrentes por la última unidad: exactamente uno gana y el
// stock nunca baja de cero.
func TestCreateOrder_ConcurrentCheckouts(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Orquídea", "25.00", 1)
	r := orderRouter(repo, newStubCache(), uuid.NewString())

	body := fmt.Sprintf(`{"direccion_envio":"Calle 1","telefono_contacto":"123",
		"items":[{"product_id":%q,"cantidad":1}]}`, prodID)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = postJSON(r, "/orders/create", body).Code
		}(i)
	}
	wg.Wait()

	created, conflict := 0, 0
	for _, c := range codes {
		switch c {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflict++
		}
	}
	if created != 1 || conflict != 1 {
		t.Fatalf("codes=%v (esperaba exactamente un 201 y un 409)", codes)
	}
	if got := repo.stockOf(prodID); got != 0 {
		t.Fatalf("stock=%d, esperaba 0", got)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("orders=%d, esperaba 1", len(repo.orders))
	}
}

// Reenvío con la misma idempotency key: misma orden, stock descontado una vez.
func TestCreateOrder_IdempotentResubmit(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	cache := newStubCache()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Lavanda", "6.00", 10)
	uid := uuid.NewString()
	r := orderRouter(repo, cache, uid)

	body := fmt.Sprintf(`{"idempotency_key":"chk-123","direccion_envio":"Calle 1","telefono_contacto":"123",
		"items":[{"product_id":%q,"cantidad":3}]}`, prodID)

	w1 := postJSON(r, "/orders/create", body)
	if w1.Code != http.StatusCreated {
		t.Fatalf("primer envío status=%d body=%s", w1.Code, w1.Body.String())
	}
	w2 := postJSON(r, "/orders/create", body)
	if w2.Code != http.StatusOK {
		t.Fatalf("reenvío status=%d body=%s (esperaba 200)", w2.Code, w2.Body.String())
	}

	var r1, r2 struct {
		Order ord.Order `json:"order"`
	}
	_ = json.Unmarshal(w1.Body.Bytes(), &r1)
	_ = json.Unmarshal(w2.Body.Bytes(), &r2)
	if r1.Order.ID != r2.Order.ID {
		t.Fatalf("ids distintos: %s vs %s", r1.Order.ID, r2.Order.ID)
	}
	if got := repo.stockOf(prodID); got != 7 {
		t.Fatalf("stock=%d, esperaba 7 (un solo decremento)", got)
	}

	key := fmt.Sprintf("idem:order:create:%s:chk-123", uid)
	raw, err := cache.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("cache de idempotencia no registrada: %v", err)
	}
	var cached cachedOrder
	if err := json.Unmarshal([]byte(raw), &cached); err != nil || cached.Order.ID != r1.Order.ID {
		t.Fatalf("payload cacheado inválido: %q err=%v", raw, err)
	}
}

// Con la clave caliente en redis el reenvío se responde desde el cache sin
// invocar al storage.
func TestCreateOrder_IdempotentCacheHitSkipsRepo(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	cache := newStubCache()
	uid := uuid.NewString()
	r := orderRouter(repo, cache, uid)

	prev := cachedOrder{
		Order: ord.Order{ID: "orden-previa", UserID: uid, Total: "18.00", Estado: ord.EstadoPendiente},
		Items: []ord.Item{{ID: 1, OrderID: "orden-previa", ProductID: "p1", Cantidad: 3, Subtotal: "18.00"}},
	}
	raw, _ := json.Marshal(prev)
	key := fmt.Sprintf("idem:order:create:%s:chk-hot", uid)
	_ = cache.Set(context.Background(), key, string(raw), time.Minute)

	w := postJSON(r, "/orders/create",
		`{"idempotency_key":"chk-hot","direccion_envio":"Calle 1","telefono_contacto":"123",
			"items":[{"product_id":"p1","cantidad":3}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (esperaba 200 desde cache)", w.Code, w.Body.String())
	}
	if repo.createCalls != 0 {
		t.Fatalf("el storage fue invocado %d veces en un cache hit", repo.createCalls)
	}
	var resp struct {
		Order ord.Order `json:"order"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Order.ID != "orden-previa" {
		t.Fatalf("orden inesperada: %+v", resp.Order)
	}
}

// La idempotency key es por usuario: otro usuario puede reutilizar la misma
// clave y obtiene su propia orden.
func TestCreateOrder_IdempotencyKeyScopedPerUser(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Romero", "4.00", 10)

	body := fmt.Sprintf(`{"idempotency_key":"chk-compartida","direccion_envio":"Calle 1","telefono_contacto":"123",
		"items":[{"product_id":%q,"cantidad":1}]}`, prodID)

	ids := map[string]bool{}
	for _, u := range []string{uuid.NewString(), uuid.NewString()} {
		r := orderRouter(repo, newStubCache(), u)
		w := postJSON(r, "/orders/create", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("user=%s status=%d body=%s", u, w.Code, w.Body.String())
		}
		var resp struct {
			Order ord.Order `json:"order"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		ids[resp.Order.ID] = true
	}
	if len(ids) != 2 {
		t.Fatalf("la misma clave en usuarios distintos debe crear órdenes distintas: %v", ids)
	}
	if got := repo.stockOf(prodID); got != 8 {
		t.Fatalf("stock=%d, esperaba 8", got)
	}
}

// El estado se sirve desde redis cuando la clave está caliente; en miss va al
// storage y deja la clave poblada.
func TestGetOrderStatus_CacheHitAndMiss(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	cache := newStubCache()
	uid := uuid.NewString()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/:id/status", authAs(uid), getOrderStatusHandler(repo, cache))

	// hit: no existe en el repo, solo en el cache
	_ = cache.Set(context.Background(), "order_estado:orden-x", "enviado", time.Minute)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/orden-x/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("hit: status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Estado string `json:"estado"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Estado != "enviado" {
		t.Fatalf("hit: estado=%q, esperaba enviado", resp.Estado)
	}

	// miss: cae al repo y puebla la clave
	repo.orders["orden-y"] = &ord.Order{ID: "orden-y", UserID: uid, Estado: ord.EstadoProcesando}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/orden-y/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("miss: status=%d body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Estado != "procesando" {
		t.Fatalf("miss: estado=%q", resp.Estado)
	}
	if v, err := cache.Get(context.Background(), "order_estado:orden-y"); err != nil || v != "procesando" {
		t.Fatalf("miss no pobló el cache: v=%q err=%v", v, err)
	}

	// orden inexistente y cache frío
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/orden-z/status", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("inexistente: status=%d (esperaba 404)", w.Code)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	t.Parallel()

	r := orderRouter(newStubOrderRepo(), newStubCache(), uuid.NewString())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d (esperaba 404)", w.Code)
	}
}

// Lectura inmediata tras el commit: los ítems vuelven en el orden enviado y
// con los subtotales que se persistieron.
func TestGetOrder_ItemsInSubmittedOrder(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	p1 := uuid.NewString()
	p2 := uuid.NewString()
	repo.addProduct(p1, "Suculenta", "3.50", 10)
	repo.addProduct(p2, "Bonsái", "40.00", 10)
	r := orderRouter(repo, newStubCache(), uuid.NewString())

	w := postJSON(r, "/orders/create",
		fmt.Sprintf(`{"direccion_envio":"Calle 1","telefono_contacto":"123",
			"items":[{"product_id":%q,"cantidad":2},{"product_id":%q,"cantidad":1}]}`, p1, p2))
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Order ord.Order `json:"order"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+created.Order.ID, nil)
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w2.Code, w2.Body.String())
	}
	var got struct {
		Items []ord.Item `json:"items"`
	}
	_ = json.Unmarshal(w2.Body.Bytes(), &got)
	if len(got.Items) != 2 {
		t.Fatalf("items=%d, esperaba 2", len(got.Items))
	}
	if got.Items[0].ProductID != p1 || got.Items[1].ProductID != p2 {
		t.Fatalf("orden de ítems no preservado: %+v", got.Items)
	}
	if got.Items[0].Subtotal != "7.00" || got.Items[1].Subtotal != "40.00" {
		t.Fatalf("subtotales inesperados: %+v", got.Items)
	}
}

func TestMyOrders_OnlyOwn(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Tulipán", "2.00", 100)
	uid := uuid.NewString()
	other := uuid.NewString()

	for _, u := range []string{uid, other} {
		r := orderRouter(repo, newStubCache(), u)
		postJSON(r, "/orders/create", fmt.Sprintf(
			`{"direccion_envio":"Calle 1","telefono_contacto":"123","items":[{"product_id":%q,"cantidad":1}]}`, prodID))
	}

	r := orderRouter(repo, newStubCache(), uid)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/my-orders", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Orders []ord.Order `json:"orders"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Orders) != 1 || resp.Orders[0].UserID != uid {
		t.Fatalf("esperaba solo las órdenes del usuario: %+v", resp.Orders)
	}
}

func TestUpdateOrderStatus_Transitions(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Jazmín", "9.00", 5)
	uid := uuid.NewString()
	r := orderRouter(repo, newStubCache(), uid)

	w := postJSON(r, "/orders/create", fmt.Sprintf(
		`{"direccion_envio":"Calle 1","telefono_contacto":"123","items":[{"product_id":%q,"cantidad":1}]}`, prodID))
	var created struct {
		Order ord.Order `json:"order"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	oid := created.Order.ID

	put := func(estado string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/orders/"+oid+"/status",
			bytes.NewBufferString(fmt.Sprintf(`{"estado":%q}`, estado)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := put("wtf"); code != http.StatusBadRequest {
		t.Fatalf("estado inválido: status=%d (esperaba 400)", code)
	}
	if code := put("procesando"); code != http.StatusOK {
		t.Fatalf("pendiente→procesando: status=%d", code)
	}
	if code := put("entregado"); code != http.StatusBadRequest {
		t.Fatalf("procesando→entregado directo: status=%d (esperaba 400)", code)
	}
	if code := put("enviado"); code != http.StatusOK {
		t.Fatalf("procesando→enviado: status=%d", code)
	}
	if code := put("cancelado"); code != http.StatusBadRequest {
		t.Fatalf("enviado→cancelado: status=%d (esperaba 400)", code)
	}
}

func TestUpdateOrderStatus_CancelRestocks(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Camelia", "11.00", 3)
	r := orderRouter(repo, newStubCache(), uuid.NewString())

	w := postJSON(r, "/orders/create", fmt.Sprintf(
		`{"direccion_envio":"Calle 1","telefono_contacto":"123","items":[{"product_id":%q,"cantidad":2}]}`, prodID))
	var created struct {
		Order ord.Order `json:"order"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if got := repo.stockOf(prodID); got != 1 {
		t.Fatalf("stock tras checkout=%d, esperaba 1", got)
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/"+created.Order.ID+"/status",
		bytes.NewBufferString(`{"estado":"cancelado"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("cancelación: status=%d body=%s", w2.Code, w2.Body.String())
	}
	if got := repo.stockOf(prodID); got != 3 {
		t.Fatalf("restock falló: stock=%d, esperaba 3", got)
	}
}

func TestAllOrders_IncludesBuyerIdentity(t *testing.T) {
	t.Parallel()

	repo := newStubOrderRepo()
	prodID := uuid.NewString()
	repo.addProduct(prodID, "Menta", "1.50", 10)
	uid := uuid.NewString()
	repo.users[uid] = [2]string{"Ana Pérez", "ana@example.com"}

	r := orderRouter(repo, newStubCache(), uid)
	postJSON(r, "/orders/create", fmt.Sprintf(
		`{"direccion_envio":"Calle 1","telefono_contacto":"123","items":[{"product_id":%q,"cantidad":1}]}`, prodID))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/all", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Orders []ord.AdminOrder `json:"orders"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Orders) != 1 || resp.Orders[0].UserNombre != "Ana Pérez" || resp.Orders[0].UserEmail != "ana@example.com" {
		t.Fatalf("identidad del comprador ausente: %+v", resp.Orders)
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
