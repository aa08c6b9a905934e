//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"praxis-booking/internal/infra/gateway"
)

// FakeGateway is an in-memory stand-in for the payment provider. It speaks
// the same wire format as the real one and lets tests flip transaction
// statuses to simulate asynchronous settlement.
type FakeGateway struct {
	mu           sync.Mutex
	server       *httptest.Server
	seq          int
	transactions map[string]*gateway.Transaction
}

func NewFakeGateway() *FakeGateway {
	g := &FakeGateway{transactions: make(map[string]*gateway.Transaction)}
	g.server = httptest.NewServer(http.HandlerFunc(g.handle))
	return g
}

func (g *FakeGateway) URL() string {
	return g.server.URL
}

func (g *FakeGateway) Close() {
	g.server.Close()
}

// Reset drops all recorded transactions between subtests.
func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transactions = make(map[string]*gateway.Transaction)
}

// SetStatus flips a transaction's provider-side status, as if the payer had
// acted out of band.
func (g *FakeGateway) SetStatus(tid string, status gateway.Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if tx, ok := g.transactions[tid]; ok {
		tx.Status = status
	}
}

func (g *FakeGateway) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, "/v1/transactions")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	case rest == "" && r.Method == http.MethodPost:
		g.create(w, r)
	case strings.HasSuffix(rest, "/capture") && r.Method == http.MethodPost:
		g.updateStatus(w, strings.TrimSuffix(strings.TrimPrefix(rest, "/"), "/capture"), gateway.StatusPaid)
	case strings.HasSuffix(rest, "/refund") && r.Method == http.MethodPost:
		g.updateStatus(w, strings.TrimSuffix(strings.TrimPrefix(rest, "/"), "/refund"), gateway.StatusRefunded)
	case r.Method == http.MethodGet:
		g.get(w, strings.TrimPrefix(rest, "/"))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (g *FakeGateway) create(w http.ResponseWriter, r *http.Request) {
	var req gateway.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	g.mu.Lock()
	g.seq++
	tx := &gateway.Transaction{ID: fmt.Sprintf("txn_%d", g.seq)}
	switch req.Method {
	case "pix":
		tx.Status = gateway.StatusPending
		tx.Payload = map[string]string{"qr_code": "00020126-fake-pix-" + tx.ID}
	case "boleto":
		tx.Status = gateway.StatusPending
		tx.Payload = map[string]string{"barcode": "23790-fake-boleto-" + tx.ID}
	case "card":
		tx.Status = gateway.StatusAuthorized
		tx.Payload = map[string]string{"authorization_id": "auth-" + tx.ID}
	default:
		g.mu.Unlock()
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	g.transactions[tx.ID] = tx
	g.mu.Unlock()

	writeTransaction(w, http.StatusCreated, tx)
}

func (g *FakeGateway) get(w http.ResponseWriter, tid string) {
	g.mu.Lock()
	tx, ok := g.transactions[tid]
	g.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeTransaction(w, http.StatusOK, tx)
}

func (g *FakeGateway) updateStatus(w http.ResponseWriter, tid string, status gateway.Status) {
	g.mu.Lock()
	tx, ok := g.transactions[tid]
	if ok {
		tx.Status = status
	}
	g.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeTransaction(w, http.StatusOK, tx)
}

func writeTransaction(w http.ResponseWriter, code int, tx *gateway.Transaction) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(tx)
}
