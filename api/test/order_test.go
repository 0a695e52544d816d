package test

import (
	"encoding/json"
	"net/http"
	"testing"

	"storefront/core/order"
)

type orderTest struct {
	*TestEnv
}

func TestOrder(t *testing.T) {
	env, err := NewTestEnv(t, "order_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &categoryTest{env}
	pt := &productTest{env}
	rt := &cartTest{env}
	ot := &orderTest{env}

	tools := ct.createCategoryOK(t, "Tools", "Hand tools")
	hammer := pt.createProductOK(t, "Hammer", 9.75, tools.ID)
	drill := pt.createProductOK(t, "Drill", 79.50, tools.ID)

	if err := Login(env.Server, env.UserUsername, env.UserPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(env.Server)

	// An empty cart cannot be checked out.
	ot.checkoutStatus(t, http.StatusUnprocessableEntity)

	rt.addOK(t, hammer.ID)
	rt.addOK(t, hammer.ID)
	rt.addOK(t, drill.ID)

	ord := ot.checkoutOK(t)
	if len(ord.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(ord.Items))
	}
	if ord.Total != 99.0 {
		t.Fatalf("expected total 99.0, got %v", ord.Total)
	}
	for _, it := range ord.Items {
		switch it.ProductID {
		case hammer.ID:
			if it.Quantity != 2 || it.UnitPrice != 9.75 {
				t.Fatalf("unexpected hammer item: %+v", it)
			}
		case drill.ID:
			if it.Quantity != 1 || it.UnitPrice != 79.50 {
				t.Fatalf("unexpected drill item: %+v", it)
			}
		default:
			t.Fatalf("unexpected product in order: %+v", it)
		}
	}

	// Checkout flushes the cart.
	if crt := rt.showOK(t); len(crt.Items) != 0 {
		t.Fatalf("cart not empty after checkout: %+v", crt)
	}

	orders := ot.listOK(t)
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].ID != ord.ID || len(orders[0].Items) != 2 {
		t.Fatalf("listed order differs from checkout: %+v", orders[0])
	}
}

func (ot *orderTest) checkoutOK(t *testing.T) order.Order {
	t.Helper()

	w, err := postJSON(ot.Server, "/orders", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusCreated {
		t.Fatalf("checking out: status code %s", w.Status)
	}

	var ord order.Order
	if err := json.NewDecoder(w.Body).Decode(&ord); err != nil {
		t.Fatalf("decoding order: %v", err)
	}
	return ord
}

func (ot *orderTest) checkoutStatus(t *testing.T, want int) {
	t.Helper()

	w, err := postJSON(ot.Server, "/orders", nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()

	if w.StatusCode != want {
		t.Fatalf("checking out: status code %s, expected %d", w.Status, want)
	}
}

func (ot *orderTest) listOK(t *testing.T) []order.Order {
	t.Helper()

	w, err := ot.Client().Get(ot.URL + "/orders")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		t.Fatalf("listing orders: status code %s", w.Status)
	}

	var orders []order.Order
	if err := json.NewDecoder(w.Body).Decode(&orders); err != nil {
		t.Fatalf("decoding orders: %v", err)
	}
	return orders
}
