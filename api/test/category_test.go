package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"storefront/core/category"

	"github.com/google/go-cmp/cmp"
)

type categoryTest struct {
	*TestEnv
}

func TestCategory(t *testing.T) {
	env, err := NewTestEnv(t, "category_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &categoryTest{env}

	created := ct.createCategoryOK(t, "Tools", "Hand tools")
	if created.ID == 0 {
		t.Fatal("created category should carry its generated id")
	}

	fetched := ct.showCategoryOK(t, created.ID)
	if diff := cmp.Diff(created, fetched); diff != "" {
		t.Fatalf("created and fetched categories differ (-created +fetched):\n%s", diff)
	}

	list := ct.listCategoriesOK(t)
	if len(list) != 1 {
		t.Fatalf("expected 1 category, got %d", len(list))
	}

	ct.updateCategoryOK(t, created.ID, "Hardware", "Tools and fasteners")
	updated := ct.showCategoryOK(t, created.ID)
	if updated.Name != "Hardware" || updated.Description != "Tools and fasteners" {
		t.Fatalf("update not persisted: %+v", updated)
	}

	ct.deleteCategoryOK(t, created.ID)
	ct.showCategoryStatus(t, created.ID, http.StatusNotFound)

	// A missing id is a 404, never a generic failure.
	ct.showCategoryStatus(t, 424242, http.StatusNotFound)
}

func TestCategoryAuthorization(t *testing.T) {
	env, err := NewTestEnv(t, "category_auth_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &categoryTest{env}
	created := ct.createCategoryOK(t, "Garden", "Outdoor gear")

	// Anonymous writes are unauthorized.
	r, err := http.NewRequest(http.MethodDelete, env.URL+"/categories/"+itoa(created.ID), nil)
	if err != nil {
		t.Fatal(err)
	}
	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous delete: status code %s", w.Status)
	}

	// Plain users are forbidden.
	if err := Login(env.Server, env.UserUsername, env.UserPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(env.Server)

	r, err = http.NewRequest(http.MethodDelete, env.URL+"/categories/"+itoa(created.ID), nil)
	if err != nil {
		t.Fatal(err)
	}
	w, err = env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin delete: status code %s", w.Status)
	}

	// And the category is still there.
	ct.showCategoryStatus(t, created.ID, http.StatusOK)
}

func (ct *categoryTest) createCategoryOK(t *testing.T, name, description string) category.Category {
	t.Helper()

	if err := Login(ct.Server, ct.AdminUsername, ct.AdminPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(ct.Server)

	body := map[string]string{"name": name, "description": description}
	w, err := postJSON(ct.Server, "/categories", body)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusCreated {
		t.Fatalf("creating category: status code %s", w.Status)
	}

	var cat category.Category
	if err := json.NewDecoder(w.Body).Decode(&cat); err != nil {
		t.Fatalf("decoding created category: %v", err)
	}
	return cat
}

func (ct *categoryTest) showCategoryOK(t *testing.T, id int) category.Category {
	t.Helper()

	w, err := ct.Client().Get(ct.URL + "/categories/" + itoa(id))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		t.Fatalf("fetching category[%d]: status code %s", id, w.Status)
	}

	var cat category.Category
	if err := json.NewDecoder(w.Body).Decode(&cat); err != nil {
		t.Fatalf("decoding category: %v", err)
	}
	return cat
}

func (ct *categoryTest) showCategoryStatus(t *testing.T, id int, want int) {
	t.Helper()

	w, err := ct.Client().Get(ct.URL + "/categories/" + itoa(id))
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()

	if w.StatusCode != want {
		t.Fatalf("fetching category[%d]: status code %s, expected %d", id, w.Status, want)
	}
}

func (ct *categoryTest) listCategoriesOK(t *testing.T) []category.Category {
	t.Helper()

	w, err := ct.Client().Get(ct.URL + "/categories")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		t.Fatalf("listing categories: status code %s", w.Status)
	}

	var list []category.Category
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decoding categories: %v", err)
	}
	return list
}

func (ct *categoryTest) updateCategoryOK(t *testing.T, id int, name, description string) {
	t.Helper()

	if err := Login(ct.Server, ct.AdminUsername, ct.AdminPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(ct.Server)

	body := map[string]string{"name": name, "description": description}
	w, err := putJSON(ct.Server, "/categories/"+itoa(id), body)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		t.Fatalf("updating category[%d]: status code %s", id, w.Status)
	}
}

func (ct *categoryTest) deleteCategoryOK(t *testing.T, id int) {
	t.Helper()

	if err := Login(ct.Server, ct.AdminUsername, ct.AdminPass); err != nil {
		t.Fatal(err)
	}
	defer Logout(ct.Server)

	r, err := http.NewRequest(http.MethodDelete, ct.URL+"/categories/"+itoa(id), nil)
	if err != nil {
		t.Fatal(err)
	}
	w, err := ct.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		t.Fatalf("deleting category[%d]: status code %s", id, w.Status)
	}
}

func itoa(id int) string {
	return fmt.Sprintf("%d", id)
}
