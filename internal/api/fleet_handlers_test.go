package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"hangar/internal/user"
)

func registerTestAircraft(t *testing.T, b *browser, registration string) {
	t.Helper()
	w := b.post("/fleet", url.Values{
		"model":               {"A320"},
		"registration":        {registration},
		"year_of_manufacture": {"2015"},
		"manufacturer":        {"Airbus"},
		"passenger_capacity":  {"180"},
	})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/fleet" {
		t.Fatalf("register aircraft: got %d -> %q", w.Code, w.Header().Get("Location"))
	}
}

func TestFleetRegistryLifecycle(t *testing.T) {
	deps, r := newTestApp(t)
	b := newBrowser(t, r)
	b.login(deps, "fleetadmin", user.RoleAdmin)

	registerTestAircraft(t, b, "N12345")

	doc := parseHTML(t, b.get("/fleet"))
	if msg := doc.Find(".alert-success").Text(); !strings.Contains(msg, "Aircraft registered successfully.") {
		t.Errorf("expected registration flash, got %q", msg)
	}
	if got := doc.Find("td.registration").Text(); !strings.Contains(got, "N12345") {
		t.Errorf("aircraft missing from registry: %q", got)
	}

	// Duplicate registration is refused.
	w := b.post("/fleet", url.Values{
		"model":               {"B737"},
		"registration":        {"N12345"},
		"year_of_manufacture": {"2018"},
		"manufacturer":        {"Boeing"},
	})
	if w.Header().Get("Location") != "/fleet" {
		t.Fatalf("duplicate should bounce back to /fleet, got %q", w.Header().Get("Location"))
	}
	doc = parseHTML(t, b.get("/fleet"))
	if msg := doc.Find(".alert-danger").Text(); !strings.Contains(msg, "The registration is already in the fleet.") {
		t.Errorf("expected duplicate flash, got %q", msg)
	}

	ac, err := deps.Fleet.ListAircraft(context.Background())
	if err != nil || len(ac) != 1 {
		t.Fatalf("expected one aircraft, got %v %v", ac, err)
	}
	id := strconv.Itoa(int(ac[0].ID))

	// Edit with a valid year.
	w = b.post("/fleet/"+id+"/edit", url.Values{
		"model":               {"A320neo"},
		"registration":        {"N12345"},
		"year_of_manufacture": {"2016"},
		"manufacturer":        {"Airbus"},
	})
	if w.Header().Get("Location") != "/fleet" {
		t.Fatalf("edit should return to /fleet, got %q", w.Header().Get("Location"))
	}
	got, err := deps.Fleet.GetAircraft(context.Background(), ac[0].ID)
	if err != nil || got.Model != "A320neo" {
		t.Errorf("edit not persisted: %+v %v", got, err)
	}

	// A year in the future is rejected and the form is revisited.
	future := strconv.Itoa(time.Now().Year() + 1)
	w = b.post("/fleet/"+id+"/edit", url.Values{
		"model":               {"A320neo"},
		"registration":        {"N12345"},
		"year_of_manufacture": {future},
		"manufacturer":        {"Airbus"},
	})
	if w.Header().Get("Location") != "/fleet/"+id+"/edit" {
		t.Fatalf("future year should bounce to the edit form, got %q", w.Header().Get("Location"))
	}
	doc = parseHTML(t, b.get("/fleet/"+id+"/edit"))
	if msg := doc.Find(".alert-danger").Text(); !strings.Contains(msg, "no later than this one") {
		t.Errorf("expected year warning, got %q", msg)
	}

	// Delete; a second delete is a quiet no-op.
	for i := 0; i < 2; i++ {
		if w := b.post("/fleet/"+id+"/delete", nil); w.Code != http.StatusFound {
			t.Fatalf("delete %d should redirect, got %d", i, w.Code)
		}
	}
	doc = parseHTML(t, b.get("/fleet"))
	if got := doc.Find("td.registration").Text(); strings.Contains(got, "N12345") {
		t.Errorf("deleted aircraft still listed: %q", got)
	}
}

func TestAircraftPartsLifecycle(t *testing.T) {
	deps, r := newTestApp(t)
	b := newBrowser(t, r)
	b.login(deps, "fleetadmin2", user.RoleAdmin)

	registerTestAircraft(t, b, "G-ABCD")
	ac, err := deps.Fleet.ListAircraft(context.Background())
	if err != nil || len(ac) != 1 {
		t.Fatalf("expected one aircraft, got %v %v", ac, err)
	}
	id := strconv.Itoa(int(ac[0].ID))

	// Link a part.
	w := b.post("/fleet/"+id+"/parts", url.Values{
		"part_name":   {"Main gear tire"},
		"part_number": {"TIRE-001"},
	})
	if w.Header().Get("Location") != "/fleet/"+id+"/parts" {
		t.Fatalf("add part should return to the parts page, got %q", w.Header().Get("Location"))
	}
	doc := parseHTML(t, b.get("/fleet/"+id+"/parts"))
	if got := doc.Find("td.part-number").Text(); !strings.Contains(got, "TIRE-001") {
		t.Errorf("linked part missing: %q", got)
	}

	// The part number is unique fleet-wide.
	b.post("/fleet/"+id+"/parts", url.Values{
		"part_name":   {"Spare tire"},
		"part_number": {"TIRE-001"},
	})
	doc = parseHTML(t, b.get("/fleet/"+id+"/parts"))
	if msg := doc.Find(".alert-danger").Text(); !strings.Contains(msg, "The part number is already registered.") {
		t.Errorf("expected duplicate part flash, got %q", msg)
	}

	linked, err := deps.Fleet.PartsByAircraft(context.Background(), ac[0].ID)
	if err != nil || len(linked) != 1 {
		t.Fatalf("expected one linked part, got %v %v", linked, err)
	}
	partID := strconv.Itoa(int(linked[0].ID))

	// Unlink it.
	if w := b.post("/fleet/"+id+"/parts/"+partID+"/delete", nil); w.Code != http.StatusFound {
		t.Fatalf("delete part should redirect, got %d", w.Code)
	}
	doc = parseHTML(t, b.get("/fleet/"+id+"/parts"))
	if got := doc.Find("td.part-number").Text(); strings.Contains(got, "TIRE-001") {
		t.Errorf("deleted part still listed: %q", got)
	}
}

func TestFleetAbsentAircraftRedirects(t *testing.T) {
	deps, r := newTestApp(t)
	b := newBrowser(t, r)
	b.login(deps, "fleetadmin3", user.RoleAdmin)

	w := b.get("/fleet/4242/parts")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/fleet" {
		t.Fatalf("expected redirect to /fleet, got %d -> %q", w.Code, w.Header().Get("Location"))
	}
	doc := parseHTML(t, b.get("/fleet"))
	if msg := doc.Find(".alert-danger").Text(); !strings.Contains(msg, "Aircraft not found.") {
		t.Errorf("expected not-found flash, got %q", msg)
	}
}
