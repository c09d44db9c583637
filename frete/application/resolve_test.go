package application

import (
	"errors"
	"testing"

	"axado-frete/frete/domain"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var routes = []domain.Route{
	{Origin: "saopaulo", Destination: "florianopolis", DeadlineDays: 2, InsurancePercent: 2, PriceKey: "sao", FixedFee: 10},
	{Origin: "florianopolis", Destination: "brasilia", DeadlineDays: 3, InsurancePercent: 3, PriceKey: "flo", FixedFee: 13},
	{Origin: "florianopolis", Destination: "brasilia", DeadlineDays: 9, InsurancePercent: 9, PriceKey: "dup", FixedFee: 99},
}

func TestResolveRoute_ReturnsFirstExactMatch(t *testing.T) {
	r, err := ResolveRoute("florianopolis", "brasilia", routes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DeadlineDays != 3 || r.InsurancePercent != 3 || r.PriceKey != "flo" || r.FixedFee != 13 {
		t.Fatalf("unexpected route: %+v", r)
	}
}

func TestResolveRoute_NoNormalization(t *testing.T) {
	cases := [][2]string{
		{"Florianopolis", "brasilia"},
		{"florianopolis ", "brasilia"},
		{"brasilia", "florianopolis"},
		{"", ""},
	}
	for _, c := range cases {
		if _, err := ResolveRoute(c[0], c[1], routes); !errors.Is(err, domain.ErrRouteNotFound) {
			t.Fatalf("expected ErrRouteNotFound for %q->%q, got %v", c[0], c[1], err)
		}
	}
}

func TestResolveRoute_EmptyTable(t *testing.T) {
	if _, err := ResolveRoute("a", "b", nil); !errors.Is(err, domain.ErrRouteNotFound) {
		t.Fatalf("expected ErrRouteNotFound, got %v", err)
	}
}

// a primeira linha tem limite 5 e não é a rota pedida.
var limitedRoutes = []domain.LimitedRoute{
	{Origin: "saopaulo", Destination: "curitiba", WeightLimit: 5, DeadlineDays: 1, InsurancePercent: 1, TaxPercent: 6, PriceKey: "sao"},
	{Origin: "florianopolis", Destination: "brasilia", WeightLimit: 20, DeadlineDays: 2, InsurancePercent: 2, TaxPercent: 6, PriceKey: "flo"},
	{Origin: "florianopolis", Destination: "salvador", WeightLimit: 0, DeadlineDays: 4, InsurancePercent: 2, TaxPercent: 7, CustomsPercent: 3, PriceKey: "flo"},
}

func TestResolveLimitedRoute_OnMatchIgnoresOtherRowsLimits(t *testing.T) {
	r, err := ResolveLimitedRoute("florianopolis", "brasilia", dec("7"), limitedRoutes, LimitCheckOnMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DeadlineDays != 2 || r.PriceKey != "flo" {
		t.Fatalf("unexpected route: %+v", r)
	}
}

func TestResolveLimitedRoute_OnScanAbortsOnEarlierRow(t *testing.T) {
	_, err := ResolveLimitedRoute("florianopolis", "brasilia", dec("7"), limitedRoutes, LimitCheckOnScan)
	if !errors.Is(err, domain.ErrWeightLimitExceeded) {
		t.Fatalf("expected ErrWeightLimitExceeded, got %v", err)
	}
}

func TestResolveLimitedRoute_OnScanPassesWhenNoRowExceeds(t *testing.T) {
	r, err := ResolveLimitedRoute("florianopolis", "brasilia", dec("5"), limitedRoutes, LimitCheckOnScan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DeadlineDays != 2 {
		t.Fatalf("unexpected route: %+v", r)
	}
}

func TestResolveLimitedRoute_MatchedRowLimit(t *testing.T) {
	for _, check := range []LimitCheck{LimitCheckOnMatch, LimitCheckOnScan} {
		_, err := ResolveLimitedRoute("florianopolis", "brasilia", dec("20.5"), limitedRoutes, check)
		if !errors.Is(err, domain.ErrWeightLimitExceeded) {
			t.Fatalf("%s: expected ErrWeightLimitExceeded, got %v", check, err)
		}
	}

	// limite é inclusivo: peso == limite passa
	if _, err := ResolveLimitedRoute("florianopolis", "brasilia", dec("20"), limitedRoutes, LimitCheckOnMatch); err != nil {
		t.Fatalf("expected weight equal to limit to pass, got %v", err)
	}
}

func TestResolveLimitedRoute_NonPositiveLimitMeansNoLimit(t *testing.T) {
	r, err := ResolveLimitedRoute("florianopolis", "salvador", dec("1000"), limitedRoutes, LimitCheckOnMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.CustomsPercent != 3 {
		t.Fatalf("unexpected route: %+v", r)
	}

	neg := []domain.LimitedRoute{{Origin: "a", Destination: "b", WeightLimit: -1}}
	if _, err := ResolveLimitedRoute("a", "b", dec("1000"), neg, LimitCheckOnScan); err != nil {
		t.Fatalf("expected negative limit to mean no limit, got %v", err)
	}
}

func TestResolveLimitedRoute_NotFound(t *testing.T) {
	_, err := ResolveLimitedRoute("florianopolis", "recife", dec("1"), limitedRoutes, LimitCheckOnMatch)
	if !errors.Is(err, domain.ErrRouteNotFound) {
		t.Fatalf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestParseLimitCheck(t *testing.T) {
	tests := []struct {
		in      string
		want    LimitCheck
		wantErr bool
	}{
		{"", LimitCheckOnMatch, false},
		{"match", LimitCheckOnMatch, false},
		{" SCAN ", LimitCheckOnScan, false},
		{"before", LimitCheckOnMatch, true},
	}
	for _, tt := range tests {
		got, err := ParseLimitCheck(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLimitCheck(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLimitCheck(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

var bands = []domain.PriceBand{
	{Key: "sao", Lower: 0, Upper: 10, PricePerKg: dec("9")},
	{Key: "flo", Lower: 0, Upper: 5, PricePerKg: dec("15")},
	{Key: "flo", Lower: 5, Upper: 10, PricePerKg: dec("12")},
	{Key: "flo", Lower: 10, Upper: 20, PricePerKg: dec("11.5")},
	{Key: "flo", Lower: 20, Open: true, PricePerKg: dec("10")},
}

func TestResolvePrice_Bands(t *testing.T) {
	tests := []struct {
		weight string
		want   string
	}{
		{"0", "15"},
		{"4.99", "15"},
		{"5", "12"},
		{"7", "12"},
		{"9.999", "12"},
		{"10", "11.5"},
		{"19.5", "11.5"},
		{"20", "10"},
		{"500", "10"},
	}
	for _, tt := range tests {
		got, err := ResolvePrice("flo", dec(tt.weight), bands)
		if err != nil {
			t.Fatalf("weight %s: unexpected error: %v", tt.weight, err)
		}
		if !got.Equal(dec(tt.want)) {
			t.Fatalf("weight %s: got %s, want %s", tt.weight, got, tt.want)
		}
	}
}

func TestResolvePrice_OutsideClosedBands(t *testing.T) {
	for _, w := range []string{"10", "-1", "10.01"} {
		if _, err := ResolvePrice("sao", dec(w), bands); !errors.Is(err, domain.ErrPriceNotFound) {
			t.Fatalf("weight %s: expected ErrPriceNotFound, got %v", w, err)
		}
	}
}

func TestResolvePrice_UnknownKey(t *testing.T) {
	if _, err := ResolvePrice("xyz", dec("1"), bands); !errors.Is(err, domain.ErrPriceNotFound) {
		t.Fatalf("expected ErrPriceNotFound, got %v", err)
	}
}

func TestResolvePrice_OpenBandEndsScanRegardlessOfWeight(t *testing.T) {
	// a faixa aberta vence mesmo se o peso estiver abaixo do seu início
	b := []domain.PriceBand{
		{Key: "k", Lower: 10, Open: true, PricePerKg: dec("3")},
		{Key: "k", Lower: 0, Upper: 10, PricePerKg: dec("4")},
	}
	got, err := ResolvePrice("k", dec("1"), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dec("3")) {
		t.Fatalf("expected open band price 3, got %s", got)
	}
}
