package cartera

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m            Money
		want, signed string
	}{
		{USD(1234.5), "$1,234.50", "+$1,234.50"},
		{USD(-12.345), "-$12.35", "-$12.35"},
		{M(0, ""), "$0.00", "-"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
		if got := tc.m.SignedString(); got != tc.signed {
			t.Errorf("SignedString() = %q, want %q", got, tc.signed)
		}
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	if got := M(2, "").Add(USD(3)); !got.Equal(USD(5)) {
		t.Errorf("Add() = %v (%s), want 5 USD", got, got.Currency())
	}
	if got := USD(10).Div(Q(4)); !got.Equal(USD(2.5)) {
		t.Errorf("Div() = %v, want 2.5", got)
	}
	if got := USD(10).Div(Q(0)); !got.IsZero() {
		t.Errorf("Div(0) = %v, want 0", got)
	}
	if got := USD(1).Ratio(USD(0)); got.IsApplicable() {
		t.Errorf("Ratio(0) = %v, want not applicable", got)
	}
	if got := USD(1).Ratio(USD(4)); !got.Equal(Ratio(decimalOf(0.25))) {
		t.Errorf("Ratio() = %v, want 25%%", got)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Add() of two currencies should panic")
		}
	}()
	USD(1).Add(M(1, "ARS"))
}

func TestMoney_MarshalJSON(t *testing.T) {
	got, err := json.Marshal(USD(12.345))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"currency":"USD","amount":"12.35"}`; string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestPercent(t *testing.T) {
	testCases := []struct {
		p            Percent
		want, signed string
		json         string
	}{
		{Ratio(decimalOf(0.1234)), "12.34%", "+12.34%", "0.1234"},
		{Ratio(decimalOf(-0.05)), "-5.00%", "-5.00%", "-0.05"},
		{Ratio(decimalOf(0)), "0.00%", "0.00%", "0"},
		{NotApplicable, "-", "-", "null"},
	}
	for _, tc := range testCases {
		if got := tc.p.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
		if got := tc.p.SignedString(); got != tc.signed {
			t.Errorf("SignedString() = %q, want %q", got, tc.signed)
		}
		if got, _ := json.Marshal(tc.p); string(got) != tc.json {
			t.Errorf("Marshal() = %s, want %s", got, tc.json)
		}
	}
	if NotApplicable.Equal(Ratio(decimalOf(0))) {
		t.Errorf("NotApplicable should not equal 0%%")
	}
}

func TestQuantity_String(t *testing.T) {
	if got := Q(2.1234567).String(); got != "2.123457" {
		t.Errorf("String() = %q, want %q", got, "2.123457")
	}
}
