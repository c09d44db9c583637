package frete

import (
	"errors"
	"strings"
	"testing"

	"axado-frete/frete/domain"

	"github.com/shopspring/decimal"
)

func TestExtractAndValidateArgs_Values(t *testing.T) {
	req, err := ExtractAndValidateArgs([]string{"florianopolis", "brasilia", "50", "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Origin != "florianopolis" || req.Destination != "brasilia" {
		t.Fatalf("unexpected route: %+v", req)
	}
	if !req.DeclaredValue.Equal(decimal.NewFromInt(50)) || !req.Weight.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("unexpected numbers: nf=%s peso=%s", req.DeclaredValue, req.Weight)
	}
}

func TestExtractAndValidateArgs_FractionalWeight(t *testing.T) {
	req, err := ExtractAndValidateArgs([]string{"a", "b", "10.25", "7.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Weight.String() != "7.5" || req.DeclaredValue.String() != "10.25" {
		t.Fatalf("unexpected numbers: nf=%s peso=%s", req.DeclaredValue, req.Weight)
	}
}

func TestExtractAndValidateArgs_WrongCount(t *testing.T) {
	for _, args := range [][]string{nil, {"a", "b", "1"}, {"a", "b", "1", "2", "3"}} {
		_, err := ExtractAndValidateArgs(args)
		var usage *domain.UsageError
		if !errors.As(err, &usage) {
			t.Fatalf("args %v: expected UsageError, got %v", args, err)
		}
	}
}

func TestExtractAndValidateArgs_NonNumeric(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "cinquenta", "7"}, "<nota_fiscal>"},
		{[]string{"a", "b", "50", "sete"}, "<peso>"},
		{[]string{"a", "b", "50", ""}, "<peso>"},
	}
	for _, tt := range tests {
		_, err := ExtractAndValidateArgs(tt.args)
		var usage *domain.UsageError
		if !errors.As(err, &usage) {
			t.Fatalf("args %v: expected UsageError, got %v", tt.args, err)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("args %v: expected message about %s, got %q", tt.args, tt.want, err.Error())
		}
	}
}
