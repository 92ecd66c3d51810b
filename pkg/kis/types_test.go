package kis

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	for in, want := range map[string]Side{
		"buy": SideBuy, "BUY": SideBuy, "Buy": SideBuy,
		"sell": SideSell, "SELL": SideSell,
	} {
		got, err := ParseSide(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSide("hold")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOrder))
	assert.Contains(t, err.Error(), "order_type must be either 'buy' or 'sell'")
}

func TestOrderRequestValidate(t *testing.T) {
	valid := OrderRequest{Symbol: "005930", Quantity: 1, Price: 0, Side: SideBuy}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mut  func(*OrderRequest)
	}{
		{"bad side", func(r *OrderRequest) { r.Side = "hold" }},
		{"short symbol", func(r *OrderRequest) { r.Symbol = "5930" }},
		{"alpha symbol", func(r *OrderRequest) { r.Symbol = "TSLA" }},
		{"zero quantity", func(r *OrderRequest) { r.Quantity = 0 }},
		{"negative quantity", func(r *OrderRequest) { r.Quantity = -3 }},
		{"negative price", func(r *OrderRequest) { r.Price = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mut(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOrder), "got %v", err)
		})
	}
}

func TestProjectCarriesMissingKeysAsNull(t *testing.T) {
	src := map[string]any{"stck_prpr": "71200", "extra": "x"}
	got := project(src, []string{"stck_prpr", "per"})

	require.Len(t, got, 2)
	assert.Equal(t, "71200", got["stck_prpr"])
	assert.Nil(t, got["per"])
	assert.NotContains(t, got, "extra")
}

func TestProjectPresentDropsMissingKeys(t *testing.T) {
	src := map[string]any{"odno": "117057"}
	got := projectPresent(src, []string{"odno", "rmn_qty"})

	require.Len(t, got, 1)
	assert.Equal(t, "117057", got["odno"])
}
