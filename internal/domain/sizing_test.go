package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBuyQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quoteFree string
		percent   string
		price     string
		want      string
		wantErr   error
	}{
		{
			name:      "half of 100 USDT at 0.10",
			quoteFree: "100",
			percent:   "50",
			price:     "0.10",
			want:      "500",
		},
		{
			name:      "full balance",
			quoteFree: "1000",
			percent:   "100",
			price:     "25000",
			want:      "0.04",
		},
		{
			name:      "balance below minimum trade value",
			quoteFree: "5",
			percent:   "50",
			price:     "0.10",
			wantErr:   ErrInsufficientBalance,
		},
		{
			name:      "balance just below minimum",
			quoteFree: "9.99",
			percent:   "100",
			price:     "1",
			wantErr:   ErrInsufficientBalance,
		},
		{
			name:      "balance exactly at minimum is tradable",
			quoteFree: "10",
			percent:   "100",
			price:     "2",
			want:      "5",
		},
		{
			name:      "zero price",
			quoteFree: "100",
			percent:   "50",
			price:     "0",
			wantErr:   ErrPriceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuyQuantity(
				decimal.RequireFromString(tt.quoteFree),
				decimal.RequireFromString(tt.percent),
				decimal.RequireFromString(tt.price),
			)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}
