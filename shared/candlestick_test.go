package shared

import (
	"testing"
	"time"
)

func TestCandlestickValidate(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		candle  Candlestick
		wantErr bool
	}{
		{
			name: "valid candlestick",
			candle: Candlestick{
				Open:   10,
				Low:    8,
				High:   15,
				Close:  12,
				Volume: 5,
				Date:   now,
			},
			wantErr: false,
		},
		{
			name: "valid flat candlestick",
			candle: Candlestick{
				Open:   10,
				Low:    10,
				High:   10,
				Close:  10,
				Volume: 0,
				Date:   now,
			},
			wantErr: false,
		},
		{
			name: "non-positive price",
			candle: Candlestick{
				Open:   0,
				Low:    8,
				High:   15,
				Close:  12,
				Volume: 5,
				Date:   now,
			},
			wantErr: true,
		},
		{
			name: "negative volume",
			candle: Candlestick{
				Open:   10,
				Low:    8,
				High:   15,
				Close:  12,
				Volume: -1,
				Date:   now,
			},
			wantErr: true,
		},
		{
			name: "high below close",
			candle: Candlestick{
				Open:   10,
				Low:    8,
				High:   11,
				Close:  12,
				Volume: 5,
				Date:   now,
			},
			wantErr: true,
		},
		{
			name: "low above open",
			candle: Candlestick{
				Open:   10,
				Low:    11,
				High:   15,
				Close:  12,
				Volume: 5,
				Date:   now,
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		err := test.candle.Validate()
		if (err != nil) != test.wantErr {
			t.Errorf("%s: expected error %v, got %v", test.name, test.wantErr, err)
		}
	}
}
