package shared

import "testing"

func TestDecisionString(t *testing.T) {
	tests := []struct {
		name     string
		decision Decision
		want     string
	}{
		{
			name:     "hold",
			decision: Hold,
			want:     "HOLD",
		},
		{
			name:     "buy",
			decision: Buy,
			want:     "BUY",
		},
		{
			name:     "sell",
			decision: Sell,
			want:     "SELL",
		},
		{
			name:     "unknown",
			decision: Decision(999),
			want:     "unknown",
		},
	}

	for _, test := range tests {
		str := test.decision.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}

func TestCloseReasonString(t *testing.T) {
	tests := []struct {
		name   string
		reason CloseReason
		want   string
	}{
		{
			name:   "stop loss",
			reason: StopLoss,
			want:   "STOP_LOSS",
		},
		{
			name:   "take profit",
			reason: TakeProfit,
			want:   "TAKE_PROFIT",
		},
		{
			name:   "reversal signal",
			reason: ReversalSignal,
			want:   "SIGNAL",
		},
		{
			name:   "unknown",
			reason: CloseReason(999),
			want:   "unknown",
		},
	}

	for _, test := range tests {
		str := test.reason.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}
