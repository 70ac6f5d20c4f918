package shared

// Decision represents the directional call derived from indicator votes.
type Decision int

const (
	Hold Decision = iota
	Buy
	Sell
)

// String stringifies the provided decision.
func (d *Decision) String() string {
	switch *d {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case Hold:
		return "HOLD"
	default:
		return "unknown"
	}
}

// CloseReason represents the reason a position was closed.
type CloseReason int

const (
	StopLoss CloseReason = iota
	TakeProfit
	ReversalSignal
)

// String stringifies the provided close reason.
func (r *CloseReason) String() string {
	switch *r {
	case StopLoss:
		return "STOP_LOSS"
	case TakeProfit:
		return "TAKE_PROFIT"
	case ReversalSignal:
		return "SIGNAL"
	default:
		return "unknown"
	}
}
