package shared

import "fmt"

// Asset represents the class of a tracked market symbol.
type Asset int

const (
	Crypto Asset = iota
	Stock
	Forex
)

// String stringifies the provided asset class.
func (a *Asset) String() string {
	switch *a {
	case Crypto:
		return "crypto"
	case Stock:
		return "stock"
	case Forex:
		return "forex"
	default:
		return "unknown"
	}
}

// ParseAsset parses an asset class from the provided string.
func ParseAsset(asset string) (Asset, error) {
	switch asset {
	case "crypto":
		return Crypto, nil
	case "stock":
		return Stock, nil
	case "forex":
		return Forex, nil
	default:
		return 0, fmt.Errorf("unknown asset class provided: %s", asset)
	}
}
