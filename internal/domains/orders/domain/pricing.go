package domain

import "math"

// Fixed business rules for checkout pricing.
const (
	// FreeShippingThreshold is the items total above which shipping is free.
	FreeShippingThreshold = 100.0
	// FlatShippingFee applies below the free-shipping threshold.
	FlatShippingFee = 10.0
	// TaxRate is applied to the items total.
	TaxRate = 0.15
)

// PriceQuote is the server-side price breakdown for a line-item list. Orders
// persist a quote as a frozen snapshot.
type PriceQuote struct {
	ItemsTotal  float64
	ShippingFee float64
	Tax         float64
	GrandTotal  float64
}

// Quote prices a line-item list. It is pure and deterministic: total the
// lines, waive shipping above the threshold, apply the tax rate, and round
// every figure to two decimal places. An empty list yields a zero quote; the
// caller rejects empty orders before creation.
func Quote(lines []LineItem) PriceQuote {
	itemsTotal := 0.0
	for _, line := range lines {
		itemsTotal += line.Price * float64(line.Qty)
	}
	itemsTotal = round2(itemsTotal)
	if itemsTotal == 0 {
		return PriceQuote{}
	}
	shipping := FlatShippingFee
	if itemsTotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := round2(TaxRate * itemsTotal)
	return PriceQuote{
		ItemsTotal:  itemsTotal,
		ShippingFee: shipping,
		Tax:         tax,
		GrandTotal:  round2(itemsTotal + shipping + tax),
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
