package domain

// Pricing constants for the storefront. Amounts are minor units (cents).
const (
	// TaxRatePercent is the flat storefront tax rate applied to the subtotal.
	TaxRatePercent = 8
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold int64 = 7500
	// FlatShippingFee is charged on orders below the free-shipping threshold.
	FlatShippingFee int64 = 999
)

// CartTotals carries every derived monetary figure for a cart. Instances are
// computed on demand; they are never persisted alongside the cart document.
type CartTotals struct {
	ItemCount int
	Subtotal  int64
	Tax       int64
	Shipping  int64
	Total     int64
}

// Subtotal sums the extended line prices of the cart in minor units.
func (c Cart) Subtotal() int64 {
	var subtotal int64
	for _, line := range c.Lines {
		subtotal += line.LineSubtotal()
	}
	return subtotal
}

// Tax applies the flat tax rate to the subtotal, rounding half up to the cent.
func Tax(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	return (subtotal*TaxRatePercent + 50) / 100
}

// Shipping returns the shipping charge for a subtotal: free at or above the
// threshold, the flat fee below it, and zero for an empty cart.
func Shipping(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Totals derives the full monetary breakdown for the cart.
func (c Cart) Totals() CartTotals {
	subtotal := c.Subtotal()
	tax := Tax(subtotal)
	shipping := Shipping(subtotal)
	return CartTotals{
		ItemCount: c.ItemCount(),
		Subtotal:  subtotal,
		Tax:       tax,
		Shipping:  shipping,
		Total:     subtotal + tax + shipping,
	}
}

// BundleTier describes a volume discount offered for multi-item carts.
type BundleTier struct {
	Percentage int
	MinItems   int
}

// BundleTierFor returns the discount tier earned by itemCount distinct or
// repeated cart items: 15% at three or more, 10% at two, none otherwise.
func BundleTierFor(itemCount int) BundleTier {
	switch {
	case itemCount >= 3:
		return BundleTier{Percentage: 15, MinItems: 3}
	case itemCount >= 2:
		return BundleTier{Percentage: 10, MinItems: 2}
	default:
		return BundleTier{}
	}
}
