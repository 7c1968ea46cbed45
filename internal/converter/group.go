package converter

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ginjaninja78/order-form-builder/internal/types"
)

// =============================================================================
// VENDOR GROUPING
// =============================================================================

// GroupByVendor partitions items by their trimmed vendor string.
//
// Keys are compared exactly: "Acme" and "acme" are two groups. Groups are
// returned in order of each vendor's first appearance, and every group keeps
// its items in input order.
func GroupByVendor(items []types.OrderLineItem) []types.VendorGroup {
	groups := make(map[string][]types.OrderLineItem)
	groupOrder := []string{} // Maintain order of first occurrence

	for _, item := range items {
		key := strings.TrimSpace(item.Vendor)
		if _, exists := groups[key]; !exists {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], item)
	}

	result := make([]types.VendorGroup, len(groupOrder))
	for i, key := range groupOrder {
		result[i] = types.VendorGroup{Vendor: key, Items: groups[key]}
	}
	return result
}

// Flatten concatenates the groups' items in group order.
func Flatten(groups []types.VendorGroup) []types.OrderLineItem {
	var items []types.OrderLineItem
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return items
}

// =============================================================================
// PREVIEW
// =============================================================================

// PreviewSummary describes what a generation run would produce.
type PreviewSummary struct {
	VendorCount int
	Vendors     []string
	TotalItems  int
}

// Preview summarizes the documents GroupByVendor would lead to.
func Preview(items []types.OrderLineItem) PreviewSummary {
	groups := GroupByVendor(items)
	vendors := make([]string, len(groups))
	for i, g := range groups {
		vendors[i] = g.Vendor
	}
	return PreviewSummary{VendorCount: len(groups), Vendors: vendors, TotalItems: len(items)}
}

// =============================================================================
// NEAR-DUPLICATE VENDORS
// =============================================================================

// VendorSimilarity is a pair of distinct vendor keys that look like the same
// supplier typed two ways.
type VendorSimilarity struct {
	First    string
	Second   string
	Distance int
}

// SimilarVendors reports vendor pairs whose case-folded edit distance is at
// most maxDistance. Names no longer than 2*maxDistance only match when they
// differ by case alone. Groups are never merged; the pairs are advisory.
func SimilarVendors(groups []types.VendorGroup, maxDistance int) []VendorSimilarity {
	var pairs []VendorSimilarity
	for i := 0; i < len(groups); i++ {
		a := strings.ToLower(groups[i].Vendor)
		for j := i + 1; j < len(groups); j++ {
			b := strings.ToLower(groups[j].Vendor)
			d := fuzzy.LevenshteinDistance(a, b)
			if d == 0 || (d <= maxDistance && min(len(a), len(b)) > 2*maxDistance) {
				pairs = append(pairs, VendorSimilarity{
					First:    groups[i].Vendor,
					Second:   groups[j].Vendor,
					Distance: d,
				})
			}
		}
	}
	return pairs
}
