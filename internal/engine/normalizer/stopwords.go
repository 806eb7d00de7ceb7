package normalizer

// stopWords are dropped from every token sequence: common function words,
// e-commerce filler that says nothing about what an item is, and generic
// size/variant tokens that appear across unrelated categories.
var stopWords = map[string]bool{
	// Function words.
	"an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true,
	"in": true, "is": true, "it": true, "its": true, "of": true,
	"on": true, "or": true, "that": true, "the": true, "this": true,
	"to": true, "was": true, "with": true, "your": true,

	// E-commerce filler.
	"authentic": true, "brand": true, "bundle": true, "free": true,
	"genuine": true, "item": true, "lot": true, "new": true,
	"nib": true, "nwt": true, "oem": true, "original": true,
	"pack": true, "pcs": true, "piece": true, "pieces": true,
	"sale": true, "sealed": true, "shipping": true, "used": true,

	// Generic size / variant tokens.
	"cm": true, "gb": true, "gen": true, "inch": true, "kg": true,
	"lb": true, "lg": true, "max": true, "mb": true, "med": true,
	"mini": true, "ml": true, "mm": true, "oz": true, "plus": true,
	"pro": true, "size": true, "sm": true, "tb": true, "xl": true,
	"xs": true, "xxl": true,
}
