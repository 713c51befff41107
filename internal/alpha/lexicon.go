package alpha

// signal represents a lexical alpha phrase with its weight. Negative
// weights mark fraud or manipulation language.
type signal struct {
	Phrase string
	Weight float64
}

// lexicon is the ordered phrase table scanned against post text. Multi-word
// phrases match as substrings of the lowercased text.
var lexicon = []signal{
	// Technical / market structure
	{"breakout", 3},
	{"support", 2},
	{"resistance", 2},
	{"consolidation", 1},
	{"accumulation", 3},
	{"distribution", -2},
	{"volume spike", 4},
	{"liquidity", 2},

	// Fundamentals
	{"market cap", 1},
	{"circulating supply", 1},
	{"partnership", 3},
	{"adoption", 4},
	{"institutional", 3},
	{"regulation", 2},
	{"compliance", 2},

	// Project quality
	{"audit", 2},
	{"security", 2},
	{"team", 2},
	{"roadmap", 1},
	{"milestone", 2},

	// Social momentum
	{"viral", 4},
	{"trending", 3},
	{"fomo", 2},
	{"community", 2},
	{"influencer", 3},
	{"whale", 2},
	{"diamond hands", 2},
	{"hodl", 1},

	// Macro / rotation
	{"bull run", 3},
	{"alt season", 2},
	{"rotation", 2},
	{"sector", 2},
	{"narrative", 2},
	{"momentum", 3},
	{"relative strength", 3},

	// Fraud and manipulation
	{"scam", -5},
	{"rug", -5},
	{"ponzi", -5},
	{"fake", -4},
	{"manipulation", -4},
	{"pump and dump", -4},
	{"insider", -3},
	{"wash trading", -4},
}

// riskKeywords flag a post as high risk regardless of its aggregate score.
var riskKeywords = []string{"scam", "rug", "ponzi", "fake", "manipulation"}
