package infer

import "github.com/jonesrussell/north-cloud/lead-engine/internal/domain"

// DefaultRules is the compiled-in keyword-to-product catalog covering
// industrial fuels and specialty products. Deployments override it via
// the inference.rules config section.
func DefaultRules() []domain.InferenceRule {
	return []domain.InferenceRule{
		// Furnace Oil
		{Keyword: "furnace oil", Product: "FO", Confidence: 0.9, Reason: "Mentioned 'furnace oil'"},
		{Keyword: "fuel oil", Product: "FO", Confidence: 0.8, Reason: "Mentioned 'fuel oil'"},
		{Keyword: "boiler", Product: "FO", Confidence: 0.5, Reason: "Equipment: 'boiler' detected"},
		{Keyword: "thermal power", Product: "FO", Confidence: 0.5, Reason: "Industry: thermal power"},
		{Keyword: "kiln", Product: "FO", Confidence: 0.4, Reason: "Equipment: 'kiln' detected"},

		// High Speed Diesel
		{Keyword: "high speed diesel", Product: "HSD", Confidence: 0.9, Reason: "Mentioned 'high speed diesel'"},
		{Keyword: "hsd", Product: "HSD", Confidence: 0.9, Reason: "Mentioned 'HSD'"},
		{Keyword: "diesel", Product: "HSD", Confidence: 0.7, Reason: "Mentioned 'diesel'"},
		{Keyword: "dg sets", Product: "HSD", Confidence: 0.6, Reason: "Equipment: 'DG sets' detected"},
		{Keyword: "generator", Product: "HSD", Confidence: 0.5, Reason: "Equipment: 'generator' detected"},
		{Keyword: "mining", Product: "HSD", Confidence: 0.4, Reason: "Industry: mining"},
		{Keyword: "construction equipment", Product: "HSD", Confidence: 0.5, Reason: "Equipment: construction fleet"},

		// Light Diesel Oil
		{Keyword: "light diesel oil", Product: "LDO", Confidence: 0.9, Reason: "Mentioned 'light diesel oil'"},
		{Keyword: "ldo", Product: "LDO", Confidence: 0.9, Reason: "Mentioned 'LDO'"},
		{Keyword: "food processing", Product: "LDO", Confidence: 0.4, Reason: "Industry: food processing"},

		// Bitumen
		{Keyword: "bitumen", Product: "Bitumen", Confidence: 0.9, Reason: "Mentioned 'bitumen'"},
		{Keyword: "asphalt", Product: "Bitumen", Confidence: 0.8, Reason: "Mentioned 'asphalt'"},
		{Keyword: "road construction", Product: "Bitumen", Confidence: 0.7, Reason: "Industry: road construction"},
		{Keyword: "highway", Product: "Bitumen", Confidence: 0.6, Reason: "Industry: highway works"},
		{Keyword: "hot mix plant", Product: "Bitumen", Confidence: 0.6, Reason: "Equipment: 'hot mix plant' detected"},
		{Keyword: "paving", Product: "Bitumen", Confidence: 0.5, Reason: "Mentioned 'paving'"},

		// Hexane
		{Keyword: "hexane", Product: "Hexane", Confidence: 0.9, Reason: "Mentioned 'hexane'"},
		{Keyword: "solvent extraction", Product: "Hexane", Confidence: 0.7, Reason: "Industry: solvent extraction"},
		{Keyword: "edible oil", Product: "Hexane", Confidence: 0.5, Reason: "Industry: edible oil"},

		// Mineral Turpentine Oil
		{Keyword: "mineral turpentine", Product: "MTO", Confidence: 0.9, Reason: "Mentioned 'mineral turpentine'"},
		{Keyword: "white spirit", Product: "MTO", Confidence: 0.8, Reason: "Mentioned 'white spirit'"},
		{Keyword: "paint", Product: "MTO", Confidence: 0.4, Reason: "Industry: paint"},
		{Keyword: "varnish", Product: "MTO", Confidence: 0.4, Reason: "Industry: varnish"},

		// Marine Bunker Fuel
		{Keyword: "bunker fuel", Product: "Bunker Fuel", Confidence: 0.9, Reason: "Mentioned 'bunker fuel'"},
		{Keyword: "marine diesel", Product: "Bunker Fuel", Confidence: 0.8, Reason: "Mentioned 'marine diesel'"},
		{Keyword: "shipping", Product: "Bunker Fuel", Confidence: 0.4, Reason: "Industry: shipping"},

		// Sulphur
		{Keyword: "sulphur", Product: "Sulphur", Confidence: 0.9, Reason: "Mentioned 'sulphur'"},
		{Keyword: "fertilizer", Product: "Sulphur", Confidence: 0.4, Reason: "Industry: fertilizer"},

		// Propylene
		{Keyword: "propylene", Product: "Propylene", Confidence: 0.9, Reason: "Mentioned 'propylene'"},
		{Keyword: "polymer", Product: "Propylene", Confidence: 0.4, Reason: "Industry: polymer"},
	}
}

// DefaultRelevanceKeywords is the compiled-in pre-filter for fetched
// signals: an item mentioning none of these never enters the pipeline.
func DefaultRelevanceKeywords() []string {
	return []string{
		"expansion", "plant", "project", "investment", "tender",
		"power", "energy", "fuel", "diesel", "petroleum", "oil",
		"construction", "infrastructure", "manufacturing",
		"steel", "cement", "chemical", "refinery", "pipeline",
		"bitumen", "road", "highway", "railway",
	}
}

// DefaultUrgencyKeywords is the compiled-in urgency marker table used by
// the scorer and the extractor.
func DefaultUrgencyKeywords() []string {
	return []string{
		"urgent", "immediate", "asap", "deadline", "tender",
		"this month", "rfq", "expedite",
	}
}

// DefaultKnownCompanies seeds the extractor's organization dictionary.
func DefaultKnownCompanies() []string {
	return []string{
		"Reliance", "Tata", "Adani", "JSW", "UltraTech", "L&T",
		"NTPC", "ONGC", "Coal India", "Power Grid", "SAIL",
		"Hindalco", "Vedanta", "Grasim", "ACC", "Ambuja",
		"Shree Cement", "Asian Paints", "Marico", "Indian Oil",
		"Bharat Petroleum", "Hindustan Petroleum", "Indian Railways",
	}
}

// DefaultStates is the compiled-in territory state table.
func DefaultStates() []string {
	return []string{
		"Andhra Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa",
		"Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
		"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra",
		"Odisha", "Punjab", "Rajasthan", "Tamil Nadu", "Telangana",
		"Uttar Pradesh", "Uttarakhand", "West Bengal", "Delhi",
	}
}
