package domain

// InferenceRule maps one keyword to a product with a base confidence and a
// reason template. Rule tables are explicit configuration passed into the
// inference engine, never package-level mutable state.
type InferenceRule struct {
	Keyword    string  `mapstructure:"keyword"    yaml:"keyword"    json:"keyword"`
	Product    string  `mapstructure:"product"    yaml:"product"    json:"product"`
	Confidence float64 `mapstructure:"confidence" yaml:"confidence" json:"confidence"`
	Reason     string  `mapstructure:"reason"     yaml:"reason"     json:"reason"`
}

// Extraction is the outcome of running the keyword/entity extractor over a
// signal's text. An empty CompanyCandidate means "unknown company", not an
// error.
type Extraction struct {
	CompanyCandidate string   `json:"company_candidate,omitempty"`
	Keywords         []string `json:"keywords"`
	UrgencyKeywords  []string `json:"urgency_keywords,omitempty"`
	States           []string `json:"states,omitempty"`
}
