package mappings

// LeadMapping represents the Elasticsearch mapping for lead documents
type LeadMapping struct {
	Settings LeadSettings `json:"settings"`
	Mappings LeadMappings `json:"mappings"`
}

// LeadSettings defines index-level settings
type LeadSettings struct {
	BaseSettings
}

// LeadMappings defines the field mappings for leads
type LeadMappings struct {
	Properties LeadProperties `json:"properties"`
}

// LeadProperties defines the properties for each field in the lead mapping.
// Documents are denormalized with the company name so dashboard searches
// need no join against the database.
type LeadProperties struct {
	LeadID      Field `json:"lead_id"`
	CompanyID   Field `json:"company_id"`
	CompanyName Field `json:"company_name"`

	// Originating signal
	SignalText Field `json:"signal_text"`
	SignalURL  Field `json:"signal_url"`
	SignalType Field `json:"signal_type"`

	// Inference results
	Keywords            Field `json:"keywords"`
	RecommendedProducts Field `json:"recommended_products"`

	// Scoring
	LeadScore      Field `json:"lead_score"`
	IntentStrength Field `json:"intent_strength"`

	// Routing
	TerritoryState Field `json:"territory_state"`
	Status         Field `json:"status"`

	CreatedAt Field `json:"created_at"`
}

// NewLeadMapping creates a new lead mapping with default settings
func NewLeadMapping() *LeadMapping {
	return &LeadMapping{
		Settings: LeadSettings{
			BaseSettings: DefaultSettings(),
		},
		Mappings: LeadMappings{
			Properties: LeadProperties{
				LeadID: Field{
					Type: "long",
				},
				CompanyID: Field{
					Type: "long",
				},
				CompanyName: Field{
					Type:     "text",
					Analyzer: "standard",
				},
				SignalText: Field{
					Type:     "text",
					Analyzer: "standard",
				},
				SignalURL: Field{
					Type: "keyword",
				},
				SignalType: Field{
					Type: "keyword",
				},
				Keywords: Field{
					Type: "keyword", // Array of keywords
				},
				RecommendedProducts: Field{
					Type: "object", // Array of product/confidence/reason
				},
				LeadScore: Field{
					Type: "float",
				},
				IntentStrength: Field{
					Type: "keyword",
				},
				TerritoryState: Field{
					Type: "keyword",
				},
				Status: Field{
					Type: "keyword",
				},
				CreatedAt: Field{
					Type:   "date",
					Format: "strict_date_optional_time||epoch_millis",
				},
			},
		},
	}
}

// GetJSON returns the lead mapping as a JSON string
func (m *LeadMapping) GetJSON() (string, error) {
	return ToJSON(m)
}

// Validate validates the lead mapping configuration
func (m *LeadMapping) Validate() error {
	return ValidateSettings(m.Settings.BaseSettings)
}
