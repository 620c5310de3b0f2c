package service

import (
	"github.com/strandshq/strands-api/internal/models"
)

// ManagerFixture is a manager template. The plaintext password is hashed at
// replay time; it never reaches the store.
type ManagerFixture struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Password string
}

// ProductFixture is one product SKU template. InitialStock is the inventory
// before any generated sales are subtracted.
type ProductFixture struct {
	ID           string
	Name         string
	Price        float64
	InitialStock int
	Tags         []string
}

// StylistFixture is one stylist template. Aggregates are filled in during
// generation.
type StylistFixture struct {
	ID     string
	Name   string
	Bio    string
	Skills []string
}

// SalonFixture bundles a tenant template with its manager, settings, and
// nested catalog/roster templates.
type SalonFixture struct {
	ID       string
	Name     string
	Phone    string
	Address  string
	Manager  ManagerFixture
	Profile  models.SalonProfile
	Config   models.AppConfig
	Products []ProductFixture
	Stylists []StylistFixture
}

// Fixtures is the full template set the seeder expands.
type Fixtures struct {
	PlatformConfig models.AppConfig
	Salons         []SalonFixture
}

// DefaultFixtures returns the demo dataset templates: two salons, one manager
// each, a small product catalog and stylist roster per salon.
func DefaultFixtures() Fixtures {
	questionnaire := []models.QuestionnaireItem{
		{Key: "wash_frequency", Question: "How often do you wash your hair?", Options: []string{"Daily", "Every other day", "Twice a week", "Weekly"}, Required: true},
		{Key: "heat_styling", Question: "Do you use heat styling tools?", Options: []string{"Never", "Occasionally", "Daily"}, Required: true},
		{Key: "chemical_treatments", Question: "Any chemical treatments in the last 6 months?", Options: []string{"None", "Color", "Perm", "Relaxer"}, Required: false},
	}
	hairTypes := []string{"Straight", "Wavy", "Curly", "Coily"}

	return Fixtures{
		PlatformConfig: models.AppConfig{
			HairTypes:     hairTypes,
			Questionnaire: questionnaire,
			Banner:        models.BannerConfig{Headline: "Welcome to Strands", Enabled: true},
			LegalText:     "Platform terms of service apply.",
		},
		Salons: []SalonFixture{
			{
				ID:      "salon-aurora",
				Name:    "Aurora Hair Studio",
				Phone:   "+1-555-0101",
				Address: "12 Beacon St, Boston, MA",
				Manager: ManagerFixture{
					ID:       "mgr-aurora",
					Name:     "Dana Reyes",
					Email:    "dana@aurorahair.example",
					Phone:    "+1-555-0102",
					Password: "aurora-demo-pass",
				},
				Profile: models.SalonProfile{
					ContactEmail: "hello@aurorahair.example",
					ContactPhone: "+1-555-0101",
					Banner:       models.BannerConfig{Headline: "Spring color special", Enabled: true},
					LegalText:    "Aurora Hair Studio booking terms.",
				},
				Config: models.AppConfig{
					HairTypes:     hairTypes,
					Questionnaire: questionnaire,
					Banner:        models.BannerConfig{Headline: "Spring color special", Enabled: true},
					LegalText:     "Aurora Hair Studio booking terms.",
				},
				Products: []ProductFixture{
					{ID: "p-aurora-shampoo", Name: "Hydrating Shampoo", Price: 24, InitialStock: 40, Tags: []string{"cleanse", "hydrating"}},
					{ID: "p-aurora-conditioner", Name: "Repair Conditioner", Price: 26, InitialStock: 40, Tags: []string{"repair"}},
					{ID: "p-aurora-serum", Name: "Shine Serum", Price: 38, InitialStock: 25, Tags: []string{"finish", "shine"}},
					{ID: "p-aurora-mask", Name: "Deep Repair Mask", Price: 45, InitialStock: 20, Tags: []string{"treatment"}},
				},
				Stylists: []StylistFixture{
					{ID: "sty-aurora-maya", Name: "Maya Chen", Bio: "Color specialist with a decade behind the chair.", Skills: []string{"Balayage", "Color correction"}},
					{ID: "sty-aurora-leo", Name: "Leo Park", Bio: "Precision cuts and curly hair care.", Skills: []string{"Precision cuts", "Curly hair"}},
					{ID: "sty-aurora-ines", Name: "Ines Moreau", Bio: "Bridal and event styling.", Skills: []string{"Updos", "Event styling"}},
				},
			},
			{
				ID:      "salon-velvet",
				Name:    "Velvet & Co",
				Phone:   "+1-555-0201",
				Address: "88 Mission St, San Francisco, CA",
				Manager: ManagerFixture{
					ID:       "mgr-velvet",
					Name:     "Sam Okafor",
					Email:    "sam@velvetco.example",
					Phone:    "+1-555-0202",
					Password: "velvet-demo-pass",
				},
				Profile: models.SalonProfile{
					ContactEmail: "studio@velvetco.example",
					ContactPhone: "+1-555-0201",
					Banner:       models.BannerConfig{Headline: "New client discount", Enabled: true},
					LegalText:    "Velvet & Co service agreement.",
				},
				Config: models.AppConfig{
					HairTypes:     hairTypes,
					Questionnaire: questionnaire,
					Banner:        models.BannerConfig{Headline: "New client discount", Enabled: true},
					LegalText:     "Velvet & Co service agreement.",
				},
				Products: []ProductFixture{
					{ID: "p-velvet-oil", Name: "Argan Hair Oil", Price: 32, InitialStock: 30, Tags: []string{"oil", "shine"}},
					{ID: "p-velvet-spray", Name: "Texture Spray", Price: 22, InitialStock: 50, Tags: []string{"styling"}},
					{ID: "p-velvet-scalp", Name: "Scalp Scrub", Price: 29, InitialStock: 35, Tags: []string{"scalp", "detox"}},
				},
				Stylists: []StylistFixture{
					{ID: "sty-velvet-rosa", Name: "Rosa Delgado", Bio: "Texture and natural hair expert.", Skills: []string{"Natural hair", "Protective styles"}},
					{ID: "sty-velvet-kai", Name: "Kai Nakamura", Bio: "Editorial color and creative cuts.", Skills: []string{"Vivid color", "Creative cuts"}},
				},
			},
		},
	}
}
