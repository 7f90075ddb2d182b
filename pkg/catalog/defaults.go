package catalog

// Module ids of the built-in catalog
const (
	ModuleContacts   = "contacts"
	ModuleLeads      = "leads"
	ModulePipeline   = "pipeline"
	ModuleTeam       = "team"
	ModuleMarketData = "market-data"
	ModuleNewsletter = "newsletter"
	ModuleQRCapture  = "qr-capture"
	ModuleAnalytics  = "analytics"
)

// DefaultModuleConfig returns the built-in real-estate CRM module catalog
func DefaultModuleConfig() ModuleConfig {
	return ModuleConfig{
		Version: "v1",
		Modules: []Module{
			{
				ID:          ModuleContacts,
				Name:        "Contact Management",
				Description: "Core contact database with notes, tags and search",
				Features:    []string{"Unlimited contacts", "Tags and notes", "Import/export"},
				Baseline:    true,
			},
			{
				ID:                ModuleLeads,
				Name:              "Lead Management",
				Description:       "Track and qualify incoming leads",
				MonthlyPriceCents: 1000, // $10/month
				Features:          []string{"Lead scoring", "Source tracking", "Follow-up reminders"},
				Requires:          []string{ModuleContacts},
				Popular:           true,
			},
			{
				ID:                ModulePipeline,
				Name:              "Deal Pipeline",
				Description:       "Kanban pipeline from first showing to closing",
				MonthlyPriceCents: 1500, // $15/month
				Features:          []string{"Custom stages", "Deal values", "Closing forecasts"},
				Requires:          []string{ModuleLeads},
				Popular:           true,
			},
			{
				ID:                ModuleTeam,
				Name:              "Team Management",
				Description:       "Invite agents, assign leads and share pipelines",
				MonthlyPriceCents: 2000, // $20/month
				Features:          []string{"Agent roles", "Lead routing", "Shared pipelines"},
				Requires:          []string{ModulePipeline},
			},
			{
				ID:                ModuleMarketData,
				Name:              "Market Data",
				Description:       "Local listing and price trend widgets",
				MonthlyPriceCents: 1200, // $12/month
				Features:          []string{"Median price trends", "Days on market", "Inventory levels"},
				Requires:          []string{ModuleContacts},
			},
			{
				ID:                ModuleNewsletter,
				Name:              "Market Newsletter",
				Description:       "Monthly market newsletter sent to your contacts",
				MonthlyPriceCents: 900, // $9/month
				Features:          []string{"Automatic market summaries", "Branded templates"},
				Requires:          []string{ModuleMarketData},
			},
			{
				ID:                ModuleQRCapture,
				Name:              "QR Lead Capture",
				Description:       "QR codes for yard signs and open houses that create leads",
				MonthlyPriceCents: 500, // $5/month
				Features:          []string{"Printable QR codes", "Scan tracking", "Instant lead creation"},
				Requires:          []string{ModuleLeads},
			},
			{
				ID:                ModuleAnalytics,
				Name:              "Analytics",
				Description:       "Conversion and team performance reporting",
				MonthlyPriceCents: 1800, // $18/month
				Features:          []string{"Conversion funnels", "Agent leaderboards"},
				Requires:          []string{ModulePipeline, ModuleTeam},
			},
		},
	}
}

// DefaultBundleConfig returns the built-in bundles for DefaultModuleConfig
func DefaultBundleConfig() BundleConfig {
	return BundleConfig{
		Version: "v1",
		Bundles: []Bundle{
			{
				ID:                "starter",
				Name:              "Starter",
				Description:       "Contacts and lead tracking for solo agents",
				Modules:           []string{ModuleContacts, ModuleLeads},
				MonthlyPriceCents: 800, // $8 vs $10 custom
			},
			{
				ID:                "agent",
				Name:              "Agent",
				Description:       "Everything a producing agent needs",
				Modules:           []string{ModuleContacts, ModuleLeads, ModulePipeline, ModuleQRCapture, ModuleMarketData},
				MonthlyPriceCents: 3500, // $35 vs $42 custom
				Popular:           true,
			},
			{
				ID:          "brokerage",
				Name:        "Brokerage",
				Description: "All modules for teams and brokerages",
				Modules: []string{
					ModuleContacts, ModuleLeads, ModulePipeline, ModuleTeam,
					ModuleMarketData, ModuleNewsletter, ModuleQRCapture, ModuleAnalytics,
				},
				MonthlyPriceCents: 7500, // $75 vs $89 custom
			},
		},
	}
}

// Default builds the built-in catalog. It panics if the built-in documents are
// inconsistent, which is a programming error.
func Default() *Catalog {
	c, err := New(DefaultModuleConfig(), DefaultBundleConfig())
	if err != nil {
		panic(err)
	}
	return c
}
