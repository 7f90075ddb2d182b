package catalog

// Module is an individually priced feature unit a customer can add to a plan
type Module struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
	MonthlyPriceCents int64    `json:"monthly_price_cents" yaml:"monthly_price_cents"`
	Features          []string `json:"features,omitempty" yaml:"features,omitempty"`
	Requires          []string `json:"requires,omitempty" yaml:"requires,omitempty"`
	Popular           bool     `json:"popular,omitempty" yaml:"popular,omitempty"`
	// Baseline marks the always-included free module. Exactly one module sets it.
	Baseline bool `json:"baseline,omitempty" yaml:"baseline,omitempty"`
}

// Bundle is a named, flat-priced preset selection of modules
type Bundle struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
	Modules           []string `json:"modules" yaml:"modules"`
	MonthlyPriceCents int64    `json:"monthly_price_cents" yaml:"monthly_price_cents"`
	Popular           bool     `json:"popular,omitempty" yaml:"popular,omitempty"`
}

// ModuleConfig is the module catalog document
type ModuleConfig struct {
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
	Modules []Module `json:"modules" yaml:"modules"`
}

// BundleConfig is the bundle catalog document
type BundleConfig struct {
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
	Bundles []Bundle `json:"bundles" yaml:"bundles"`
}

func (m Module) clone() Module {
	m.Features = append([]string(nil), m.Features...)
	m.Requires = append([]string(nil), m.Requires...)
	return m
}

func (b Bundle) clone() Bundle {
	b.Modules = append([]string(nil), b.Modules...)
	return b
}
