package loggen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OctetRange is an inclusive range of first octets with a selection weight.
type OctetRange struct {
	Low    int     `yaml:"low"`
	High   int     `yaml:"high"`
	Weight float64 `yaml:"weight"`
}

// Choice is a weighted string option (path or method).
type Choice struct {
	Value  string  `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// StatusChoice is a weighted status code option.
type StatusChoice struct {
	Status int     `yaml:"status"`
	Weight float64 `yaml:"weight"`
}

// Profile describes one synthetic server's traffic shape: where its
// clients come from, what they request, when they request it, and how
// often requests fail.
type Profile struct {
	Name           string         `yaml:"name"`
	RegionWeights  []OctetRange   `yaml:"region_weights"`
	PeakHours      []int          `yaml:"peak_hours"`
	Paths          []Choice       `yaml:"paths"`
	Methods        []Choice       `yaml:"methods"`
	Statuses       []StatusChoice `yaml:"statuses"`
	RowsMultiplier float64        `yaml:"rows_multiplier"`
}

// Validate reports the first structural problem in the profile.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("loggen: profile has no name")
	}
	if len(p.RegionWeights) == 0 || len(p.Paths) == 0 || len(p.Methods) == 0 || len(p.Statuses) == 0 {
		return fmt.Errorf("loggen: profile %s: region_weights, paths, methods and statuses must be non-empty", p.Name)
	}
	for _, r := range p.RegionWeights {
		if r.Low < 0 || r.High > 255 || r.Low > r.High {
			return fmt.Errorf("loggen: profile %s: bad octet range %d-%d", p.Name, r.Low, r.High)
		}
	}
	for _, h := range p.PeakHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("loggen: profile %s: bad peak hour %d", p.Name, h)
		}
	}
	return nil
}

// LoadProfiles reads server profiles from a YAML file.
func LoadProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loggen: read profiles %s: %w", path, err)
	}
	var profiles []Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("loggen: decode profiles %s: %w", path, err)
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// DefaultProfiles returns three realistic, deliberately imbalanced server
// shapes: a US-heavy API server peaking in US business hours, an EU
// e-commerce site, and an Asia-Pacific admin/reporting backend.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name: "server1",
			RegionWeights: []OctetRange{
				{Low: 1, High: 49, Weight: 0.55},    // North America dominant
				{Low: 50, High: 99, Weight: 0.20},   // Europe
				{Low: 100, High: 149, Weight: 0.15}, // Asia
				{Low: 150, High: 199, Weight: 0.05}, // Africa
				{Low: 200, High: 254, Weight: 0.05}, // Other
			},
			PeakHours: hoursRange(9, 17),
			Paths: []Choice{
				{"/api/v1/users", 0.18},
				{"/api/v1/orders", 0.15},
				{"/api/v1/products", 0.12},
				{"/api/v1/search", 0.10},
				{"/api/v1/auth/login", 0.08},
				{"/api/v1/auth/logout", 0.04},
				{"/api/v2/users", 0.08},
				{"/api/v2/orders", 0.07},
				{"/health", 0.08},
				{"/metrics", 0.05},
				{"/static/app.js", 0.03},
				{"/static/style.css", 0.02},
			},
			Methods: []Choice{
				{"GET", 0.65}, {"POST", 0.22}, {"PUT", 0.08}, {"DELETE", 0.05},
			},
			Statuses: []StatusChoice{
				{200, 0.82}, {201, 0.06}, {400, 0.04}, {401, 0.02},
				{404, 0.03}, {500, 0.02}, {503, 0.01},
			},
			RowsMultiplier: 1.2,
		},
		{
			Name: "server2",
			RegionWeights: []OctetRange{
				{Low: 1, High: 49, Weight: 0.15},
				{Low: 50, High: 99, Weight: 0.45}, // Europe dominant
				{Low: 100, High: 149, Weight: 0.30},
				{Low: 150, High: 199, Weight: 0.05},
				{Low: 200, High: 254, Weight: 0.05},
			},
			PeakHours: hoursRange(10, 20),
			Paths: []Choice{
				{"/products", 0.20},
				{"/products/featured", 0.10},
				{"/products/category/electronics", 0.08},
				{"/products/category/clothing", 0.07},
				{"/cart", 0.12},
				{"/cart/add", 0.08},
				{"/checkout", 0.06},
				{"/checkout/payment", 0.05},
				{"/orders/history", 0.06},
				{"/account/profile", 0.05},
				{"/health", 0.05},
				{"/static/site.css", 0.04},
				{"/static/checkout.js", 0.04},
			},
			Methods: []Choice{
				{"GET", 0.72}, {"POST", 0.20}, {"PUT", 0.05}, {"DELETE", 0.03},
			},
			Statuses: []StatusChoice{
				{200, 0.85}, {201, 0.04}, {302, 0.03}, {400, 0.02},
				{404, 0.03}, {500, 0.02}, {502, 0.01},
			},
			RowsMultiplier: 1.0,
		},
		{
			Name: "server3",
			RegionWeights: []OctetRange{
				{Low: 1, High: 49, Weight: 0.08},
				{Low: 50, High: 99, Weight: 0.12},
				{Low: 100, High: 149, Weight: 0.55}, // Asia dominant
				{Low: 150, High: 199, Weight: 0.10},
				{Low: 200, High: 254, Weight: 0.15},
			},
			PeakHours: hoursRange(0, 8),
			Paths: []Choice{
				{"/admin/dashboard", 0.15},
				{"/admin/users", 0.10},
				{"/admin/users/create", 0.05},
				{"/admin/settings", 0.08},
				{"/admin/login", 0.12},
				{"/reports/daily", 0.10},
				{"/reports/weekly", 0.08},
				{"/reports/monthly", 0.06},
				{"/reports/export", 0.05},
				{"/api/internal/sync", 0.08},
				{"/health", 0.05},
				{"/static/admin.js", 0.05},
				{"/static/reports.css", 0.03},
			},
			Methods: []Choice{
				{"GET", 0.58}, {"POST", 0.28}, {"PUT", 0.08}, {"DELETE", 0.06},
			},
			Statuses: []StatusChoice{
				{200, 0.75}, {201, 0.06}, {400, 0.04}, {401, 0.04},
				{403, 0.05}, {404, 0.02}, {500, 0.03}, {503, 0.01},
			},
			RowsMultiplier: 0.7,
		},
	}
}

func hoursRange(from, to int) []int {
	hours := make([]int, 0, to-from+1)
	for h := from; h <= to; h++ {
		hours = append(hours, h)
	}
	return hours
}
