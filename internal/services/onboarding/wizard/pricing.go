package wizard

import (
	"strings"

	"github.com/louisbranch/inpact/internal/services/onboarding/catalog"
)

// Price is one deliverable's average rate.
type Price struct {
	Avg      string `json:"avg"`
	Currency string `json:"currency"`
}

// Pricing maps platform -> deliverable -> price, with one selected currency
// applied to every deliverable.
type Pricing struct {
	Currency string                      `json:"currency"`
	Rates    map[string]map[string]Price `json:"rates,omitempty"`
}

// SetCurrency selects the currency and applies it to every stored rate.
func (p *Pricing) SetCurrency(currency string) {
	p.Currency = strings.TrimSpace(currency)
	for _, deliverables := range p.Rates {
		for key, price := range deliverables {
			price.Currency = p.Currency
			deliverables[key] = price
		}
	}
}

// SetAvg stores the average price for one deliverable.
func (p *Pricing) SetAvg(platform, deliverable, avg string) {
	if p.Rates == nil {
		p.Rates = make(map[string]map[string]Price)
	}
	if p.Rates[platform] == nil {
		p.Rates[platform] = make(map[string]Price)
	}
	p.Rates[platform][deliverable] = Price{Avg: strings.TrimSpace(avg), Currency: p.Currency}
}

// Avg returns the stored average for one deliverable.
func (p Pricing) Avg(platform, deliverable string) string {
	return p.Rates[platform][deliverable].Avg
}

// ForPlatform returns every catalog deliverable for platform, filling gaps
// with empty prices so the persisted object keeps a stable shape.
func (p Pricing) ForPlatform(platform string) map[string]Price {
	out := make(map[string]Price)
	if def, ok := catalog.Default().Platform(platform); ok {
		for _, deliverable := range def.Deliverables {
			out[deliverable.Key] = Price{Currency: p.Currency}
		}
	}
	for key, price := range p.Rates[platform] {
		out[key] = price
	}
	return out
}
