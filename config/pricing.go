package config

import (
	"fmt"
	"os"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/composite"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PricingFile is the YAML document holding the size tier table, coupon codes
// and checkout charges. Amounts are quoted decimal strings, e.g. "40.90".
type PricingFile struct {
	Tiers             []TierEntry   `yaml:"tiers"`
	SpecialCategories []string      `yaml:"special_categories"`
	SizedCategories   []string      `yaml:"sized_categories"`
	Coupons           []CouponEntry `yaml:"coupons"`
	Checkout          ChargesEntry  `yaml:"checkout"`
}

type TierEntry struct {
	Size    string `yaml:"size"`
	Classic string `yaml:"classic"`
	Special string `yaml:"special"`
}

type CouponEntry struct {
	Code  string `yaml:"code"`
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

type ChargesEntry struct {
	ShippingFee       string `yaml:"shipping_fee"`
	FreeShippingAbove string `yaml:"free_shipping_above"`
	TaxPercent        string `yaml:"tax_percent"`
}

// Pricing is the validated, ready-to-use form of a PricingFile.
type Pricing struct {
	Table    *composite.PriceTable
	Coupons  *coupon.Registry
	Checkout checkout.Pricing
}

func LoadPricing(path string) (*Pricing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pricing %s: %w", path, err)
	}
	return ParsePricing(data)
}

func ParsePricing(data []byte) (*Pricing, error) {
	var f PricingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing pricing: %w", err)
	}

	tiers := make([]composite.TierPrices, 0, len(f.Tiers))
	for _, t := range f.Tiers {
		classic, err := money("tiers."+t.Size+".classic", t.Classic)
		if err != nil {
			return nil, err
		}
		special, err := money("tiers."+t.Size+".special", t.Special)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, composite.TierPrices{Size: model.SizeTier(t.Size), Classic: classic, Special: special})
	}
	table, err := composite.NewPriceTable(tiers, f.SpecialCategories, f.SizedCategories)
	if err != nil {
		return nil, err
	}

	coupons := make([]model.Coupon, 0, len(f.Coupons))
	for _, c := range f.Coupons {
		parse := amount
		if model.CouponKind(c.Kind) == model.CouponFixed {
			parse = money
		}
		v, err := parse("coupons."+c.Code, c.Value)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, model.Coupon{Code: c.Code, Kind: model.CouponKind(c.Kind), Value: v})
	}
	registry, err := coupon.NewRegistry(coupons)
	if err != nil {
		return nil, err
	}

	var charges checkout.Pricing
	if charges.ShippingFee, err = money("checkout.shipping_fee", f.Checkout.ShippingFee); err != nil {
		return nil, err
	}
	if charges.FreeShippingAbove, err = money("checkout.free_shipping_above", f.Checkout.FreeShippingAbove); err != nil {
		return nil, err
	}
	if charges.TaxPercent, err = amount("checkout.tax_percent", f.Checkout.TaxPercent); err != nil {
		return nil, err
	}

	return &Pricing{Table: table, Coupons: registry, Checkout: charges}, nil
}

// money parses an amount in the store currency. Sub-cent digits are rejected.
func money(field, raw string) (model.Money, error) {
	d, err := amount(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !model.IsCents(d) {
		return decimal.Zero, fmt.Errorf("pricing %s: %s has sub-cent digits", field, raw)
	}
	return d, nil
}

// amount parses a decimal field. Empty means zero.
func amount(field, raw string) (model.Money, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("pricing %s: %w", field, err)
	}
	return d, nil
}
