package model

type SizeTier string

const (
	SizeNone SizeTier = ""
	SizeP    SizeTier = "P"
	SizeM    SizeTier = "M"
	SizeG    SizeTier = "G"
	SizeGG   SizeTier = "GG"
)

type PriceClass string

const (
	PriceClassClassic PriceClass = "classic"
	PriceClassSpecial PriceClass = "special"
)

// CompositeSelection is a frozen configuration of one cart item. Flavors[0]
// is always the product the customer started from.
type CompositeSelection struct {
	Size     SizeTier  `json:"size,omitempty"`
	Flavors  []Product `json:"flavors"`
	AddOn    *Product  `json:"add_on,omitempty"`
	Extras   []Product `json:"extras,omitempty"`
	Quantity int       `json:"quantity"`
}

// Clone returns a deep copy of s.
func (s CompositeSelection) Clone() CompositeSelection {
	s.Flavors = cloneProducts(s.Flavors)
	s.Extras = cloneProducts(s.Extras)
	if s.AddOn != nil {
		addOn := s.AddOn.Clone()
		s.AddOn = &addOn
	}
	return s
}

func cloneProducts(ps []Product) []Product {
	if ps == nil {
		return nil
	}
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// Origin returns the product the selection was started from.
func (s CompositeSelection) Origin() Product {
	return s.Flavors[0]
}

// DisplayName joins flavor names the way the storefront shows them, e.g.
// "Calabresa / Quatro Queijos".
func (s CompositeSelection) DisplayName() string {
	name := s.Flavors[0].Name
	for _, f := range s.Flavors[1:] {
		name += " / " + f.Name
	}
	return name
}
