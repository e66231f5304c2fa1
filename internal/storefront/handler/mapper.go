package handler

import (
	storefrontv1 "github.com/fekuna/omnipos-storefront-service/api/storefront/v1"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

func mapProductToProto(p model.Product) *storefrontv1.Product {
	return &storefrontv1.Product{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryId:  p.CategoryID,
		Price:       model.FormatMoney(p.EffectivePrice()),
		BasePrice:   model.FormatMoney(p.BasePrice),
		OnSale:      p.OnSale(),
		InStock:     p.InStock(),
		Tags:        p.Tags,
	}
}

func mapProductsToProto(products []model.Product) []*storefrontv1.Product {
	out := make([]*storefrontv1.Product, 0, len(products))
	for _, p := range products {
		out = append(out, mapProductToProto(p))
	}
	return out
}

func mapCategoryToProto(c model.Category) *storefrontv1.Category {
	out := &storefrontv1.Category{Id: c.ID, Label: c.Label, RuleKind: model.RuleKindHeuristic}
	switch r := c.Rule.(type) {
	case model.ByID:
		out.RuleKind = model.RuleKindByID
		out.Ids = r.IDs
	case model.Heuristic:
		out.Keywords = r.Keywords
		out.Tags = r.Tags
	}
	return out
}

func mapLineToProto(l model.CartLine) *storefrontv1.CartLine {
	sel := l.Selection
	out := &storefrontv1.CartLine{
		LineId:    l.LineID,
		ProductId: sel.Origin().ID,
		Name:      sel.DisplayName(),
		Size:      string(sel.Size),
		Quantity:  int32(sel.Quantity),
		UnitPrice: model.FormatMoney(l.UnitPrice),
		LineTotal: model.FormatMoney(l.LineTotal),
	}
	for _, f := range sel.Flavors {
		out.Flavors = append(out.Flavors, f.Name)
	}
	if sel.AddOn != nil {
		out.AddOn = sel.AddOn.Name
	}
	for _, e := range sel.Extras {
		out.Extras = append(out.Extras, e.Name)
	}
	return out
}

func mapTotalsToProto(t model.Totals) *storefrontv1.Totals {
	return &storefrontv1.Totals{
		Subtotal:   model.FormatMoney(t.Subtotal),
		Shipping:   model.FormatMoney(t.Shipping),
		Tax:        model.FormatMoney(t.Tax),
		Discount:   model.FormatMoney(t.Discount),
		GrandTotal: model.FormatMoney(t.GrandTotal),
	}
}
