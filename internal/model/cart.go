package model

type CartLine struct {
	LineID    string             `json:"line_id"`
	Selection CompositeSelection `json:"selection"`
	UnitPrice Money              `json:"unit_price"`
	LineTotal Money              `json:"line_total"`
}
