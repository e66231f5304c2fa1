package model

type CouponKind string

const (
	CouponPercentage CouponKind = "percentage"
	CouponFixed      CouponKind = "fixed"
)

type Coupon struct {
	Code  string     `json:"code"`
	Kind  CouponKind `json:"kind"`
	Value Money      `json:"value"`
}
