package enums

// CouponType describes how a coupon discount is computed.
type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

func (t CouponType) IsValid() bool {
	switch t {
	case CouponTypePercentage, CouponTypeFixed:
		return true
	}
	return false
}
