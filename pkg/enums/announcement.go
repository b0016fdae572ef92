package enums

// AnnouncementType categorizes storefront banner announcements.
type AnnouncementType string

const (
	AnnouncementTypeInfo      AnnouncementType = "info"
	AnnouncementTypeWarning   AnnouncementType = "warning"
	AnnouncementTypePromotion AnnouncementType = "promotion"
)

func (t AnnouncementType) IsValid() bool {
	switch t {
	case AnnouncementTypeInfo, AnnouncementTypeWarning, AnnouncementTypePromotion:
		return true
	}
	return false
}
