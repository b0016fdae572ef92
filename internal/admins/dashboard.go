package admins

import (
	"context"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
)

const lowStockThreshold = 10

type histogramRow struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalProducts       int64            `json:"total_products"`
	ActiveProducts      int64            `json:"active_products"`
	TotalCoupons        int64            `json:"total_coupons"`
	ActiveCoupons       int64            `json:"active_coupons"`
	TotalAnnouncements  int64            `json:"total_announcements"`
	ActiveAnnouncements int64            `json:"active_announcements"`
	ProductsByCategory  []histogramRow   `json:"products_by_category"`
	ProductsByBrand     []histogramRow   `json:"products_by_brand"`
	LowStockProducts    []models.Product `json:"low_stock_products"`
}

// Dashboard aggregates the back-office landing numbers in one call.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	conn := s.db.WithContext(ctx)

	counts := []struct {
		dest   *int64
		model  any
		active bool
	}{
		{&stats.TotalProducts, &models.Product{}, false},
		{&stats.ActiveProducts, &models.Product{}, true},
		{&stats.TotalCoupons, &models.Coupon{}, false},
		{&stats.ActiveCoupons, &models.Coupon{}, true},
		{&stats.TotalAnnouncements, &models.Announcement{}, false},
		{&stats.ActiveAnnouncements, &models.Announcement{}, true},
	}
	for _, c := range counts {
		q := conn.Model(c.model)
		if c.active {
			q = q.Where("is_active = ?", true)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dashboard counts")
		}
	}

	err := conn.Model(&models.Product{}).
		Select("category AS label, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&stats.ProductsByCategory).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "category histogram")
	}

	err = conn.Model(&models.Product{}).
		Select("brand AS label, COUNT(*) AS count").
		Where("brand IS NOT NULL AND brand != ''").
		Group("brand").
		Order("count DESC").
		Scan(&stats.ProductsByBrand).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "brand histogram")
	}

	err = conn.
		Where("is_active = ? AND stock < ?", true, lowStockThreshold).
		Order("stock ASC, id ASC").
		Find(&stats.LowStockProducts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "low stock products")
	}

	return stats, nil
}
