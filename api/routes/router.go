package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hazolabs/storefront-backend/api/controllers"
	"github.com/hazolabs/storefront-backend/api/middleware"
	"github.com/hazolabs/storefront-backend/internal/admins"
	"github.com/hazolabs/storefront-backend/internal/backup"
	"github.com/hazolabs/storefront-backend/internal/cart"
	"github.com/hazolabs/storefront-backend/internal/catalog"
	"github.com/hazolabs/storefront-backend/internal/content"
	"github.com/hazolabs/storefront-backend/internal/coupons"
	"github.com/hazolabs/storefront-backend/internal/media"
	"github.com/hazolabs/storefront-backend/internal/orders"
	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/metrics"
	"github.com/hazolabs/storefront-backend/pkg/outbox"
	"github.com/hazolabs/storefront-backend/pkg/redis"
)

// Services bundles the wired domain services the router exposes.
type Services struct {
	Products      *catalog.ProductService
	Categories    *catalog.CategoryService
	Cart          *cart.Service
	Coupons       *coupons.Service
	Orders        *orders.Service
	Announcements *content.AnnouncementService
	Homepage      *content.HomepageService
	Footer        *content.FooterService
	Pages         *content.PageService
	Settings      *content.SettingsService
	Admins        *admins.Service
	Media         *media.Service
	Backups       *backup.Service
	Events        *outbox.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	client *db.Client,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	var limiterStore middleware.RateLimiterStore
	if redisClient != nil {
		limiterStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		if redisClient != nil {
			r.Get("/ready", controllers.HealthReady(cfg, logg, client, redisClient))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, logg, client, nil))
		}
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// uploaded product images
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.Media.UploadDir))))

	// public storefront surface
	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Products, logg))
			r.Get("/brands", controllers.BrandList(svcs.Products, logg))
			r.Get("/{productId}", controllers.ProductDetail(svcs.Products, logg))
		})
		r.Get("/categories", controllers.CategoryList(svcs.Categories, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Post("/", controllers.CartAdd(svcs.Cart, logg))
			r.Put("/{itemId}", controllers.CartUpdateQuantity(svcs.Cart, logg))
			r.Delete("/{itemId}", controllers.CartRemove(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
		})

		r.Post("/coupons/validate", controllers.CouponValidate(svcs.Coupons, logg))
		r.Post("/orders/submit", controllers.OrderSubmit(svcs.Orders, logg))

		r.Get("/announcements", controllers.AnnouncementList(svcs.Announcements, logg))
		r.Get("/homepage", controllers.HomepageSections(svcs.Homepage, logg))
		r.Get("/footer", controllers.FooterList(svcs.Footer, logg))
		r.Route("/pages", func(r chi.Router) {
			r.Get("/", controllers.PageList(svcs.Pages, logg))
			r.Get("/{pageKey}", controllers.PageByKey(svcs.Pages, logg))
		})
		r.Get("/settings", controllers.PublicSettings(svcs.Settings, logg))
	})

	// back office
	r.Route("/api/admin", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(cfg.AuthRateLimit, limiterStore, logg)).
			Post("/login", controllers.AdminLogin(svcs.Admins, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/verify", controllers.AdminVerify(svcs.Admins, logg))
			r.Post("/change-password", controllers.AdminChangePassword(svcs.Admins, logg))
			r.Get("/dashboard", controllers.AdminDashboard(svcs.Admins, logg))

			r.Route("/admins", func(r chi.Router) {
				r.Get("/", controllers.AdminList(svcs.Admins, logg))
				r.Post("/", controllers.AdminCreate(svcs.Admins, logg))
				r.Put("/{adminId}/password", controllers.AdminSetPassword(svcs.Admins, logg))
				r.Delete("/{adminId}", controllers.AdminDelete(svcs.Admins, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProductList(svcs.Products, logg))
				r.Post("/", controllers.ProductCreate(svcs.Products, logg))
				r.Put("/stock", controllers.BatchStockUpdate(svcs.Products, logg))
				r.Get("/{productId}", controllers.AdminProductDetail(svcs.Products, logg))
				r.Put("/{productId}", controllers.ProductUpdate(svcs.Products, logg))
				r.Delete("/{productId}", controllers.ProductDelete(svcs.Products, logg))
				r.Post("/{productId}/variants", controllers.VariantCreate(svcs.Products, logg))
				r.Route("/{productId}/images", func(r chi.Router) {
					r.Get("/", controllers.ImageList(svcs.Products, logg))
					r.Post("/", controllers.ImageAdd(svcs.Products, logg))
					r.Put("/reorder", controllers.ImageReorder(svcs.Products, logg))
				})
			})
			r.Route("/variants", func(r chi.Router) {
				r.Put("/{variantId}", controllers.VariantUpdate(svcs.Products, logg))
				r.Delete("/{variantId}", controllers.VariantDelete(svcs.Products, logg))
			})
			r.Route("/images", func(r chi.Router) {
				r.Put("/{imageId}", controllers.ImageUpdate(svcs.Products, logg))
				r.Delete("/{imageId}", controllers.ImageDelete(svcs.Products, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminCategoryList(svcs.Categories, logg))
				r.Post("/", controllers.CategoryCreate(svcs.Categories, logg))
				r.Get("/stats", controllers.CategoryStats(svcs.Categories, logg))
				r.Put("/{categoryId}", controllers.CategoryUpdate(svcs.Categories, logg))
				r.Delete("/{categoryId}", controllers.CategoryDelete(svcs.Categories, logg))
			})

			r.Route("/coupons", func(r chi.Router) {
				r.Get("/", controllers.CouponList(svcs.Coupons, logg))
				r.Post("/", controllers.CouponCreate(svcs.Coupons, logg))
				r.Put("/{couponId}", controllers.CouponUpdate(svcs.Coupons, logg))
				r.Put("/{couponId}/status", controllers.CouponSetStatus(svcs.Coupons, logg))
				r.Delete("/{couponId}", controllers.CouponDelete(svcs.Coupons, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderList(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.AdminOrderDetail(svcs.Orders, logg))
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", controllers.AdminAnnouncementList(svcs.Announcements, logg))
				r.Post("/", controllers.AnnouncementCreate(svcs.Announcements, logg))
				r.Put("/{announcementId}", controllers.AnnouncementUpdate(svcs.Announcements, logg))
				r.Put("/{announcementId}/status", controllers.AnnouncementSetStatus(svcs.Announcements, logg))
				r.Delete("/{announcementId}", controllers.AnnouncementDelete(svcs.Announcements, logg))
			})

			r.Route("/homepage", func(r chi.Router) {
				r.Get("/", controllers.AdminHomepageSections(svcs.Homepage, logg))
				r.Put("/{section}", controllers.HomepageSectionUpsert(svcs.Homepage, logg))
				r.Post("/{section}/reset", controllers.HomepageSectionReset(svcs.Homepage, logg))
			})

			r.Route("/footer", func(r chi.Router) {
				r.Get("/", controllers.AdminFooterList(svcs.Footer, logg))
				r.Post("/", controllers.FooterCreate(svcs.Footer, logg))
				r.Put("/{sectionId}", controllers.FooterUpdate(svcs.Footer, logg))
				r.Delete("/{sectionId}", controllers.FooterDelete(svcs.Footer, logg))
			})

			r.Route("/pages", func(r chi.Router) {
				r.Get("/", controllers.AdminPageList(svcs.Pages, logg))
				r.Post("/", controllers.PageCreate(svcs.Pages, logg))
				r.Put("/{pageId}", controllers.PageUpdate(svcs.Pages, logg))
				r.Delete("/{pageId}", controllers.PageDelete(svcs.Pages, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.AdminSettings(svcs.Settings, logg))
				r.Put("/", controllers.SettingUpsert(svcs.Settings, logg))
				r.Put("/batch", controllers.SettingsBatchUpsert(svcs.Settings, logg))
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", controllers.MediaList(svcs.Media, logg))
				r.Post("/", controllers.MediaUpload(svcs.Media, logg))
				r.Delete("/{fileName}", controllers.MediaDelete(svcs.Media, logg))
			})

			r.Route("/backups", func(r chi.Router) {
				r.Get("/", controllers.BackupList(svcs.Backups, logg))
				r.Post("/", controllers.BackupCreate(svcs.Backups, logg))
				r.Post("/{backupName}/restore", controllers.BackupRestore(svcs.Backups, logg))
				r.Get("/integrity", controllers.BackupIntegrityCheck(svcs.Backups, logg))
				r.Get("/tables", controllers.BackupTableStats(svcs.Backups, logg))
			})

			r.Post("/notifications/test", controllers.NotificationTest(client, svcs.Events, logg))
		})
	})

	return r
}
