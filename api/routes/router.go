package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/subslot/subslot-backend/api/controllers"
	"github.com/subslot/subslot-backend/api/middleware"
	"github.com/subslot/subslot-backend/internal/accounts"
	"github.com/subslot/subslot-backend/internal/ads"
	"github.com/subslot/subslot-backend/internal/auth"
	"github.com/subslot/subslot-backend/internal/categories"
	"github.com/subslot/subslot-backend/pkg/config"
	"github.com/subslot/subslot-backend/pkg/db"
	"github.com/subslot/subslot-backend/pkg/enums"
	"github.com/subslot/subslot-backend/pkg/logger"
	"github.com/subslot/subslot-backend/pkg/metrics"
	"github.com/subslot/subslot-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       redis.Pinger
	Metrics     *metrics.HTTPMetrics
	AuthService auth.Service
	Directory   accounts.Directory
	AdsService  ads.Service
	Categories  categories.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", controllers.UserRegister(p.AuthService, logg))
		r.Post("/login", controllers.UserLogin(p.AuthService, logg))
		r.Post("/verifyOtp", controllers.UserVerifyOTP(p.AuthService, logg))
		r.Post("/resendOtp", controllers.UserResendOTP(p.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/me", controllers.AuthMe(p.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout())
		})
	})

	r.Route("/users", func(r chi.Router) {
		// legacy mounts kept alongside /api/auth
		r.Post("/register", controllers.UserRegister(p.AuthService, logg))
		r.Post("/login", controllers.UserLogin(p.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/me", controllers.UserProfile(p.AuthService, logg))
			r.Put("/me", controllers.UserUpdateProfile(p.AuthService, logg))
			r.Post("/postAd", controllers.UserPostAd(p.AdsService, logg))
			r.Route("/ads", func(r chi.Router) {
				r.Get("/mine", controllers.UserAds(p.AdsService, logg))
				r.Get("/{id}", controllers.UserAdByID(p.AdsService, logg))
				r.Put("/{id}", controllers.UserUpdateAd(p.AdsService, logg))
				r.Delete("/{id}", controllers.UserDeleteAd(p.AdsService, logg))
			})
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/register", controllers.AdminRegister(p.AuthService, logg))
		r.Post("/login", controllers.AdminLogin(p.AuthService, logg))
		r.Post("/verifyOtp", controllers.AdminVerifyOTP(p.AuthService, logg))
		r.Post("/resendOtp", controllers.AdminResendOTP(p.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))
			r.Get("/users/all", controllers.AdminListUsers(p.Directory, logg))
		})
	})

	r.Route("/category", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Post("/add", controllers.CategoryAdd(p.Categories, logg))
		r.Get("/all", controllers.CategoryList(p.Categories, logg))
	})

	r.Route("/public", func(r chi.Router) {
		r.Get("/categories", controllers.PublicCategories(p.Categories, logg))
		r.Get("/allAds", controllers.PublicAds(p.AdsService, logg))
		// dayAds has always served the hour bucket; clients depend on it
		r.Get("/dayAds", controllers.PublicAdsByUnit(p.AdsService, enums.DurationHour, logg))
		r.Get("/weekAds", controllers.PublicAdsByUnit(p.AdsService, enums.DurationWeek, logg))
		r.Get("/monthAds", controllers.PublicAdsByUnit(p.AdsService, enums.DurationMonth, logg))
		r.Get("/yearAds", controllers.PublicAdsByUnit(p.AdsService, enums.DurationYear, logg))
	})

	r.Route("/ads", func(r chi.Router) {
		r.Post("/getAdbyId", controllers.AdByID(p.AdsService, logg))
		r.With(middleware.Auth(cfg.JWT, logg)).Post("/getDetailsById", controllers.AdDetailsByID(p.AdsService, logg))
	})

	return r
}
