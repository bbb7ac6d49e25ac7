package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luispallares/forgequote-backend/api/controllers"
	globalquotecontrollers "github.com/luispallares/forgequote-backend/api/controllers/globalquotes"
	quotationcontrollers "github.com/luispallares/forgequote-backend/api/controllers/quotations"
	referencecontrollers "github.com/luispallares/forgequote-backend/api/controllers/reference"
	"github.com/luispallares/forgequote-backend/api/middleware"
	"github.com/luispallares/forgequote-backend/internal/globalquotes"
	"github.com/luispallares/forgequote-backend/internal/quotations"
	"github.com/luispallares/forgequote-backend/internal/reference"
	"github.com/luispallares/forgequote-backend/pkg/config"
	"github.com/luispallares/forgequote-backend/pkg/db"
	"github.com/luispallares/forgequote-backend/pkg/logger"
	"github.com/luispallares/forgequote-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface of the quotation platform.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	quotationsSvc quotations.Service,
	referenceSvc reference.Service,
	globalQuotesSvc globalquotes.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/calculate", quotationcontrollers.Calculate(quotationsSvc, logg))

		r.Route("/part-numbers/{partNumberId}/quotations", func(r chi.Router) {
			r.Post("/", quotationcontrollers.Create(quotationsSvc, logg))
			r.Get("/", quotationcontrollers.ListByPartNumber(quotationsSvc, logg))
		})

		r.Route("/quotations/{quotationId}", func(r chi.Router) {
			r.Patch("/", quotationcontrollers.Update(quotationsSvc, logg))
			r.Post("/versions", quotationcontrollers.Fork(quotationsSvc, logg))
			r.Get("/versions", quotationcontrollers.GetVersions(quotationsSvc, logg))
			r.Post("/status", quotationcontrollers.TransitionStatus(quotationsSvc, logg))
		})

		r.Route("/reference", func(r chi.Router) {
			r.Get("/suppliers", referencecontrollers.ListSuppliers(referenceSvc, logg))
			r.Get("/suppliers/{supplierId}", referencecontrollers.GetSupplier(referenceSvc, logg))
			r.Get("/material-alloys", referencecontrollers.ListMaterialAlloys(referenceSvc, logg))
			r.Get("/cnc-machines", referencecontrollers.ListCNCMachines(referenceSvc, logg))
		})

		r.Route("/global-quotations", func(r chi.Router) {
			r.Post("/", globalquotecontrollers.Create(globalQuotesSvc, logg))
			r.Route("/{globalQuotationId}", func(r chi.Router) {
				r.Get("/", globalquotecontrollers.Get(globalQuotesSvc, logg))
				r.Patch("/", globalquotecontrollers.Rename(globalQuotesSvc, logg))
				r.Post("/items", globalquotecontrollers.AddItem(globalQuotesSvc, logg))
				r.Delete("/items/{partNumberId}", globalquotecontrollers.RemoveItem(globalQuotesSvc, logg))
			})
		})
	})

	return r
}
