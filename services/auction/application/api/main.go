package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/auctionsite/pkg/app"
	"github.com/ghuser/auctionsite/pkg/auth"
	"github.com/ghuser/auctionsite/services/auction/application/handlers"
	appsvcs "github.com/ghuser/auctionsite/services/auction/application/services"
)

// AuctionRoutes registers auction endpoints on the provided chi router.
// Reads are public; commands require the gateway identity header.
func AuctionRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	r.Route("/auctions", func(r chi.Router) {
		r.Get("/", handlers.NewListAuctionsHandler(svcs).Execute)
		r.Get("/{auctionID}", handlers.NewGetAuctionHandler(svcs).Execute)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.Logger))
			r.Post("/", handlers.NewPostAuctionHandler(svcs).Execute)
			r.Post("/{auctionID}/bids", handlers.NewPostBidHandler(svcs).Execute)
		})
	})
}
