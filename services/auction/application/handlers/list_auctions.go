package handlers

import (
	"net/http"

	"github.com/ghuser/auctionsite/pkg/httpx"
	appsvcs "github.com/ghuser/auctionsite/services/auction/application/services"
)

// ListAuctionsHandler handles GET /auctions requests.
type ListAuctionsHandler struct {
	svc *appsvcs.Services
}

// NewListAuctionsHandler returns a ListAuctionsHandler backed by the given services.
func NewListAuctionsHandler(svc *appsvcs.Services) *ListAuctionsHandler {
	return &ListAuctionsHandler{svc: svc}
}

// Execute returns every known auction view, ordered by id.
//
//	@Summary		List auctions
//	@Description	Returns all auctions created so far
//	@Tags			auctions
//	@Produce		json
//	@Success		200	{array}	models.AuctionView
//	@Router			/auctions [get]
func (h *ListAuctionsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Processor.ListAuctions())
}
