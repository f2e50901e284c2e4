package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/auctionsite/pkg/errhttp"
	"github.com/ghuser/auctionsite/pkg/httpx"
	appsvcs "github.com/ghuser/auctionsite/services/auction/application/services"
	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
)

// GetAuctionHandler handles GET /auctions/{auctionID} requests.
type GetAuctionHandler struct {
	svc *appsvcs.Services
}

// NewGetAuctionHandler returns a GetAuctionHandler backed by the given services.
func NewGetAuctionHandler(svc *appsvcs.Services) *GetAuctionHandler {
	return &GetAuctionHandler{svc: svc}
}

// Execute returns one auction view. Winner and winnerPrice are null until the
// auction has ended.
//
//	@Summary		Get auction
//	@Description	Returns the auction with its bids and, once ended, winner and price
//	@Tags			auctions
//	@Produce		json
//	@Param			auctionID	path		int	true	"Auction id"
//	@Success		200			{object}	models.AuctionView
//	@Failure		404			{string}	string	"auction not found"
//	@Router			/auctions/{auctionID} [get]
func (h *GetAuctionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	auctionID, err := strconv.ParseInt(chi.URLParam(r, "auctionID"), 10, 64)
	if err != nil {
		errhttp.WriteError(w, auctiondomain.ErrAuctionNotFound)
		return
	}

	view, err := h.svc.Processor.GetAuction(auctionID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, view)
}
