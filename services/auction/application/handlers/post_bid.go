package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/auctionsite/pkg/auth"
	"github.com/ghuser/auctionsite/pkg/errhttp"
	"github.com/ghuser/auctionsite/pkg/httpx"
	pkgvalidator "github.com/ghuser/auctionsite/pkg/validator"
	appsvcs "github.com/ghuser/auctionsite/services/auction/application/services"
	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
	domainevents "github.com/ghuser/auctionsite/services/auction/domain/events"
)

// PlaceBidRequest is the request body for POST /auctions/{auctionID}/bids.
type PlaceBidRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0" example:"11"`
} // @name PlaceBidRequest

// BidAcceptedResponse is returned on a successful bid.
type BidAcceptedResponse struct {
	Type string                  `json:"$type" example:"BidAccepted"`
	At   time.Time               `json:"at"    example:"2018-08-04T00:00:00Z"`
	Bid  domainevents.BidPayload `json:"bid"`
} // @name BidAcceptedResponse

// PostBidHandler handles POST /auctions/{auctionID}/bids requests.
type PostBidHandler struct {
	svc *appsvcs.Services
}

// NewPostBidHandler returns a PostBidHandler backed by the given services.
func NewPostBidHandler(svc *appsvcs.Services) *PostBidHandler {
	return &PostBidHandler{svc: svc}
}

// Execute places a bid on an auction.
//
//	@Summary		Place bid
//	@Description	Places a bid; acceptance depends on the auction variant and time window
//	@Tags			auctions
//	@Accept			json
//	@Produce		json
//	@Param			x-jwt-payload	header		string			true	"Gateway-verified JWT payload (base64)"
//	@Param			auctionID		path		int				true	"Auction id"
//	@Param			request			body		PlaceBidRequest	true	"Bid request"
//	@Success		200				{object}	BidAcceptedResponse
//	@Failure		400				{string}	string	"MustPlaceBidOverHighestBid 20"
//	@Failure		401				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Router			/auctions/{auctionID}/bids [post]
func (h *PostBidHandler) Execute(w http.ResponseWriter, r *http.Request) {
	bidder, err := auth.UserFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	raw := chi.URLParam(r, "auctionID")
	auctionID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || auctionID <= 0 {
		// An unparseable id can never name a known auction; echo the path
		// segment as given so client logs show what was requested.
		errhttp.WriteError(w, fmt.Errorf("%w %s", auctiondomain.ErrUnknownAuction, raw))
		return
	}

	req, ok := pkgvalidator.ValidateRequest[PlaceBidRequest](w, r)
	if !ok {
		return
	}

	evt, err := h.svc.Processor.PlaceBid(r.Context(), auctionID, bidder, req.Amount)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, BidAcceptedResponse{
		Type: domainevents.KindBidAccepted,
		At:   evt.At,
		Bid:  evt.Bid,
	})
}
