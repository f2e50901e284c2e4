package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/auctionsite/pkg/auth"
	"github.com/ghuser/auctionsite/pkg/errhttp"
	"github.com/ghuser/auctionsite/pkg/httpx"
	pkgvalidator "github.com/ghuser/auctionsite/pkg/validator"
	appsvcs "github.com/ghuser/auctionsite/services/auction/application/services"
	domainevents "github.com/ghuser/auctionsite/services/auction/domain/events"
	"github.com/ghuser/auctionsite/services/auction/domain/models"
)

// CreateAuctionRequest is the request body for POST /auctions.
// Type is the auction variant wire string; empty defaults to "English|0|0|0".
type CreateAuctionRequest struct {
	ID       int64     `json:"id"       validate:"required,gt=0"      example:"1"`
	StartsAt time.Time `json:"startsAt" validate:"required"           example:"2018-01-01T10:00:00.000Z"`
	EndsAt   time.Time `json:"endsAt"   validate:"required"           example:"2019-01-01T10:00:00.000Z"`
	Title    string    `json:"title"    validate:"required,max=255"   example:"First auction"`
	Currency string    `json:"currency" validate:"required,max=8"     example:"VAC"`
	Type     string    `json:"type"     validate:"omitempty,max=64"   example:"English|0|0|0"`
} // @name CreateAuctionRequest

// AuctionAddedResponse is returned on successful auction creation.
type AuctionAddedResponse struct {
	Type    string                      `json:"$type"   example:"AuctionAdded"`
	At      time.Time                   `json:"at"      example:"2018-08-04T00:00:00Z"`
	Auction domainevents.AuctionPayload `json:"auction"`
} // @name AuctionAddedResponse

// ErrorResponse documents the error body shape for 401/500 responses.
// Domain rejections (400/404) are bare JSON strings, e.g. "AuctionAlreadyExists 1".
type ErrorResponse struct {
	Error string `json:"error" example:"authentication required"`
} // @name ErrorResponse

// PostAuctionHandler handles POST /auctions requests.
type PostAuctionHandler struct {
	svc *appsvcs.Services
}

// NewPostAuctionHandler returns a PostAuctionHandler backed by the given services.
func NewPostAuctionHandler(svc *appsvcs.Services) *PostAuctionHandler {
	return &PostAuctionHandler{svc: svc}
}

// Execute creates a new auction.
//
//	@Summary		Create auction
//	@Description	Registers an auction with a seller-assigned id and start/end times
//	@Tags			auctions
//	@Accept			json
//	@Produce		json
//	@Param			x-jwt-payload	header		string					true	"Gateway-verified JWT payload (base64)"
//	@Param			request			body		CreateAuctionRequest	true	"Auction creation request"
//	@Success		200				{object}	AuctionAddedResponse
//	@Failure		400				{string}	string	"AuctionAlreadyExists 1"
//	@Failure		401				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Router			/auctions [post]
func (h *PostAuctionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	seller, err := auth.UserFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateAuctionRequest](w, r)
	if !ok {
		return
	}

	variant, err := models.ParseVariant(req.Type)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	auction, err := models.NewAuction(req.ID, req.Title, req.StartsAt, req.EndsAt, req.Currency, seller, variant)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	evt, err := h.svc.Processor.AddAuction(r.Context(), auction)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AuctionAddedResponse{
		Type:    domainevents.KindAuctionAdded,
		At:      evt.At,
		Auction: evt.Auction,
	})
}
