// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/auctionsite/pkg/httpx"
	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
)

// WriteError maps err to an HTTP status code and writes the error body.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
//
// Domain rejections are written as a bare JSON string (e.g.
// "AuctionAlreadyExists 42") because clients match on that exact body; the
// shape is part of the contract.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		httpx.JSONError(w, status, http.StatusText(status))
		return
	}
	httpx.JSON(w, status, err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, auctiondomain.ErrAuctionNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, auctiondomain.ErrAuctionAlreadyExists),
		errors.Is(err, auctiondomain.ErrUnknownAuction),
		errors.Is(err, auctiondomain.ErrAuctionNotStarted),
		errors.Is(err, auctiondomain.ErrAuctionHasEnded),
		errors.Is(err, auctiondomain.ErrMustPlaceBidOverHighestBid),
		errors.Is(err, auctiondomain.ErrInvalidAuction),
		errors.Is(err, auctiondomain.ErrInvalidBid):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
