package models

import "time"

// BidView is the per-bid slice of the auction view.
type BidView struct {
	Amount int64 `json:"amount"`
	Bidder User  `json:"bidder"`
}

// AuctionView is the read model returned by queries. Winner and WinnerPrice
// are JSON null until the auction has ended; an ended auction with no bids
// (or an English top bid below the reserve) also leaves them null.
type AuctionView struct {
	ID          int64     `json:"id"`
	StartsAt    time.Time `json:"startsAt"`
	Title       string    `json:"title"`
	Expiry      time.Time `json:"expiry"`
	Currency    string    `json:"currency"`
	Bids        []BidView `json:"bids"`
	Winner      *User     `json:"winner"`
	WinnerPrice *int64    `json:"winnerPrice"`
}
