package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
)

// VariantKind enumerates the three bidding protocols. The set is closed, so
// behavior is dispatched over the tag rather than an open interface.
type VariantKind int

const (
	// English is the open-ascending protocol: each bid must exceed the
	// current highest; the winner pays their own bid.
	English VariantKind = iota
	// Vickrey is the sealed-bid second-price protocol: the highest bidder
	// wins but pays the second-highest amount.
	Vickrey
	// Blind is the sealed-bid first-price protocol: the highest bidder wins
	// and pays their own amount.
	Blind
)

// Variant is the bidding protocol fixed at auction creation, carrying the
// English option triple. Sealed variants have all options at zero.
//
// Wire form: "English|<reserve>|<minRaise>|<timeframeSeconds>", "Vickrey"
// or "Blind".
type Variant struct {
	Kind VariantKind

	// English options. ReservePrice is the opening floor, MinRaise the
	// minimum increment over the current highest bid. TimeFrameSeconds is
	// carried for wire fidelity; the lifecycle is bounded by the auction's
	// startsAt/expiry, not by a per-bid extension window.
	ReservePrice     int64
	MinRaise         int64
	TimeFrameSeconds int64
}

// EnglishVariant returns the default open-ascending variant ("English|0|0|0").
func EnglishVariant() Variant {
	return Variant{Kind: English}
}

// ParseVariant parses the wire form. The empty string defaults to English
// with zero options, matching the original service's behavior for requests
// that omit the type field.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "":
		return EnglishVariant(), nil
	case "Vickrey":
		return Variant{Kind: Vickrey}, nil
	case "Blind":
		return Variant{Kind: Blind}, nil
	}

	parts := strings.Split(s, "|")
	if len(parts) != 4 || parts[0] != "English" {
		return Variant{}, fmt.Errorf("malformed auction type %q", s)
	}
	opts := make([]int64, 3)
	for i, p := range parts[1:] {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return Variant{}, fmt.Errorf("malformed auction type %q", s)
		}
		opts[i] = n
	}
	return Variant{
		Kind:             English,
		ReservePrice:     opts[0],
		MinRaise:         opts[1],
		TimeFrameSeconds: opts[2],
	}, nil
}

// String renders the wire form parsed by ParseVariant.
func (v Variant) String() string {
	switch v.Kind {
	case Vickrey:
		return "Vickrey"
	case Blind:
		return "Blind"
	default:
		return fmt.Sprintf("English|%d|%d|%d", v.ReservePrice, v.MinRaise, v.TimeFrameSeconds)
	}
}

// MarshalJSON encodes the variant as its wire string.
func (v Variant) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes the wire string form.
func (v *Variant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// AcceptBid decides whether amount may join the accepted bids. Sealed
// variants accept unconditionally; bidders cannot observe each other before
// close, so there is nothing to compare against. English requires the bid to
// exceed the current highest plus the minimum raise (or the reserve floor
// when no bid exists yet).
func (v Variant) AcceptBid(bids []Bid, amount int64) error {
	if v.Kind != English {
		return nil
	}
	highest, ok := highestBid(bids)
	if !ok {
		if v.ReservePrice > 0 && amount <= v.ReservePrice {
			return auctiondomain.MustPlaceBidOverHighestBid(v.ReservePrice)
		}
		return nil
	}
	if amount <= highest.Amount+v.MinRaise {
		return auctiondomain.MustPlaceBidOverHighestBid(highest.Amount)
	}
	return nil
}

// Disclosure is the winner/price pair computed once an auction has ended.
type Disclosure struct {
	Winner User
	Price  int64
}

// Disclose computes the winner and clearing price from the full accepted bid
// list. Returns false when there is no winner (no bids, or an English top bid
// below the reserve). Ties on amount resolve to the earliest accepted bid.
func (v Variant) Disclose(bids []Bid) (Disclosure, bool) {
	highest, ok := highestBid(bids)
	if !ok {
		return Disclosure{}, false
	}

	switch v.Kind {
	case Vickrey:
		// Second price; a lone bid pays its own amount.
		price := highest.Amount
		if second, ok := secondHighestAmount(bids, highest); ok {
			price = second
		}
		return Disclosure{Winner: highest.Bidder, Price: price}, true
	case Blind:
		return Disclosure{Winner: highest.Bidder, Price: highest.Amount}, true
	default:
		if v.ReservePrice > 0 && highest.Amount <= v.ReservePrice {
			return Disclosure{}, false
		}
		return Disclosure{Winner: highest.Bidder, Price: highest.Amount}, true
	}
}

// highestBid scans in acceptance order; a later bid replaces the leader only
// when strictly greater, so the earliest of tied amounts wins.
func highestBid(bids []Bid) (Bid, bool) {
	if len(bids) == 0 {
		return Bid{}, false
	}
	top := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > top.Amount {
			top = b
		}
	}
	return top, true
}

// secondHighestAmount returns the largest amount among bids other than the
// winning bid itself. Another bid equal to the winner's amount counts.
func secondHighestAmount(bids []Bid, winner Bid) (int64, bool) {
	var best int64
	found := false
	skipped := false
	for _, b := range bids {
		if !skipped && b == winner {
			skipped = true
			continue
		}
		if !found || b.Amount > best {
			best = b.Amount
			found = true
		}
	}
	return best, found
}
