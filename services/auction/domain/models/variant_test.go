package models

import (
	"errors"
	"testing"
	"time"

	auctiondomain "github.com/ghuser/auctionsite/services/auction/domain"
)

func bidList(amounts ...int64) []Bid {
	base := time.Date(2018, 1, 1, 10, 0, 0, 0, time.UTC)
	bids := make([]Bid, len(amounts))
	for i, a := range amounts {
		bids[i] = Bid{
			AuctionID: 1,
			Bidder:    User{ID: "b" + string(rune('0'+i)), Name: "Bidder", Type: BuyerOrSeller},
			Amount:    a,
			PlacedAt:  base.Add(time.Duration(i) * time.Minute),
		}
	}
	return bids
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Variant
	}{
		{"empty defaults to English", "", Variant{Kind: English}},
		{"plain English", "English|0|0|0", Variant{Kind: English}},
		{"English with options", "English|10|5|60", Variant{Kind: English, ReservePrice: 10, MinRaise: 5, TimeFrameSeconds: 60}},
		{"Vickrey", "Vickrey", Variant{Kind: Vickrey}},
		{"Blind", "Blind", Variant{Kind: Blind}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if err != nil {
				t.Fatalf("ParseVariant(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseVariant(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	t.Run("rejects malformed", func(t *testing.T) {
		for _, s := range []string{"Dutch", "English", "English|1|2", "English|a|0|0", "English|-1|0|0", "Vickrey|1"} {
			if _, err := ParseVariant(s); err == nil {
				t.Fatalf("ParseVariant(%q) accepted malformed input", s)
			}
		}
	})
}

func TestVariantString(t *testing.T) {
	tests := []struct {
		variant Variant
		want    string
	}{
		{Variant{Kind: English}, "English|0|0|0"},
		{Variant{Kind: English, ReservePrice: 10, MinRaise: 5, TimeFrameSeconds: 60}, "English|10|5|60"},
		{Variant{Kind: Vickrey}, "Vickrey"},
		{Variant{Kind: Blind}, "Blind"},
	}

	for _, tt := range tests {
		if got := tt.variant.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestAcceptBidEnglish(t *testing.T) {
	v := EnglishVariant()

	t.Run("first bid accepted", func(t *testing.T) {
		if err := v.AcceptBid(nil, 1); err != nil {
			t.Fatalf("unexpected rejection: %v", err)
		}
	})

	t.Run("must exceed highest", func(t *testing.T) {
		bids := bidList(10, 20)
		if err := v.AcceptBid(bids, 21); err != nil {
			t.Fatalf("unexpected rejection: %v", err)
		}
		err := v.AcceptBid(bids, 20)
		if !errors.Is(err, auctiondomain.ErrMustPlaceBidOverHighestBid) {
			t.Fatalf("expected MustPlaceBidOverHighestBid, got %v", err)
		}
		if err.Error() != "MustPlaceBidOverHighestBid 20" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
		if err := v.AcceptBid(bids, 15); err == nil {
			t.Fatal("bid below highest must be rejected")
		}
	})

	t.Run("min raise", func(t *testing.T) {
		raised := Variant{Kind: English, MinRaise: 5}
		bids := bidList(10)
		if err := raised.AcceptBid(bids, 15); err == nil {
			t.Fatal("bid within min raise must be rejected")
		}
		if err := raised.AcceptBid(bids, 16); err != nil {
			t.Fatalf("unexpected rejection: %v", err)
		}
	})

	t.Run("reserve floors the first bid", func(t *testing.T) {
		reserved := Variant{Kind: English, ReservePrice: 10}
		err := reserved.AcceptBid(nil, 10)
		if !errors.Is(err, auctiondomain.ErrMustPlaceBidOverHighestBid) {
			t.Fatalf("expected MustPlaceBidOverHighestBid, got %v", err)
		}
		if err := reserved.AcceptBid(nil, 11); err != nil {
			t.Fatalf("unexpected rejection: %v", err)
		}
	})
}

func TestAcceptBidSealedVariants(t *testing.T) {
	for _, v := range []Variant{{Kind: Vickrey}, {Kind: Blind}} {
		t.Run(v.String(), func(t *testing.T) {
			bids := bidList(100)
			// Sealed bidders cannot see each other; any amount is accepted.
			if err := v.AcceptBid(bids, 1); err != nil {
				t.Fatalf("sealed variant rejected a bid: %v", err)
			}
		})
	}
}

func TestDisclose(t *testing.T) {
	t.Run("no bids no winner", func(t *testing.T) {
		if _, ok := EnglishVariant().Disclose(nil); ok {
			t.Fatal("expected no winner without bids")
		}
	})

	t.Run("English pays own bid", func(t *testing.T) {
		bids := bidList(10, 20)
		d, ok := EnglishVariant().Disclose(bids)
		if !ok {
			t.Fatal("expected a winner")
		}
		if d.Winner != bids[1].Bidder || d.Price != 20 {
			t.Fatalf("unexpected disclosure: %+v", d)
		}
	})

	t.Run("English reserve unmet", func(t *testing.T) {
		reserved := Variant{Kind: English, ReservePrice: 30}
		if _, ok := reserved.Disclose(bidList(10, 20)); ok {
			t.Fatal("expected no winner below reserve")
		}
	})

	t.Run("Vickrey pays second price", func(t *testing.T) {
		bids := bidList(10, 20)
		d, ok := Variant{Kind: Vickrey}.Disclose(bids)
		if !ok {
			t.Fatal("expected a winner")
		}
		if d.Winner != bids[1].Bidder || d.Price != 10 {
			t.Fatalf("unexpected disclosure: %+v", d)
		}
	})

	t.Run("Vickrey lone bid pays own amount", func(t *testing.T) {
		bids := bidList(15)
		d, ok := Variant{Kind: Vickrey}.Disclose(bids)
		if !ok {
			t.Fatal("expected a winner")
		}
		if d.Price != 15 {
			t.Fatalf("lone Vickrey bid must pay its own amount, got %d", d.Price)
		}
	})

	t.Run("Vickrey tie pays the tied amount", func(t *testing.T) {
		bids := bidList(20, 20)
		d, ok := Variant{Kind: Vickrey}.Disclose(bids)
		if !ok {
			t.Fatal("expected a winner")
		}
		if d.Winner != bids[0].Bidder {
			t.Fatalf("tie must go to the earliest bid, got %+v", d.Winner)
		}
		if d.Price != 20 {
			t.Fatalf("second price of a tie is the tied amount, got %d", d.Price)
		}
	})

	t.Run("Blind pays own bid", func(t *testing.T) {
		bids := bidList(10, 25, 20)
		d, ok := Variant{Kind: Blind}.Disclose(bids)
		if !ok {
			t.Fatal("expected a winner")
		}
		if d.Winner != bids[1].Bidder || d.Price != 25 {
			t.Fatalf("unexpected disclosure: %+v", d)
		}
	})

	t.Run("tie goes to the earliest bid", func(t *testing.T) {
		bids := bidList(20, 20, 10)
		for _, v := range []Variant{{Kind: English}, {Kind: Blind}} {
			d, ok := v.Disclose(bids)
			if !ok {
				t.Fatalf("%s: expected a winner", v)
			}
			if d.Winner != bids[0].Bidder {
				t.Fatalf("%s: tie must go to the earliest bid, got %+v", v, d.Winner)
			}
		}
	})
}
