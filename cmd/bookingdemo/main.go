// Command bookingdemo walks one complete booking through the
// orchestrator: seat selection, snacks, simulated payment and the
// confirmation receipt.  It talks to the API at CATALOG_BASE_URL and
// silently switches to generated fallback data when that API is
// unreachable, which makes it a convenient offline demo.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/iliyamo/cinema-booking-client/internal/booking"
	"github.com/iliyamo/cinema-booking-client/internal/catalog"
	"github.com/iliyamo/cinema-booking-client/internal/config"
	"github.com/iliyamo/cinema-booking-client/internal/events"
	"github.com/iliyamo/cinema-booking-client/internal/flow"
	"github.com/iliyamo/cinema-booking-client/internal/model"
	"github.com/iliyamo/cinema-booking-client/internal/payment"
	"github.com/iliyamo/cinema-booking-client/internal/session"
)

func main() {
	cfg := config.Load()
	store := newStore(cfg)
	ctx := context.Background()

	fl := booking.NewFlow(store)
	orc := flow.New(
		fl,
		store,
		catalog.New(cfg.CatalogBaseURL, cfg.CatalogTimeout),
		payment.NewSimulator(cfg.PaymentDelay, cfg.PaymentFailureRate),
		nil, // demo runs without the auth gate
		events.NewPublisher(cfg.AMQPURL),
		cfg.Language,
	)

	if err := fl.StartNewBooking(ctx); err != nil {
		log.Fatalf("starting booking: %v", err)
	}

	movieID := "1"
	if len(os.Args) > 1 {
		movieID = os.Args[1]
	}

	info, seats, err := orc.EnterSeatSelection(ctx, movieID, "")
	if err != nil {
		log.Fatalf("seat selection: %v", err)
	}
	fmt.Printf("%s - %s %s, %s (%s)\n", info.MovieTitle, info.Date, info.Time, info.HallName, info.Format)

	// Take the first two selectable seats.
	picked := 0
	for _, s := range seats {
		if !s.Selectable() {
			continue
		}
		fl.ToggleSeat(s)
		fmt.Printf("selected seat row %d number %d (%s, %d soms)\n", s.Row, s.Number, s.Category, s.Price)
		if picked++; picked == 2 {
			break
		}
	}
	if err := orc.ProceedToSnacks(ctx); err != nil {
		log.Fatalf("to snacks: %v", err)
	}

	menu := orc.LoadSnacks(ctx)
	if len(menu) > 0 {
		fl.AddSnack(menu[0])
		fl.AddSnack(menu[0])
		fmt.Printf("added 2 × %s (%d soms each)\n", menu[0].Name, menu[0].Price)
	}
	if err := orc.ProceedToPayment(ctx); err != nil {
		log.Fatalf("to payment: %v", err)
	}

	t := fl.Totals()
	fmt.Printf("seats %d + snacks %d = %d soms\n", t.SeatsTotal, t.SnacksTotal, t.GrandTotal)

	rec, err := orc.CompletePayment(ctx, payment.Card{
		Number:     "4242 4242 4242 4242",
		Expiry:     "12/30",
		CVV:        "123",
		HolderName: "Demo User",
	})
	if err != nil {
		log.Fatalf("payment: %v", err)
	}
	printReceipt(rec)
}

func newStore(cfg config.Config) session.Store {
	switch cfg.SessionBackend {
	case "redis":
		if client := config.NewRedisClient(); client != nil {
			return session.NewRedisStore(client, cfg.SessionPrefix)
		}
		log.Printf("redis unreachable, using file session store")
		fallthrough
	case "file":
		return session.NewFileStore(cfg.SessionFile)
	default:
		return session.NewMemoryStore()
	}
}

func printReceipt(rec *model.ConfirmationRecord) {
	fmt.Printf("\nconfirmation %s\n", rec.Code)
	fmt.Printf("%s, %s %s, %s\n", rec.Booking.MovieTitle, rec.Booking.Date, rec.Booking.Time, rec.Booking.Hall)
	for _, s := range rec.Booking.Seats {
		fmt.Printf("  seat row %d number %d - %d soms\n", s.Row, s.Number, s.Price)
	}
	for _, item := range rec.Booking.Snacks {
		fmt.Printf("  %d × %s - %d soms\n", item.Quantity, item.Snack.Name, item.LineTotal())
	}
	fmt.Printf("total %d soms, payment ref %s\n", rec.Booking.GrandTotal, rec.PaymentRef)
}
