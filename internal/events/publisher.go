// Package events publishes booking domain events to RabbitMQ.
// Publishing is strictly best-effort: errors are logged and returned
// so callers can ignore them, and a nil Publisher is a no-op, so the
// booking flow never depends on a reachable broker.
package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-booking-client/internal/model"
)

const completedQueue = "booking.completed"

// BookingCompletedEvent is published when a simulated payment
// succeeds.  It contains enough information for downstream consumers
// to log or trigger analytics without reading any client state.
type BookingCompletedEvent struct {
	Code        string   `json:"code"`
	MovieID     string   `json:"movie_id"`
	MovieTitle  string   `json:"movie_title"`
	ShowtimeID  string   `json:"showtime_id"`
	Hall        string   `json:"hall"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Seats       []string `json:"seats"`
	SeatsTotal  int      `json:"seats_total"`
	SnacksTotal int      `json:"snacks_total"`
	GrandTotal  int      `json:"grand_total"`
	PaymentRef  string   `json:"payment_ref"`
	PurchasedAt string   `json:"purchased_at"`
}

// Publisher sends booking events to the broker at URL.
type Publisher struct {
	url string
}

// NewPublisher returns a publisher for the given AMQP URL, or nil
// when the URL is empty.  A nil publisher silently drops events.
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// PublishBookingCompleted publishes a BookingCompletedEvent derived
// from the confirmation record.  The function never panics; any error
// is logged and returned so the caller can choose to ignore it.
// Messages are marked as persistent.
func (p *Publisher) PublishBookingCompleted(ctx context.Context, rec model.ConfirmationRecord) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		completedQueue, // name
		true,           // durable
		false,          // autoDelete
		false,          // exclusive
		false,          // noWait
		nil,            // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	event := eventFromRecord(rec)
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",             // default exchange
		completedQueue, // routing key = queue name
		false,          // mandatory
		false,          // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}

func eventFromRecord(rec model.ConfirmationRecord) BookingCompletedEvent {
	seats := make([]string, 0, len(rec.Booking.Seats))
	for _, s := range rec.Booking.Seats {
		seats = append(seats, seatLabel(s))
	}
	return BookingCompletedEvent{
		Code:        rec.Code,
		MovieID:     rec.Booking.MovieID,
		MovieTitle:  rec.Booking.MovieTitle,
		ShowtimeID:  rec.Booking.ShowtimeID,
		Hall:        rec.Booking.Hall,
		Date:        rec.Booking.Date,
		Time:        rec.Booking.Time,
		Seats:       seats,
		SeatsTotal:  rec.Booking.SeatsTotal,
		SnacksTotal: rec.Booking.SnacksTotal,
		GrandTotal:  rec.Booking.GrandTotal,
		PaymentRef:  rec.PaymentRef,
		PurchasedAt: rec.PurchasedAt.UTC().Format(time.RFC3339),
	}
}

func seatLabel(s model.Seat) string {
	return "R" + strconv.Itoa(s.Row) + "-" + strconv.Itoa(s.Number)
}
