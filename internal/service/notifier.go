package service

import (
	"bytes"
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/mejbahuddintamim/bdrent-server/internal/adapter/email"
	"github.com/mejbahuddintamim/bdrent-server/internal/adapter/nats"
	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
)

const (
	natsSubjectBookingCreated   = "booking.created"
	natsSubjectBookingCancelled = "booking.cancelled"

	notifyQueueSize   = 64
	notifySendTimeout = 30 * time.Second
)

// BookingNotifier dispatches host notifications for booking lifecycle events.
// Delivery contract: at-most-once, best-effort. Enqueueing never blocks the
// booking operation; a full queue drops the notification with a log line.
type BookingNotifier interface {
	BookingCreated(booking *entity.Booking)
	BookingCancelled(booking *entity.Booking)
}

type notifyKind int

const (
	notifyCreated notifyKind = iota
	notifyCancelled
)

type notification struct {
	kind    notifyKind
	booking *entity.Booking
}

type AsyncNotifier struct {
	sender    email.Sender
	publisher nats.MessagePublisher
	log       logger.Logger

	queue chan notification
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

func NewAsyncNotifier(sender email.Sender, publisher nats.MessagePublisher, log logger.Logger) *AsyncNotifier {
	n := &AsyncNotifier{
		sender:    sender,
		publisher: publisher,
		log:       log,
		queue:     make(chan notification, notifyQueueSize),
		done:      make(chan struct{}),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

func (n *AsyncNotifier) BookingCreated(booking *entity.Booking) {
	n.enqueue(notification{kind: notifyCreated, booking: booking})
}

func (n *AsyncNotifier) BookingCancelled(booking *entity.Booking) {
	n.enqueue(notification{kind: notifyCancelled, booking: booking})
}

func (n *AsyncNotifier) enqueue(msg notification) {
	select {
	case n.queue <- msg:
	case <-n.done:
		n.log.Warnf("Notifier stopped, dropping notification for booking %s", msg.booking.ID)
	default:
		n.log.Warnf("Notification queue full, dropping notification for booking %s", msg.booking.ID)
	}
}

func (n *AsyncNotifier) run() {
	defer n.wg.Done()
	for {
		select {
		case msg := <-n.queue:
			n.dispatch(msg)
		case <-n.done:
			// Drain whatever is already queued, then exit.
			for {
				select {
				case msg := <-n.queue:
					n.dispatch(msg)
				default:
					return
				}
			}
		}
	}
}

// Stop shuts the notifier down after draining the queue.
func (n *AsyncNotifier) Stop() {
	n.once.Do(func() { close(n.done) })
	n.wg.Wait()
}

func (n *AsyncNotifier) dispatch(msg notification) {
	ctx, cancel := context.WithTimeout(context.Background(), notifySendTimeout)
	defer cancel()

	subject := natsSubjectBookingCreated
	if msg.kind == notifyCancelled {
		subject = natsSubjectBookingCancelled
	}
	if err := n.publisher.Publish(ctx, subject, msg.booking); err != nil {
		n.log.Warnf("Failed to publish %s event for booking %s: %v", subject, msg.booking.ID, err)
	}

	if msg.kind != notifyCreated {
		return
	}

	body, err := renderBookingEmail(msg.booking)
	if err != nil {
		n.log.Errorf("Failed to render booking email for booking %s: %v", msg.booking.ID, err)
		return
	}
	if err := n.sender.Send(ctx, []string{msg.booking.HostEmail}, "A new booking has been made", body); err != nil {
		n.log.Warnf("Failed to send booking email for booking %s to %s: %v", msg.booking.ID, msg.booking.HostEmail, err)
	}
}

var bookingEmailTmpl = template.Must(template.New("booking").Parse(`<html>
  <body>
    <h5>New Booking Details:</h5>
    <ul>
      <li><strong>Booking ID:</strong> {{.ID}}</li>
      <li><strong>Home Title:</strong> {{.ListingTitle}}</li>
      <li><strong>Home Location:</strong> {{.ListingLocation}}</li>
      <li><strong>User Name:</strong> {{.GuestName}}</li>
      <li><strong>User Email:</strong> {{.GuestEmail}}</li>
      <li><strong>Transaction ID:</strong> {{.TransactionID}}</li>
    </ul>
    <p>All rights reserved to BD Rent</p>
  </body>
</html>`))

func renderBookingEmail(booking *entity.Booking) (string, error) {
	var buf bytes.Buffer
	if err := bookingEmailTmpl.Execute(&buf, booking); err != nil {
		return "", err
	}
	return buf.String(), nil
}
