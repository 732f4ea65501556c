package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

const (
	SubjectPropertyCreated = "rental.property.created"
	SubjectBookingCreated  = "rental.booking.created"
	SubjectFavoriteToggled = "rental.favorite.toggled"
)

var tracer = otel.Tracer("rental-service/nats-publisher")

// Conn is the subset of *nats.Conn the publisher uses.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
	Drain() error
	Close()
	IsClosed() bool
}

type Publisher struct {
	conn   Conn
	logger *logger.Logger
}

// NewPublisher connects to the NATS server at url.
func NewPublisher(url string, log *logger.Logger, appName string) (*Publisher, error) {
	log.Info("NATS Publisher: connecting...", zap.String("url", url))

	opts := []nats.Option{
		nats.Name(fmt.Sprintf("%s NATS Publisher", appName)),
		nats.Timeout(10 * time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			fields := []zap.Field{zap.Error(err)}
			if sub != nil {
				fields = append(fields, zap.String("subject", sub.Subject))
			}
			log.Error("NATS error", fields...)
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Info("NATS connection closed")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		log.Error("NATS Publisher: failed to connect", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	log.Info("NATS Publisher: successfully connected", zap.String("url", conn.ConnectedUrl()))

	return NewPublisherWithConn(conn, log), nil
}

// NewPublisherWithConn wraps an existing connection.
func NewPublisherWithConn(conn Conn, log *logger.Logger) *Publisher {
	return &Publisher{conn: conn, logger: log.Named("NATSPublisher")}
}

// Publish sends data as JSON on subject, carrying the trace context in the
// message headers.
func (p *Publisher) Publish(ctx context.Context, subject string, data any) error {
	ctx, span := tracer.Start(ctx, "NATS.Publish."+subject)
	defer span.End()

	jsonData, err := json.Marshal(data)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal data for subject %s: %w", subject, err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = jsonData
	msg.Header = make(nats.Header)
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier(msg.Header))

	if err = p.conn.PublishMsg(msg); err != nil {
		p.logger.Error("NATS Publisher: failed to publish message", zap.String("subject", subject), zap.Error(err))
		span.RecordError(err)
		return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
	}

	p.logger.Debug("NATS Publisher: message published", zap.String("subject", subject), zap.Int("data_size_bytes", len(jsonData)))
	return nil
}

type propertyCreatedEvent struct {
	PropertyID string    `json:"propertyId"`
	Name       string    `json:"name"`
	HostID     string    `json:"hostId"`
	Price      string    `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

type bookingCreatedEvent struct {
	BookingID  string    `json:"bookingId"`
	PropertyID string    `json:"propertyId"`
	UserID     string    `json:"userId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Guests     int       `json:"guests"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
}

type favoriteToggledEvent struct {
	UserID     string `json:"userId"`
	PropertyID string `json:"propertyId"`
	IsFavorite bool   `json:"isFavorite"`
}

func (p *Publisher) PublishPropertyCreated(ctx context.Context, property *domain.Property) error {
	return p.Publish(ctx, SubjectPropertyCreated, propertyCreatedEvent{
		PropertyID: property.ID,
		Name:       property.Name,
		HostID:     property.Host.ID,
		Price:      property.Price,
		CreatedAt:  property.CreatedAt,
	})
}

func (p *Publisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	return p.Publish(ctx, SubjectBookingCreated, bookingCreatedEvent{
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		UserID:     booking.UserID,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Guests:     booking.Guests,
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
	})
}

func (p *Publisher) PublishFavoriteToggled(ctx context.Context, favorite *domain.Favorite, added bool) error {
	return p.Publish(ctx, SubjectFavoriteToggled, favoriteToggledEvent{
		UserID:     favorite.UserID,
		PropertyID: favorite.PropertyID,
		IsFavorite: added,
	})
}

// HeaderCarrier adapts nats.Header to the OpenTelemetry propagation API.
type HeaderCarrier nats.Header

var _ propagation.TextMapCarrier = HeaderCarrier(nil)

func (c HeaderCarrier) Get(key string) string {
	return nats.Header(c).Get(key)
}

func (c HeaderCarrier) Set(key string, value string) {
	nats.Header(c).Set(key, value)
}

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Error("NATS Publisher: failed to drain connection", zap.Error(err))
	}
	p.conn.Close()
	p.logger.Info("NATS Publisher: connection closed")
}

// NoopPublisher drops every event. Used when no NATS server is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPropertyCreated(context.Context, *domain.Property) error { return nil }

func (NoopPublisher) PublishBookingCreated(context.Context, *domain.Booking) error { return nil }

func (NoopPublisher) PublishFavoriteToggled(context.Context, *domain.Favorite, bool) error {
	return nil
}

var (
	_ domain.EventPublisher = (*Publisher)(nil)
	_ domain.EventPublisher = NoopPublisher{}
)
