package clientstate

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/app/services/shared/jwtmanager"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type Options struct {
	TokenTTL   time.Duration
	ReceiptTTL time.Duration
	Now        func() time.Time
}

type clientStateRepository struct {
	Log     *zap.Logger
	Durable contracts.SessionStore
	Session contracts.SessionStore
	options Options
}

// NewClientStateRepository keeps the token and pathway in durable, which plays
// the part of browser local storage, and the booking receipt in session.
func NewClientStateRepository(logger *zap.Logger, durable, session contracts.SessionStore, options Options) contracts.ClientStateRepository {
	if options.Now == nil {
		options.Now = time.Now
	}
	return &clientStateRepository{
		Log:     logger,
		Durable: durable,
		Session: session,
		options: options,
	}
}

func key(clientID, name string) string {
	return fmt.Sprintf("client:%s:%s", clientID, name)
}

func (r *clientStateRepository) Token(ctx context.Context, clientID string) (string, error) {
	token, err := r.Durable.Get(ctx, key(clientID, constvars.StorageKeyAuthToken))
	if err != nil {
		return "", err
	}
	if token != "" && jwtmanager.Expired(token, r.options.Now()) {
		r.Log.Info("clientStateRepository.Token expired token dropped",
			zap.String(constvars.LoggingClientIDKey, clientID),
		)
		return "", r.Durable.Delete(ctx, key(clientID, constvars.StorageKeyAuthToken))
	}
	return token, nil
}

func (r *clientStateRepository) SetToken(ctx context.Context, clientID, token string) error {
	return r.Durable.Set(ctx, key(clientID, constvars.StorageKeyAuthToken), token, r.options.TokenTTL)
}

// ClearSession is logout: token and pathway go, the receipt stays.
func (r *clientStateRepository) ClearSession(ctx context.Context, clientID string) error {
	if err := r.Durable.Delete(ctx, key(clientID, constvars.StorageKeyAuthToken)); err != nil {
		return err
	}
	return r.Durable.Delete(ctx, key(clientID, constvars.StorageKeyPathway))
}

func (r *clientStateRepository) Pathway(ctx context.Context, clientID string) (*models.StoredPathway, error) {
	raw, err := r.Durable.Get(ctx, key(clientID, constvars.StorageKeyPathway))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, exceptions.ErrNoPathway(nil)
	}

	var pathway models.StoredPathway
	if err := json.Unmarshal([]byte(raw), &pathway); err != nil {
		r.Log.Warn("clientStateRepository.Pathway unparsable pathway treated as absent",
			zap.String(constvars.LoggingClientIDKey, clientID),
			zap.Error(err),
		)
		return nil, exceptions.ErrNoPathway(err)
	}
	return &pathway, nil
}

func (r *clientStateRepository) SavePathway(ctx context.Context, clientID string, pathway *models.StoredPathway) error {
	raw, err := json.Marshal(pathway)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return r.Durable.Set(ctx, key(clientID, constvars.StorageKeyPathway), string(raw), 0)
}

func (r *clientStateRepository) SaveReceipt(ctx context.Context, clientID string, receipt *models.BookingReceipt) error {
	raw, err := json.Marshal(receipt)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return r.Session.Set(ctx, key(clientID, constvars.StorageKeyBookingReceipt), string(raw), r.options.ReceiptTTL)
}

// TakeReceipt reads the receipt and deletes it, so the confirmation view can
// only be rendered once per booking. Stores implementing contracts.Taker do
// both in one step, so concurrent confirmations cannot share a receipt.
func (r *clientStateRepository) TakeReceipt(ctx context.Context, clientID string) (*models.BookingReceipt, error) {
	receiptKey := key(clientID, constvars.StorageKeyBookingReceipt)
	raw, err := r.take(ctx, receiptKey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, exceptions.ErrNoBookingReceipt(nil)
	}

	var receipt models.BookingReceipt
	if err := json.Unmarshal([]byte(raw), &receipt); err != nil {
		return nil, exceptions.ErrNoBookingReceipt(err)
	}
	return &receipt, nil
}

func (r *clientStateRepository) take(ctx context.Context, storeKey string) (string, error) {
	if taker, ok := r.Session.(contracts.Taker); ok {
		return taker.Take(ctx, storeKey)
	}
	raw, err := r.Session.Get(ctx, storeKey)
	if err != nil || raw == "" {
		return raw, err
	}
	return raw, r.Session.Delete(ctx, storeKey)
}
