package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrReceiptNotFound = errors.New("receipt not found")

const (
	ReceiptPending = "pending"
	ReceiptSent    = "sent"
)

// Receipt is the worker's ledger entry for one order. order_id is unique.
type Receipt struct {
	OrderID       string     `bson:"order_id"`
	Email         string     `bson:"email"`
	Total         string     `bson:"total"`
	Currency      string     `bson:"currency"`
	TransactionID string     `bson:"transaction_id"`
	Status        string     `bson:"status"`
	Attempts      int        `bson:"attempts"`
	CreatedAt     time.Time  `bson:"created_at"`
	SentAt        *time.Time `bson:"sent_at,omitempty"`
}

func NewReceipt(summary domain.OrderSummary) *Receipt {
	return &Receipt{
		OrderID:       summary.OrderID,
		Email:         summary.Email,
		Total:         summary.Total.StringFixed(2),
		Currency:      summary.Currency,
		TransactionID: summary.TransactionID,
		Status:        ReceiptPending,
	}
}

type ReceiptStore interface {
	// Reserve records the receipt if it is new and reports whether it was already sent.
	Reserve(ctx context.Context, r *Receipt) (alreadySent bool, err error)
	MarkSent(ctx context.Context, orderID string) error
}

type MongoReceiptStore struct {
	collection *mongo.Collection
}

func NewMongoReceiptStore(db *mongo.Database) *MongoReceiptStore {
	return &MongoReceiptStore{
		collection: db.Collection("receipts"),
	}
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(20)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func (s *MongoReceiptStore) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	if _, err := s.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (s *MongoReceiptStore) Reserve(ctx context.Context, r *Receipt) (bool, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	filter := bson.M{"order_id": r.OrderID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"order_id":       r.OrderID,
			"email":          r.Email,
			"total":          r.Total,
			"currency":       r.Currency,
			"transaction_id": r.TransactionID,
			"status":         ReceiptPending,
			"created_at":     r.CreatedAt,
		},
		"$inc": bson.M{"attempts": 1},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored Receipt
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		// lost an upsert race; the other writer inserted the document
		err = s.collection.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"attempts": 1}},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&stored)
	}
	if err != nil {
		return false, fmt.Errorf("failed to reserve receipt %s: %w", r.OrderID, err)
	}
	return stored.Status == ReceiptSent, nil
}

func (s *MongoReceiptStore) MarkSent(ctx context.Context, orderID string) error {
	now := time.Now().UTC()
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"status": ReceiptSent, "sent_at": now}})
	if err != nil {
		return fmt.Errorf("failed to mark receipt %s sent: %w", orderID, err)
	}
	if res.MatchedCount == 0 {
		return ErrReceiptNotFound
	}
	return nil
}

func (s *MongoReceiptStore) Get(ctx context.Context, orderID string) (*Receipt, error) {
	var r Receipt
	err := s.collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return &r, nil
}
