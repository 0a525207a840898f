package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ProductsCollection  *mongo.Collection
	CustomersCollection *mongo.Collection
	OrdersCollection    *mongo.Collection
	InvoicesCollection  *mongo.Collection
	FeedbackCollection  *mongo.Collection
	GalleryCollection   *mongo.Collection
	FAQsCollection      *mongo.Collection
	ContactCollection   *mongo.Collection
	UserCollection      *mongo.Collection
	Client              *mongo.Client
)

// Connect establishes the MongoDB connection and binds all collections.
func Connect() error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	Client = client

	database := client.Database("furniture_orders")
	ProductsCollection = database.Collection("products")
	CustomersCollection = database.Collection("customers")
	OrdersCollection = database.Collection("orders")
	InvoicesCollection = database.Collection("invoices")
	FeedbackCollection = database.Collection("feedback")
	GalleryCollection = database.Collection("gallery")
	FAQsCollection = database.Collection("faqs")
	ContactCollection = database.Collection("contact")
	UserCollection = database.Collection("users")

	ensureIndexes(ctx, database)
	return nil
}

// Ready reports whether the store connection is usable. Handlers gate on this
// so a dead connection surfaces as 503 instead of a driver timeout.
func Ready(ctx context.Context) bool {
	if Client == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return Client.Ping(pingCtx, nil) == nil
}

// Unique indexes on the generated numbers and the invoice order ref are the
// only hard backstop against the weak timestamp+suffix numbering scheme.
func ensureIndexes(ctx context.Context, database *mongo.Database) {
	orderIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "orderNumber", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}
	if _, err := database.Collection("orders").Indexes().CreateOne(ctx, orderIdx); err != nil {
		log.Printf("orderNumber index: %v", err)
	}

	invoiceIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "invoiceNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := database.Collection("invoices").Indexes().CreateMany(ctx, invoiceIdx); err != nil {
		log.Printf("invoice indexes: %v", err)
	}

	userIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := database.Collection("users").Indexes().CreateOne(ctx, userIdx); err != nil {
		log.Printf("username index: %v", err)
	}
}
