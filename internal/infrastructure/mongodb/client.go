// Package mongodb adaptador de almacenamiento sobre MongoDB: el plan de consulta se traduce
// a un pipeline de agregación ($match, $lookup, $sort).
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/recetario-api/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Colecciones.
const (
	CategoriesCollection = "categories"
	RecipesCollection    = "recipes"
	UsersCollection      = "credentialUsers"
)

// NewClient conecta y verifica el servidor. Las transacciones del borrado en cascada
// requieren un replica set.
func NewClient(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices usados por las consultas y el índice único de username.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("index credentialUsers.username: %w", err)
	}
	if _, err := db.Collection(CategoriesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("index categories.userId: %w", err)
	}
	if _, err := db.Collection(RecipesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "categoryId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("index recipes.userId_categoryId: %w", err)
	}
	return nil
}

// caseInsensitive collation para ordenar nombres sin distinguir mayúsculas.
func caseInsensitive() *options.Collation {
	return &options.Collation{Locale: "en", Strength: 2}
}

// sessionScope ata las operaciones de un repositorio a una sesión (transacción) si la hay.
type sessionScope struct {
	sess mongo.Session
}

func (s sessionScope) bind(ctx context.Context) context.Context {
	if s.sess == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, s.sess)
}
