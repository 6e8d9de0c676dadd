// Seed loads the static YAML bundle and writes it into MongoDB
// reference collections (questions, norms, careers) for downstream
// reporting collaborators. The engine itself always reads the YAML
// bundle directly; these collections are a convenience copy.
package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"careercompass/internal/catalog"
	"careercompass/internal/config"
	"careercompass/internal/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cat, err := catalog.Load(cfg.DataDir)
	if err != nil {
		log.Fatal("catalog load failed", "dataDir", cfg.DataDir, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("mongodb connect failed", "error", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)
	upsert := options.Replace().SetUpsert(true)

	questions := db.Collection("questions")
	for i := 0; i < cat.Len(); i++ {
		q := cat.QuestionAt(i)
		if _, err := questions.ReplaceOne(ctx, bson.M{"_id": q.ID}, q, upsert); err != nil {
			log.Fatal("question seed failed", "questionId", q.ID, "error", err)
		}
	}
	log.Info("questions seeded", "count", cat.Len())

	norms := db.Collection("norms")
	for dim, n := range cat.Norms() {
		doc := bson.M{"_id": string(dim), "mean": n.Mean, "sd": n.SD}
		if _, err := norms.ReplaceOne(ctx, bson.M{"_id": string(dim)}, doc, upsert); err != nil {
			log.Fatal("norm seed failed", "dimension", string(dim), "error", err)
		}
	}
	log.Info("norms seeded", "count", len(cat.Norms()))

	careers := db.Collection("careers")
	for _, career := range cat.Careers() {
		if _, err := careers.ReplaceOne(ctx, bson.M{"_id": career.ID}, career, upsert); err != nil {
			log.Fatal("career seed failed", "careerId", career.ID, "error", err)
		}
	}
	log.Info("careers seeded", "count", len(cat.Careers()))
}
