// Seeds a demo catalog: product families with structured part numbers, a
// stock ledger and two demo dealer accounts.
// Usage: go run ./cmd/seedcatalog
package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/adamcernik/biketime-public-sub000/internal/config"
	"github.com/adamcernik/biketime-public-sub000/internal/model"
)

var (
	brands = []string{"Corratec", "Winora", "Haibike", "Lapierre", "Ghost"}

	categories = []struct {
		raw      string
		electric bool
	}{
		{"MTB hardtail", false},
		{"Trekking", false},
		{"Silnice", false},
		{"Dětské", false},
		{"Gravel", false},
		{"E-MTB celoodpružené", true},
		{"E-Trekking", true},
		{"E-SUV", true},
	}

	// capacity digit -> battery label written into specifications
	capacityDigits = map[byte]string{'4': "400 Wh", '5': "500 Wh", '6': "625 Wh", '7': "750 Wh", '8': "800 Wh", '9': "900 Wh"}

	sizeCodes = []string{"17", "19", "21", "43", "48", "53"}
)

func main() {
	gofakeit.Seed(42)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDB)

	products := seedProducts()
	if err := insertProducts(ctx, db, products); err != nil {
		log.Fatalf("seed products: %v", err)
	}
	if err := seedLedger(ctx, db, products); err != nil {
		log.Fatalf("seed ledger: %v", err)
	}
	if err := seedDealers(ctx, db); err != nil {
		log.Fatalf("seed dealers: %v", err)
	}

	fmt.Printf("seeded %d products\n", len(products))
}

// seedProducts builds 40 model families. Electric families get one SKU per
// (capacity, size) pair; the rest one SKU per size.
func seedProducts() []model.Product {
	var out []model.Product

	for f := 0; f < 40; f++ {
		brand := brands[gofakeit.Number(0, len(brands)-1)]
		cat := categories[gofakeit.Number(0, len(categories)-1)]
		modelName := fmt.Sprintf("%s %d", gofakeit.CarModel(), gofakeit.Number(1, 9))
		if cat.electric {
			modelName = "e-" + modelName
		}
		base := fmt.Sprintf("%s%04d", brand[:2], gofakeit.Number(1000, 9999))
		year := gofakeit.Number(2023, 2026)
		color := gofakeit.Color()
		retail := float64(gofakeit.Number(15000, 220000))

		var caps []byte
		if cat.electric {
			for _, digit := range []byte("456789") {
				if gofakeit.Bool() {
					caps = append(caps, digit)
				}
			}
			if len(caps) == 0 {
				caps = []byte{'6'}
			}
		} else {
			caps = []byte{'0'}
		}

		sizes := sizeCodes[:gofakeit.Number(2, 4)]
		for _, capDigit := range caps {
			for _, size := range sizes {
				price := retail
				p := model.Product{
					PartNumber:    base + string(capDigit) + size,
					Brand:         brand,
					Model:         modelName,
					Color:         color,
					Category:      cat.raw,
					ImageURL:      gofakeit.ImageURL(640, 480),
					IsActive:      true,
					DeclaredPrice: &price,
					Specifications: map[string]string{
						"modelYear": strconv.Itoa(year),
						"Cena A":    fmt.Sprintf("%.0f", retail*0.82),
						"Cena B":    fmt.Sprintf("%.0f", retail*0.78),
						"cenik-c":   fmt.Sprintf("%.0f", retail*0.74),
					},
					SupplierStockQuantity: strconv.Itoa(gofakeit.Number(0, 12)),
				}
				if cat.electric {
					p.Specifications["battery"] = capacityDigits[capDigit]
					p.Specifications["drivetrain"] = "elektro Bosch CX"
				}
				out = append(out, p)
			}
		}
	}
	return out
}

func insertProducts(ctx context.Context, db *mongo.Database, products []model.Product) error {
	coll := db.Collection("products")
	writes := make([]mongo.WriteModel, 0, len(products))
	for _, p := range products {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"partNumber": p.PartNumber}).
			SetUpdate(bson.M{"$set": p}).
			SetUpsert(true))
	}
	_, err := coll.BulkWrite(ctx, writes)
	return err
}

// seedLedger writes ledger rows for roughly half the SKUs so the resolver
// runs in its authoritative mode.
func seedLedger(ctx context.Context, db *mongo.Database, products []model.Product) error {
	coll := db.Collection("stock")
	var writes []mongo.WriteModel
	for _, p := range products {
		if !gofakeit.Bool() {
			continue
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"key": p.PartNumber}).
			SetUpdate(bson.M{"$set": bson.M{
				"key":       p.PartNumber,
				"onHand":    gofakeit.Number(0, 8),
				"inTransit": gofakeit.Number(0, 4),
			}}).
			SetUpsert(true))
	}
	if len(writes) == 0 {
		return nil
	}
	_, err := coll.BulkWrite(ctx, writes)
	return err
}

func seedDealers(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("dealers")
	accounts := []struct {
		email, name, tier, role, password string
	}{
		{"admin@biketime.cz", "Admin Demo", "A", model.RoleAdmin, "biketime2026"},
		{"dealer@biketime.cz", "Dealer Demo", "B", model.RoleDealer, "kolo1234"},
	}

	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), 12)
		if err != nil {
			return err
		}
		_, err = coll.UpdateOne(ctx,
			bson.M{"email": a.email},
			bson.M{"$set": bson.M{
				"email":        a.email,
				"name":         a.name,
				"passwordHash": string(hash),
				"tier":         a.tier,
				"role":         a.role,
				"isActive":     true,
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			return err
		}
		fmt.Printf("dealer '%s' ready (password '%s')\n", a.email, a.password)
	}
	return nil
}
