// Command seed fills a local database with demo providers and prints
// development tokens for them and a demo client.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"theray/config"
	"theray/database"
	providerRepo "theray/database/repository/provider"
	"theray/models"
	"theray/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const providerCount = 10

func weekdayWindows(days []string, blocks [][2]string) []models.AvailabilityWindow {
	var windows []models.AvailabilityWindow
	for _, d := range days {
		for _, b := range blocks {
			windows = append(windows, models.AvailabilityWindow{Day: d, StartTime: b[0], EndTime: b[1]})
		}
	}
	return windows
}

func main() {
	config.LoadConfig()
	if config.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}
	database.InitDB()
	db := database.DB()

	// Creates the provider indexes as a side effect.
	if _, err := providerRepo.NewMongoProviderRepo(db); err != nil {
		log.Fatalf("Failed to prepare providers collection: %v", err)
	}
	providerColl := db.Collection("providers")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	sessionTypes := []models.SessionType{models.SessionIndividual, models.SessionCouple, models.SessionFamily, models.SessionGroup}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 1; i <= providerCount; i++ {
		windows := weekdayWindows(weekdays, [][2]string{{"09:00", "12:00"}, {"13:00", "17:00"}})
		if i%3 == 0 {
			windows = append(windows, models.AvailabilityWindow{Day: "Saturday", StartTime: "10:00", EndTime: "14:00"})
		}
		now := time.Now().UTC()
		provider := models.Provider{
			ID:           fmt.Sprintf("prov-%d", i),
			UserID:       fmt.Sprintf("user-prov-%d", i),
			HourlyRate:   float64(60 + 10*rng.Intn(10)),
			Availability: windows,
			SessionTypes: sessionTypes[:1+i%len(sessionTypes)],
			IsVerified:   i%2 == 0,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		opts := options.Replace().SetUpsert(true)
		if _, err := providerColl.ReplaceOne(ctx, bson.M{"id": provider.ID}, provider, opts); err != nil {
			log.Fatalf("Failed to upsert provider %s: %v", provider.ID, err)
		}

		token, err := utils.GenerateToken(config.AppConfig.JWTSecret, provider.UserID, "provider", 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to issue token for %s: %v", provider.UserID, err)
		}
		fmt.Printf("%s (rate %.2f/h) provider token: %s\n", provider.ID, provider.HourlyRate, token)
	}

	clientToken, err := utils.GenerateToken(config.AppConfig.JWTSecret, "client-demo", "client", 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to issue client token: %v", err)
	}
	fmt.Printf("client-demo client token: %s\n", clientToken)

	if err := database.Disconnect(context.Background()); err != nil {
		log.Printf("Failed to disconnect: %v", err)
	}
}
