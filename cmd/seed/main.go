// Command seed fills a development database with authorities and a week of open
// slots for each of them.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"govconnect/config"
	"govconnect/database"
	authorityRepo "govconnect/database/repository/authority"
	recordsRepo "govconnect/database/repository/records"
	schedulerRepo "govconnect/database/repository/scheduler"
	timeslotRepo "govconnect/database/repository/timeslot"
	"govconnect/models"
	"govconnect/utils"
)

var authorities = []models.Authority{
	{ID: "auth-dmt", Name: "Department of Motor Traffic", Category: "Driving Licence", Location: "Werahera"},
	{ID: "auth-imm", Name: "Department of Immigration and Emigration", Category: "Passport", Location: "Battaramulla"},
	{ID: "auth-rgd", Name: "Registrar General's Department", Category: "Birth Certificate", Location: "Battaramulla"},
	{ID: "auth-drp", Name: "Department for Registration of Persons", Category: "National Identity Card", Location: "Colombo 10"},
}

// Half-hour counters from 09:00 to 12:00 and 13:00 to 15:00.
var dailyWindows = []models.SlotWindow{
	{Start: 540, End: 570}, {Start: 570, End: 600}, {Start: 600, End: 630},
	{Start: 630, End: 660}, {Start: 660, End: 690}, {Start: 690, End: 720},
	{Start: 780, End: 810}, {Start: 810, End: 840}, {Start: 840, End: 870},
	{Start: 870, End: 900},
}

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	authRepo := authorityRepo.NewMongoAuthorityRepo(db)
	slotRepo := timeslotRepo.NewMongoTimeSlotRepo(db)
	recordRepo := recordsRepo.NewMongoRecordRepo(db)
	// Booked slots stay closed when the seeder runs again.
	publisher := schedulerRepo.NewMongoSchedulerRepo(database.MongoClient, config.AppConfig.MongoTransactions, slotRepo, recordRepo, nil)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create authority indexes: %v", err)
	}
	if err := slotRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create free time indexes: %v", err)
	}

	// Generate dates for the next 7 working days.
	var dates []string
	for day := time.Now().In(config.Location()); len(dates) < 7; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, day.Format(utils.DateLayout))
	}

	added, skipped := 0, 0
	for i := range authorities {
		a := authorities[i]
		if err := authRepo.Upsert(ctx, &a); err != nil {
			log.Fatalf("Failed to upsert authority %s: %v", a.ID, err)
		}
		for _, date := range dates {
			for _, w := range dailyWindows {
				err := publisher.PublishSlot(ctx, a.ID, date, w.Label())
				switch {
				case err == nil:
					added++
				case utils.IsKind(err, utils.KindConflict):
					skipped++
				default:
					log.Fatalf("Failed to add slot %s on %s for %s: %v", w.Label(), date, a.ID, err)
				}
			}
		}
	}
	fmt.Printf("Seeded %d authorities: %d slots added, %d already present\n", len(authorities), added, skipped)
}
