package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/db"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/messaging"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/surveillance"
)

func main() {
	log.Println("Surveillance Reminder Job - Starting")

	// Connect to database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	// The job exists to publish reminders, so a broker outage is fatal here
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := surveillance.NewRepository(database)
	service := surveillance.NewService(repo, surveillance.SystemClock(), publisher)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Plans due within the urgent window or already overdue get a reminder
	urgent, err := service.ListUrgent(ctx, surveillance.UrgentFilter{
		MinUrgency: surveillance.TierUrgent,
	})
	if err != nil {
		log.Fatalf("Failed to list urgent surveillance plans: %v", err)
		os.Exit(1)
	}

	log.Printf("Found %d plans due for a reminder", len(urgent))

	if len(urgent) == 0 {
		log.Println("No reminders needed. Exiting.")
		os.Exit(0)
	}

	published := 0
	for _, entry := range urgent {
		event := messaging.SurveillanceReminderEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventSurveillanceReminder),
			Data: messaging.SurveillanceReminderData{
				PlanID:       entry.Plan.ID,
				PatientID:    entry.Plan.PatientID,
				Kind:         string(entry.Plan.Kind),
				Urgency:      string(entry.Tier),
				DaysUntilDue: entry.DaysUntil,
				NextDueDate:  entry.Plan.NextDueDate.Format("2006-01-02"),
			},
		}
		if err := publisher.Publish(ctx, messaging.EventSurveillanceReminder, event); err != nil {
			log.Printf("Warning: failed to publish reminder for plan %s: %v", entry.Plan.ID, err)
			continue
		}
		published++
	}

	log.Printf("✓ Reminder job completed: %d/%d reminders published", published, len(urgent))
	log.Println("Reminder Job - Finished")
}
