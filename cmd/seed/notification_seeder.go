package main

import (
	"log"

	"topicmatch-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the registry that maps event codes to
// notification targets and templates. The worker drops events whose code
// has no row here, so every published event type needs an entry.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "QUESTIONNAIRE_SUBMITTED",
			DisplayName: "Questionnaire Submitted",
			Template:    "{full_name} submitted the questionnaire for {period_name} ({answered_count}/{total_count} answered)",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "RANKING_SUBMITTED",
			DisplayName: "Ranking Submitted",
			Template:    "A ranking for {period_name} was submitted ({topics} topics ordered)",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "PERIOD_OPENED",
			DisplayName: "Period Opened",
			Template:    "Questionnaire period \"{period_name}\" is now open",
			TargetType:  "ROLE",
			TargetRole:  "student",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "PERIOD_CLOSED",
			DisplayName: "Period Closed",
			Template:    "Period \"{period_name}\" has closed. Answers and rankings are final.",
			TargetType:  "ROLE",
			TargetRole:  "student",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "TOPIC_PUBLISHED",
			DisplayName: "New Topic Available",
			Template:    "New topic available for ranking: \"{title}\"",
			TargetType:  "ROLE",
			TargetRole:  "student",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "MATCHING_EXPORTED",
			DisplayName: "Matching Export Generated",
			Template:    "Matching export for {period_name} is ready: {agents} students across {teams} topics",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "System Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "TEST_EVENT",
			DisplayName: "Test Notification",
			Template:    "This is a test notification: {message}",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
	}

	for _, t := range types {
		if err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error; err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Println("Notification types seeded.")
}
