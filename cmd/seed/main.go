package main

import (
	"log"
	"os"
	"time"

	"topicmatch-be/internal/model"
	"topicmatch-be/pkg/database"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a working development dataset: accounts, a demo period with its
// question catalog and published topics, and the notification registry.
// Safe to re-run; every insert goes through FirstOrCreate.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🌱 Seeding development data\n")

	color.Yellow("\n[1/4] Users")
	users := seedUsers(db)

	color.Yellow("\n[2/4] Demo period, questions and topics")
	seedDemoPeriod(db)

	color.Yellow("\n[3/4] Notification types")
	SeedNotificationTypes(db)

	color.Yellow("\n[4/4] Development tokens")
	printDevTokens(users)

	color.Green("\n✅ Seeding completed")
}

func seedUsers(db *gorm.DB) []model.User {
	num := func(s string) *string { return &s }

	users := []model.User{
		{Email: "admin@topicmatch.dev", FullName: "Portal Admin", Role: "admin", Status: "active"},
		{Email: "alice@student.dev", FullName: "Alice Tanaka", StudentNumber: num("S2026001"), Role: "student", Status: "active"},
		{Email: "bram@student.dev", FullName: "Bram Wijaya", StudentNumber: num("S2026002"), Role: "student", Status: "active"},
		{Email: "chloe@student.dev", FullName: "Chloe Martin", StudentNumber: num("S2026003"), Role: "student", Status: "active"},
		{Email: "dewi@student.dev", FullName: "Dewi Lestari", StudentNumber: num("S2026004"), Role: "student", Status: "active"},
	}

	for i := range users {
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			color.Red("Failed to seed user %s: %v", users[i].Email, err)
			continue
		}
		log.Printf("User ready: %s (%s)", users[i].Email, users[i].Role)
	}
	return users
}

func seedDemoPeriod(db *gorm.DB) {
	period := model.Period{Name: "Fall 2026 Project Matching", Status: "draft"}
	if err := db.Where("name = ?", period.Name).FirstOrCreate(&period).Error; err != nil {
		color.Red("Failed to seed period: %v", err)
		return
	}
	log.Printf("Period ready: %s (%s)", period.Name, period.Id)

	questions := []model.Question{
		{PeriodId: period.Id, Text: "I prefer taking the lead in group work", Kind: "scale", ScaleMin: 1, ScaleMax: 5, Position: 1},
		{PeriodId: period.Id, Text: "I enjoy detailed planning over improvisation", Kind: "scale", ScaleMin: 1, ScaleMax: 5, Position: 2},
		{PeriodId: period.Id, Text: "Rate your programming experience", Kind: "scale", ScaleMin: 1, ScaleMax: 10, Position: 3},
		{PeriodId: period.Id, Text: "I have prior experience with data analysis", Kind: "boolean", Position: 4},
		{PeriodId: period.Id, Text: "I am available for evening meetings", Kind: "boolean", Position: 5},
	}
	for i := range questions {
		err := db.Where("period_id = ? AND position = ?", period.Id, questions[i].Position).
			FirstOrCreate(&questions[i]).Error
		if err != nil {
			color.Red("Failed to seed question %d: %v", questions[i].Position, err)
		}
	}
	log.Printf("Questions ready: %d", len(questions))

	topics := []model.Topic{
		{PeriodId: period.Id, Title: "Campus Energy Dashboard", Description: "Visualize real-time energy usage across campus buildings.", Supervisor: "Dr. Hartono", Capacity: 4, Status: "published", Position: 1},
		{PeriodId: period.Id, Title: "Library Chatbot", Description: "A retrieval assistant for the university library catalog.", Supervisor: "Dr. Okafor", Capacity: 4, Status: "published", Position: 2},
		{PeriodId: period.Id, Title: "Bicycle Route Planner", Description: "Safe cycling routes between campus sites.", Supervisor: "Ir. van Dijk", Capacity: 4, Status: "published", Position: 3},
		{PeriodId: period.Id, Title: "Exam Scheduling Optimizer", Description: "Constraint solver for clash-free exam timetables.", Supervisor: "Dr. Silva", Capacity: 4, Status: "published", Position: 4},
	}
	for i := range topics {
		err := db.Where("period_id = ? AND title = ?", period.Id, topics[i].Title).
			FirstOrCreate(&topics[i]).Error
		if err != nil {
			color.Red("Failed to seed topic %q: %v", topics[i].Title, err)
		}
	}
	log.Printf("Topics ready: %d", len(topics))
}

// printDevTokens signs a long-lived JWT per seeded account so the API can
// be exercised with curl right after seeding. Development helper only;
// real tokens come from the campus identity provider.
func printDevTokens(users []model.User) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		color.Red("JWT_SECRET is not set, skipping token generation")
		return
	}

	for _, u := range users {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": u.Id.String(),
			"email":   u.Email,
			"role":    u.Role,
			"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		if err != nil {
			color.Red("Failed to sign token for %s: %v", u.Email, err)
			continue
		}
		color.Green("%s (%s):", u.Email, u.Role)
		log.Println(signed)
	}
}
