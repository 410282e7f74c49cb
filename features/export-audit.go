package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"topicmatch-be/pkg/matching"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Checks a matching export file before it is handed to the solver: header
// counts against payload lengths, preference lists against the topic set,
// attribute keys against the question catalog, seats against agents.
//
// Usage:
//
//	go run ./features -file exports/matching_<period>_<ts>.json
//	go run ./features            (audits the newest export in MATCHING_EXPORT_DIR)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	file := flag.String("file", "", "export file to audit; empty picks the newest one")
	dir := flag.String("dir", getEnv("MATCHING_EXPORT_DIR", "exports"), "directory holding export files")
	flag.Parse()

	path := *file
	if path == "" {
		latest, err := newestExport(*dir)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		path = latest
	}

	input, err := loadExport(path)
	if err != nil {
		log.Fatalf("Error: failed to read %s: %v", path, err)
	}

	color.Cyan("Auditing %s\n", path)
	fmt.Printf("Period %s, generated %s\n", input.PeriodId, input.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("%d teams, %d agents, %d seats per team\n\n", input.NumTeams, input.NumAgents, input.AgentsPerTeam)

	problems := auditExport(input)
	printFirstChoices(input)

	if len(problems) > 0 {
		fmt.Println()
		for _, p := range problems {
			color.Red("✗ %s", p)
		}
		os.Exit(1)
	}
	color.Green("\n✅ Export is consistent")
}

// newestExport returns the most recently named export in dir. File names
// end in the generation timestamp, so lexicographic order per period is
// chronological; across periods modification time settles it.
func newestExport(dir string) (string, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "matching_*.json"))
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no export files under %s", dir)
	}
	sort.Slice(entries, func(i, j int) bool {
		fi, errI := os.Stat(entries[i])
		fj, errJ := os.Stat(entries[j])
		if errI != nil || errJ != nil {
			return entries[i] < entries[j]
		}
		return fi.ModTime().Before(fj.ModTime())
	})
	return entries[len(entries)-1], nil
}

func loadExport(path string) (*matching.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var input matching.Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}
	return &input, nil
}

func auditExport(input *matching.Input) []string {
	var problems []string
	report := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if input.NumTeams != len(input.Topics) {
		report("header says %d teams but %d topics are listed", input.NumTeams, len(input.Topics))
	}
	if input.NumAgents != len(input.Agents) {
		report("header says %d agents but %d are listed", input.NumAgents, len(input.Agents))
	}
	if seats := input.NumTeams * input.AgentsPerTeam; seats < input.NumAgents {
		report("%d seats cannot hold %d agents", seats, input.NumAgents)
	}

	for i, t := range input.Topics {
		if t.Index != i {
			report("topic %q has index %d at position %d", t.Title, t.Index, i)
		}
		if t.Capacity <= 0 {
			report("topic %q has capacity %d", t.Title, t.Capacity)
		}
	}

	knownKeys := make(map[string]bool, len(input.Questions))
	for _, q := range input.Questions {
		knownKeys[q.Key] = true
	}

	seenRespondents := make(map[string]bool, len(input.Agents))
	for i, a := range input.Agents {
		if a.Id != i {
			report("agent %s has id %d at position %d", a.RespondentId, a.Id, i)
		}
		if seenRespondents[a.RespondentId.String()] {
			report("respondent %s appears twice", a.RespondentId)
		}
		seenRespondents[a.RespondentId.String()] = true

		if len(a.Preferences) != len(input.Topics) {
			report("agent %s ranks %d of %d topics", a.RespondentId, len(a.Preferences), len(input.Topics))
			continue
		}
		seenTopics := make(map[int]bool, len(a.Preferences))
		for _, idx := range a.Preferences {
			if idx < 0 || idx >= len(input.Topics) {
				report("agent %s prefers unknown topic index %d", a.RespondentId, idx)
				continue
			}
			if seenTopics[idx] {
				report("agent %s ranks topic index %d twice", a.RespondentId, idx)
			}
			seenTopics[idx] = true
		}
		for key := range a.Attributes {
			if !knownKeys[key] {
				report("agent %s carries unknown attribute %q", a.RespondentId, key)
			}
		}
	}

	return problems
}

// printFirstChoices shows how demand spreads over the topics, the first
// thing an admin wants to see before running the solver.
func printFirstChoices(input *matching.Input) {
	counts := make([]int, len(input.Topics))
	for _, a := range input.Agents {
		if len(a.Preferences) == 0 {
			continue
		}
		if idx := a.Preferences[0]; idx >= 0 && idx < len(counts) {
			counts[idx]++
		}
	}

	color.Yellow("First choices")
	for i, t := range input.Topics {
		marker := ""
		if counts[i] > t.Capacity {
			marker = "  (over capacity)"
		}
		fmt.Printf("  %-40s %d/%d%s\n", t.Title, counts[i], t.Capacity, marker)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
