package main

import (
	"fmt"
	"os"
	"time"

	"ilearnics/internal/assignment"
	"ilearnics/internal/calendar"
)

func main() {
	// Create a couple of sample assignment records
	due1 := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)
	due2 := time.Date(2026, 3, 22, 12, 0, 0, 0, time.Local)

	records := []*assignment.Record{
		assignment.NewRecord(
			"HW3: Balanced Trees",
			"https://lms.example.edu/course/58430/assignment/9912",
			"資料結構",
			"2026-03-15 23:59",
			due1,
		),
		assignment.NewRecord(
			"Lab Report 2",
			"https://lms.example.edu/course/58431/assignment/9944",
			"演算法",
			"2026/3/22 12:00",
			due2,
		),
	}

	// Generate the .ics file
	icsContent := calendar.Generate(calendar.FromRecords(records), "iLearning Assignments")

	// Write to file (owner read/write only for security)
	filename := "test-assignments.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
