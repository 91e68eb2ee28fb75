package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"hosteldesk/backend/internal/config"
	"hosteldesk/backend/internal/models"
	"hosteldesk/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "list":
		status := ""
		if len(os.Args) > 2 {
			status = os.Args[2]
		}
		if err := listComplaints(storageSvc, status); err != nil {
			log.Fatalf("Error listing complaints: %v", err)
		}
	case "show":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin show <complaint_id>")
			os.Exit(1)
		}
		id, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid complaint ID. Please provide an integer.")
			os.Exit(1)
		}
		if err := showComplaint(storageSvc, uint(id)); err != nil {
			log.Fatalf("Error showing complaint: %v", err)
		}
	case "resolve":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin resolve <complaint_id>")
			os.Exit(1)
		}
		id, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid complaint ID. Please provide an integer.")
			os.Exit(1)
		}
		if err := storageSvc.UpdateComplaintStatus(uint(id), models.ComplaintStatusResolved); err != nil {
			log.Fatalf("Error resolving complaint: %v", err)
		}
		fmt.Printf("Complaint %d has been resolved.\n", id)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func listComplaints(s storage.Storage, status string) error {
	complaints, err := s.ListComplaints(status)
	if err != nil {
		return err
	}
	for _, c := range complaints {
		fmt.Printf("#%d\t%s\t%s\troom %s\t%s\t%s\n",
			c.ID, c.CreatedAt.Format("2006-01-02 15:04"), c.RollNo, c.RoomNo, c.Status, truncate(c.Body, 60))
	}
	fmt.Printf("%d complaint(s)\n", len(complaints))
	return nil
}

func showComplaint(s storage.Storage, id uint) error {
	c, err := s.GetComplaintByID(id)
	if err != nil {
		return err
	}
	fmt.Printf("Complaint #%d (%s)\n", c.ID, c.Status)
	fmt.Printf("Submitted: %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Name: %s\nRoll no: %s\nRoom: %s\n\n%s\n", c.Name, c.RollNo, c.RoomNo, c.Body)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
