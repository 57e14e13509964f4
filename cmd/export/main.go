package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/flavr-travel/flavr-backend/config"
	"github.com/flavr-travel/flavr-backend/internal/app/repository"
	"github.com/flavr-travel/flavr-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Exports the newsletter subscriber list to an xlsx file from the command
// line, for when nobody wants to sign in to the dashboard just to pull the
// audience into a mailing tool.
func main() {
	outPath := fmt.Sprintf("subscribers-%s.xlsx", time.Now().Format("2006-01-02"))
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	subscriberRepo := repository.NewSubscriberRepository(db.GetDB())

	subscribers, err := subscriberRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to fetch subscribers:", err)
	}

	fmt.Printf("Exporting %d subscribers to %s\n", len(subscribers), outPath)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetCellValue(sheet, "A1", "Email"); err != nil {
		log.Fatal("Failed to write header:", err)
	}
	if err := f.SetCellValue(sheet, "B1", "Subscribed At"); err != nil {
		log.Fatal("Failed to write header:", err)
	}

	for i, sub := range subscribers {
		row := i + 2
		emailCell, _ := excelize.CoordinatesToCellName(1, row)
		dateCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheet, emailCell, sub.Email); err != nil {
			log.Fatalf("Failed to write row %d: %v", row, err)
		}
		if err := f.SetCellValue(sheet, dateCell, sub.CreatedAt.Format("2006-01-02 15:04:05")); err != nil {
			log.Fatalf("Failed to write row %d: %v", row, err)
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		log.Fatal("Failed to save export:", err)
	}

	fmt.Println("Export completed successfully!")
}
