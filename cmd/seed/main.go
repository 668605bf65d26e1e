package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"lingualearn/internal/config"
	"lingualearn/internal/database"
	"lingualearn/internal/repository"
	"lingualearn/internal/service"
)

func main() {
	defaultCmd := flag.NewFlagSet("default", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	importFile := importCmd.String("file", "", "Path to the .xlsx vocabulary file (required)")
	importSheet := importCmd.String("sheet", "", "Sheet name (default: first sheet)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	contentService := service.NewContentService(db, repository.NewWordRepository(), repository.NewLessonRepository(), nil)

	switch os.Args[1] {
	case "default":
		defaultCmd.Parse(os.Args[2:])
		if err := contentService.SeedDefaultContent(); err != nil {
			log.Fatalf("Failed to seed default content: %v", err)
		}
		fmt.Println("Default content seeded")

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			fmt.Println("Error: -file flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		result, err := contentService.ImportVocabularyXLSX(*importFile, *importSheet)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Processed %d rows: %d imported, %d skipped\n", result.TotalProcessed, result.Imported, result.Skipped)
		for _, e := range result.Errors {
			fmt.Printf("  %s\n", e)
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: seed <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  default          Seed the built-in Unit 1 vocabulary, lesson and quiz content")
	fmt.Println("  import -file F   Import vocabulary words from an .xlsx spreadsheet")
}
