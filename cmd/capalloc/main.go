package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/cli"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/db"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/repository"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.capalloc/capalloc.db
	dbPath := os.Getenv("CAPALLOC_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".capalloc", "capalloc.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	domainRepo := repository.NewSQLiteDomainRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	approvalRepo := repository.NewSQLiteApprovalRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Optional use case logging to stderr
	var observers []service.UseCaseObserver
	if os.Getenv("CAPALLOC_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	validationSvc := service.NewValidationService(domainRepo, projectRepo, nil, observers...)

	app := &cli.App{
		Settings:   service.NewSettingsService(settingsRepo, uow),
		Domains:    service.NewDomainService(domainRepo, settingsRepo, uow, observers...),
		Projects:   service.NewProjectService(projectRepo, domainRepo, settingsRepo, uow, observers...),
		Portfolio:  service.NewPortfolioService(projectRepo),
		Validation: validationSvc,
		Approvals:  service.NewApprovalService(approvalRepo, domainRepo, validationSvc, uow, observers...),
		Import:     service.NewImportService(settingsRepo, domainRepo, projectRepo, uow, observers...),
	}

	// Detect interactive terminal for form-based entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
