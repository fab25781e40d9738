package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/clubstack/membership-backend-go/internal/config"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	appHTTP "github.com/clubstack/membership-backend-go/internal/handler/http"
	"github.com/clubstack/membership-backend-go/internal/pkg/cron"
	"github.com/clubstack/membership-backend-go/internal/pkg/database"
	"github.com/clubstack/membership-backend-go/internal/pkg/email"
	"github.com/clubstack/membership-backend-go/internal/pkg/groups"
	"github.com/clubstack/membership-backend-go/internal/repository/postgresql"
	lifecycleService "github.com/clubstack/membership-backend-go/internal/service/lifecycle"
	membersService "github.com/clubstack/membership-backend-go/internal/service/members"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	specs, err := schedule.LoadSpecTable(cfg.Engine.ActionSpecsPath)
	if err != nil {
		log.Fatal("Error loading action specs: ", err)
	}

	memberRepo := postgresql.NewMemberRepository(db)
	migratorRepo := postgresql.NewMigratorRepository(db)
	transactionRepo := postgresql.NewTransactionRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)

	mailer := email.NewMailer(cfg.SMTP)
	groupsClient := groups.NewClient(cfg.Groups)

	lifecycleSvc := lifecycleService.NewService(
		db,
		memberRepo,
		migratorRepo,
		transactionRepo,
		scheduleRepo,
		specs,
		cfg.Groups.Emails,
		mailer,
		groupsClient,
		time.Now,
	)
	memberSvc := membersService.NewMemberService(memberRepo, scheduleRepo)

	scheduler := cron.NewScheduler()
	cron.NewLifecycleJobs(lifecycleSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	lifecycleHandler := appHTTP.NewLifecycleHandler(lifecycleSvc, scheduleRepo)
	memberHandler := appHTTP.NewMemberHandler(memberSvc)

	router := appHTTP.NewRouter(cfg.App.Env, lifecycleHandler, memberHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
