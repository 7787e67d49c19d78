package background

import (
	"context"
	"log"
	"time"

	"stockroom/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages background jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	alertSvc  *jobs.InventoryAlertService
	jobJobs   map[string]gocron.Job
}

func NewJobScheduler(alertSvc *jobs.InventoryAlertService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
		jobJobs:   make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Low stock scan - every 30 minutes
	alertsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.processLowStockAlerts),
		gocron.WithName("low-stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create low stock alerts job: %v", err)
	} else {
		js.jobJobs["low-stock-alerts"] = alertsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

func (js *JobScheduler) processLowStockAlerts() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	alerts, err := js.alertSvc.CheckLowStock(ctx)
	if err != nil {
		return err
	}
	js.alertSvc.LogLowStockAlerts(alerts)
	return nil
}
