package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"careflow/config"
	"careflow/models"
	"careflow/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeVisitReminder, handleVisitReminder(logger))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleVisitReminder(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return err
		}

		logger.Info("Sending visit reminder",
			zap.String("appointment", p.AppointmentID),
			zap.String("email", p.Email))

		if err := sendReminderEmail(p); err != nil {
			logger.Error("Failed to send visit reminder",
				zap.String("appointment", p.AppointmentID),
				zap.Error(err))
			return err
		}
		return nil
	}
}

func sendReminderEmail(p models.ReminderPayload) error {
	cfg := config.AppConfig
	if cfg.SendgridAPIKey == "" {
		return fmt.Errorf("sendgrid not configured")
	}

	from := mail.NewEmail(cfg.ReminderFromName, cfg.ReminderFromEmail)
	to := mail.NewEmail(p.FirstName, p.Email)
	subject := "Your upcoming visit"
	body := fmt.Sprintf("Hi %s, your %s visit is scheduled for %s at %s.",
		p.FirstName, p.VisitType, p.Date, p.Time)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
