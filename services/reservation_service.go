package services

import (
	"os"
	"time"

	"carrental-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReservationService owns the scheduled housekeeping around reservations:
// closing accepted reservations whose rental period has ended, and sending
// pickup reminders the day before a rental starts.
type ReservationService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReservationService(db *gorm.DB) *ReservationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReservationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReservationService) StartScheduler() {
	c := cron.New()

	// Close out finished rentals every day at 01:00
	c.AddFunc("0 1 * * *", s.CloseFinishedReservations)

	// Pickup reminders go out at 09:00
	c.AddFunc("0 9 * * *", s.SendPickupReminders)

	c.Start()
	logrus.Info("Reservation scheduler started")
}

// CloseFinishedReservations moves accepted reservations whose end date has
// passed to terminee. This is the only place a status changes outside the
// operator workflow, and it follows the same legal edge (acceptee -> terminee).
func (s *ReservationService) CloseFinishedReservations() {
	cutoff := time.Now()

	var finished []models.Reservation
	if err := s.db.Where("statut = ? AND date_fin < ?", models.StatusAcceptee, cutoff).
		Find(&finished).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch finished reservations")
		return
	}

	for _, r := range finished {
		if err := s.db.Model(&models.Reservation{}).
			Where("id = ?", r.ID).
			Update("statut", models.StatusTerminee).Error; err != nil {
			logrus.WithError(err).WithField("reservation", r.ID).Error("Failed to close reservation")
			continue
		}
		logrus.WithField("reservation", r.ID).Info("Reservation closed")
	}

	if len(finished) > 0 {
		logrus.WithField("count", len(finished)).Info("Finished reservations closed")
	}
}

// SendPickupReminders texts clients whose accepted rental starts tomorrow.
// Without Twilio credentials the sweep only logs what it would have sent.
func (s *ReservationService) SendPickupReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var reservations []models.Reservation
	if err := s.db.Preload("Client").Preload("Voiture").
		Where("statut = ? AND date_debut >= ? AND date_debut < ?", models.StatusAcceptee, dayStart, dayEnd).
		Find(&reservations).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch tomorrow's reservations")
		return
	}

	for _, r := range reservations {
		if r.Client == nil || r.Client.Telephone == "" {
			logrus.WithField("reservation", r.ID).Warn("No client phone, reminder skipped")
			continue
		}

		message := "Bonjour " + r.Client.Prenom + ", votre location"
		if r.Voiture != nil {
			message += " (" + r.Voiture.Marque + " " + r.Voiture.Modele + ")"
		}
		message += " commence demain. À bientôt!"

		if os.Getenv("TWILIO_ACCOUNT_SID") == "" {
			logrus.WithFields(logrus.Fields{
				"reservation": r.ID,
				"to":          r.Client.Telephone,
			}).Info("Twilio not configured, reminder logged only")
			continue
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(r.Client.Telephone)
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		params.SetBody(message)

		resp, err := s.client.Api.CreateMessage(params)
		if err != nil {
			logrus.WithError(err).WithField("reservation", r.ID).Error("Failed to send pickup reminder")
			continue
		}
		if resp.Sid != nil {
			logrus.WithFields(logrus.Fields{
				"reservation": r.ID,
				"sid":         *resp.Sid,
			}).Info("Pickup reminder sent")
		}
	}
}
