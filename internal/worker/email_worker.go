package worker

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/adamcernik/biketime-public-sub000/internal/infra"
)

// EmailPayload is one outbound report email.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailWorker delivers report emails through the configured SMTP relay.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Handle(_ context.Context, job EmailPayload) error {
	if err := w.mailer.Send(job.To, job.Subject, job.Body); err != nil {
		return err
	}
	log.Info().Str("to", job.To).Str("subject", job.Subject).Msg("report email sent")
	return nil
}
