package adapters

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/smtp"
	"time"

	"matson-tracker/internal/core/config"
	"matson-tracker/internal/core/httpclient"
	"matson-tracker/internal/core/logger"
	"matson-tracker/internal/features/status/domain"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	subjectStatusUpdate  = "Matson Tracker - Status Update"
	subjectCurrentStatus = "Matson Tracker - Current Status"
	subjectTest          = "Matson Tracker - Test Notification"

	vehicleImageCID = "vehicle-photo"
)

// emailData is the template context shared by all notification bodies.
type emailData struct {
	BookingNumber  string
	PreviousStatus string
	CurrentStatus  string
	Status         string
	Location       string
	Vessel         string
	LastUpdate     string
	Time           string
	ImageSrc       string
	TrackingURL    string
}

// SMTPNotifier implements ports.Notifier over SMTP with TLS. Sends are
// fire-and-forget: failures are logged, never returned, never retried.
type SMTPNotifier struct {
	cfg           config.EmailConfig
	bookingNumber string
	trackingURL   string
	templates     *template.Template
	imageData     []byte
	logger        *zap.Logger
}

// NewSMTPNotifier creates a new SMTPNotifier. The vehicle photo is downloaded
// once at construction and attached inline to every email; if the download
// fails, the templates fall back to referencing the remote URL.
func NewSMTPNotifier(cfg config.EmailConfig, tracking config.TrackingConfig) *SMTPNotifier {
	n := &SMTPNotifier{
		cfg:           cfg,
		bookingNumber: tracking.BookingNumber,
		trackingURL:   tracking.URL,
		templates:     template.Must(template.ParseFS(templateFS, "templates/*.tmpl")),
		logger:        logger.Get(),
	}
	n.imageData = n.downloadVehicleImage()
	return n
}

// downloadVehicleImage fetches the photo embedded in notifications. Best-effort.
func (n *SMTPNotifier) downloadVehicleImage() []byte {
	client := httpclient.NewClient(10 * time.Second)

	resp, err := client.Get(n.cfg.VehicleImageURL)
	if err != nil {
		n.logger.Warn("Failed to download vehicle image", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.logger.Warn("Vehicle image download returned non-OK status",
			zap.Int("status_code", resp.StatusCode))
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		n.logger.Warn("Failed to read vehicle image body", zap.Error(err))
		return nil
	}
	return data
}

// imageSrc returns the src attribute for the vehicle photo in templates.
func (n *SMTPNotifier) imageSrc() string {
	if n.imageData != nil {
		return "cid:" + vehicleImageCID
	}
	return n.cfg.VehicleImageURL
}

// SendStatusUpdate sends the previous-vs-current status notification.
func (n *SMTPNotifier) SendStatusUpdate(ctx context.Context, decision domain.NotificationDecision, record domain.StatusRecord) {
	n.send("status_update.html.tmpl", subjectStatusUpdate, emailData{
		BookingNumber:  n.bookingNumber,
		PreviousStatus: decision.PreviousStatus,
		CurrentStatus:  decision.CurrentStatus,
		Location:       record.Location,
		Vessel:         record.Vessel,
		LastUpdate:     record.LastUpdate,
		ImageSrc:       n.imageSrc(),
		TrackingURL:    n.trackingURL,
	})
}

// SendCurrentStatus sends the plain current-status notification.
func (n *SMTPNotifier) SendCurrentStatus(ctx context.Context, record domain.StatusRecord) {
	n.send("current_status.html.tmpl", subjectCurrentStatus, emailData{
		BookingNumber: n.bookingNumber,
		Status:        record.Status,
		Location:      record.Location,
		Vessel:        record.Vessel,
		LastUpdate:    record.LastUpdate,
		ImageSrc:      n.imageSrc(),
		TrackingURL:   n.trackingURL,
	})
}

// SendTest sends a static test notification.
func (n *SMTPNotifier) SendTest(ctx context.Context) {
	n.send("test_notification.html.tmpl", subjectTest, emailData{
		BookingNumber: n.bookingNumber,
		Time:          time.Now().Format("2006-01-02 15:04:05"),
		ImageSrc:      n.imageSrc(),
		TrackingURL:   n.trackingURL,
	})
}

// send renders the named template and delivers it over SMTP with TLS.
func (n *SMTPNotifier) send(templateName, subject string, data emailData) {
	var body bytes.Buffer
	if err := n.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		n.logger.Error("Failed to render notification template",
			zap.String("template", templateName),
			zap.Error(err),
		)
		return
	}

	e := email.NewEmail()
	e.From = n.cfg.Sender
	e.To = []string{n.cfg.Recipient}
	e.Subject = subject
	e.HTML = body.Bytes()

	if n.imageData != nil {
		att, err := e.Attach(bytes.NewReader(n.imageData), "vehicle.png", "image/png")
		if err != nil {
			n.logger.Warn("Failed to attach vehicle image", zap.Error(err))
		} else {
			att.HTMLRelated = true
			att.Header.Set("Content-ID", fmt.Sprintf("<%s>", vehicleImageCID))
		}
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.Sender, n.cfg.Password, n.cfg.SMTPHost)

	if err := e.SendWithTLS(addr, auth, &tls.Config{ServerName: n.cfg.SMTPHost}); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return
	}

	n.logger.Info("Notification sent", zap.String("subject", subject))
}
