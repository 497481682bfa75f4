package adapters

import (
	"context"
	"fmt"
	"time"

	"matson-tracker/internal/core/config"
	"matson-tracker/internal/core/logger"
	"matson-tracker/internal/core/proxy"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

const (
	fetchTimeout = 60 * time.Second
	userAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	bookingInputSelector    = "#track-number-top-booking"
	trackButtonSelector     = "#track-booking-number"
	trackingDetailsSelector = "#shipmentTrackingDetails"
)

// MatsonAdapter retrieves the raw tracking-page text for one booking using
// browser automation. The tracking page renders its details client-side, so a
// plain HTTP GET is not enough.
type MatsonAdapter struct {
	trackingURL   string
	bookingNumber string
	proxy         proxy.Settings
	logger        *zap.Logger
}

// NewMatsonAdapter creates a new MatsonAdapter for the given tracking config
// and proxy settings.
func NewMatsonAdapter(cfg config.TrackingConfig, proxySettings proxy.Settings) *MatsonAdapter {
	return &MatsonAdapter{
		trackingURL:   cfg.URL,
		bookingNumber: cfg.BookingNumber,
		proxy:         proxySettings,
		logger:        logger.Get(),
	}
}

// Fetch navigates to the tracking page, submits the booking number and returns
// the text content of the shipment details panel. Any failure, including the
// timeout, is returned as an error; the caller treats both identically.
func (a *MatsonAdapter) Fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	a.logger.Debug("Launching browser...",
		zap.String("booking_number", a.bookingNumber),
		zap.Bool("proxy_enabled", a.proxy.HasProxy()),
	)

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)

	// Chromium cannot take proxy credentials on the command line, so an
	// authenticated upstream is reached through a local forwarding proxy.
	if a.proxy.HasProxy() {
		proxyAddr := a.proxy.HostPort()
		if a.proxy.Username != "" && a.proxy.Password != "" {
			forwarder, err := proxy.NewForwardingProxy(a.proxy.FullURL())
			if err != nil {
				return "", fmt.Errorf("failed to create proxy forwarder: %w", err)
			}
			proxyAddr, err = forwarder.Start(ctx)
			if err != nil {
				return "", fmt.Errorf("failed to start proxy forwarder: %w", err)
			}
			defer forwarder.Stop()
		}
		l = l.Proxy(proxyAddr)
	}

	u, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	var details string
	err = rod.Try(func() {
		page := browser.MustPage()
		page.MustSetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent})
		page.MustNavigate(a.trackingURL)
		page.MustWaitLoad()

		input := page.MustElement(bookingInputSelector)
		input.MustClick()
		input.MustInput(a.bookingNumber)
		page.MustElement(trackButtonSelector).MustClick()

		details = page.MustElement(trackingDetailsSelector).MustText()
	})
	if err != nil {
		return "", fmt.Errorf("failed to scrape tracking details: %w", err)
	}

	a.logger.Debug("Tracking details fetched", zap.Int("length", len(details)))
	return details, nil
}
