// Package webcam probes the town webcam restream and renders the
// Bulgarian one-line observation the analyzer prompt embeds.
package webcam

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultStreamURL is the Obzor webcam restream page.
const DefaultStreamURL = "https://restream.obzorweather.com/ad508abf-ee51-4e32-b223-70c463b05587.html"

// Observation is the result of a single probe.
type Observation struct {
	// Text is the Bulgarian description embedded into the prompt and
	// echoed back in the report.
	Text string
	// CapturedAt is when the probe ran, in the town's timezone.
	CapturedAt time.Time
	// Reachable reports whether the stream answered 200.
	Reachable bool
}

// Config holds webcam observer settings.
type Config struct {
	StreamURL      string
	TimeoutSeconds int
	Timezone       string
}

// Validate fills in defaults. All fields are optional.
func (c *Config) Validate() error {
	if c.StreamURL == "" {
		c.StreamURL = DefaultStreamURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/Sofia"
	}
	return nil
}

// Observer probes the webcam stream for reachability.
type Observer struct {
	config     *Config
	httpClient *http.Client
	zone       *time.Location
	now        func() time.Time
}

// NewObserver creates a webcam observer with the given configuration.
func NewObserver(config *Config) (*Observer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	zone, err := time.LoadLocation(config.Timezone)
	if err != nil {
		zone = time.Local
	}

	return &Observer{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		zone: zone,
		now:  time.Now,
	}, nil
}

// Observe probes the stream and returns a timestamped description.
// Failures never surface as errors: the narration simply notes that the
// live picture is unavailable right now.
func (o *Observer) Observe(ctx context.Context) Observation {
	capturedAt := o.now().In(o.zone)
	stamp := capturedAt.Format("15:04")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.config.StreamURL, nil)
	if err != nil {
		return Observation{
			Text:       transportErrorText(stamp),
			CapturedAt: capturedAt,
		}
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return Observation{
			Text:       transportErrorText(stamp),
			CapturedAt: capturedAt,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Observation{
			Text:       unreachableText(stamp),
			CapturedAt: capturedAt,
		}
	}

	return Observation{
		Text:       reachableText(stamp),
		CapturedAt: capturedAt,
		Reachable:  true,
	}
}

func reachableText(stamp string) string {
	return fmt.Sprintf("текущия кадър е заснет в Обзор (древният Хелиополис — Градът на Слънцето) в %s ч.", stamp)
}

func unreachableText(stamp string) string {
	return reachableText(stamp) + ", но за съжаление в момента нямаме достъп до видео потока"
}

func transportErrorText(stamp string) string {
	return reachableText(stamp) + ", но възникна проблем при анализа на видео потока"
}
