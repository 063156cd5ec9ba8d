package badge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

// ErrUpstream marks a failed crest fetch, as opposed to a business-rule
// refusal from the room engine ("hint not available").
var ErrUpstream = errors.New("failed to fetch crest")

const (
	userAgent = "StandingsDraft/1.0"

	// Fixed obfuscation constants: enough blur to hide the club name while
	// keeping colors and shape guessable.
	blurSigma          = 5.0
	brightnessPercent  = -5.0
	maxCrestBytes      = 4 << 20
	defaultFetchWindow = 10 * time.Second
)

// Proxy fetches a team crest and returns a blurred PNG rendition. Stateless;
// which crest to blur is the room engine's decision.
type Proxy struct {
	client *http.Client
}

func NewProxy() *Proxy {
	return &Proxy{
		client: &http.Client{Timeout: defaultFetchWindow},
	}
}

// BlurredCrest downloads the crest at logoURL and returns it blurred and
// slightly darkened, re-encoded as PNG.
func (p *Proxy) BlurredCrest(ctx context.Context, logoURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create crest request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxCrestBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode crest image: %w", err)
	}

	blurred := imaging.Blur(img, blurSigma)
	blurred = imaging.AdjustBrightness(blurred, brightnessPercent)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, blurred, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode blurred crest: %w", err)
	}
	return buf.Bytes(), nil
}
