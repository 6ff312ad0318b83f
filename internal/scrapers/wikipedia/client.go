package wikipedia

import (
	"context"
	"fmt"
	"time"
	"worldgdp/internal/gdp"
	"worldgdp/internal/telemetry"
	"worldgdp/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	report_client_fetch = "client.fetch"
)

type ClientOptions struct {
	// Timeout bounds the whole request, zero means no timeout.
	Timeout time.Duration
	// UserAgent overrides the default browser user agent.
	UserAgent string
	// Output receives every request/response pair when non-nil.
	Output restyutil.InstrumentOutput
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Client fetches the raw markup of the source page.
type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) Client {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	telemetry.InstrumentResty(client, tel)
	restyutil.InstrumentClient(client, opts.Output)

	return Client{
		http: client,
		tel:  tel,
	}
}

// Fetch performs a GET on link and returns the body as text. Transport
// failures and non-2xx responses are reported as gdp.ErrNetwork.
func (c Client) Fetch(ctx context.Context, link string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, err, link)
		return "", fmt.Errorf("%w: fetch %s: %w", gdp.ErrNetwork, link, err)
	}
	if res.IsError() {
		c.tel.ReportBroken(report_client_fetch, res.Status(), link)
		return "", fmt.Errorf("%w: fetch %s: unexpected status %s", gdp.ErrNetwork, link, res.Status())
	}

	c.tel.ReportDebug("fetched page", link, len(res.Body()))
	return string(res.Body()), nil
}
