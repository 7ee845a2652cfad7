package eams

import (
	"context"
	"fmt"
	"freeroom/lib/restyutil"
	"freeroom/lib/telemetry"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

var tracer = telemetry.Tracer("freeroom.lib.scrapers.eams")

var (
	ErrLoginFailed   = fmt.Errorf("failed to login to the portal, check the username and password")
	ErrSaltNotFound  = fmt.Errorf("could not find the password salt on the login page")
	ErrNoResultTable = fmt.Errorf("no result table in the free room search response")
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	// ex. https://jwxt.example.edu.cn/eams
	BaseUrl string
	// defaults to 30 seconds
	Timeout time.Duration
	// pause between fetching the salt and posting the credentials
	LoginDelay time.Duration
	// routes requests through the cloudflare bypass transport
	CloudflareBypass bool
	// receives request dumps while debug logging is on, may be nil
	Dump restyutil.InstrumentOutput
}

// Client is a logged-in (or about to be) session with the portal. Each
// client has its own cookie jar, sessions are never shared.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	loginDelay time.Duration
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("portal base url '%s' must be absolute", opts.BaseUrl)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", defaultUserAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "freeroom.lib.scrapers.eams/http")
	restyutil.InstrumentClient(client, opts.Dump)

	return &Client{
		BaseUrl:    baseUrl,
		Http:       client,
		loginDelay: opts.LoginDelay,
	}, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
