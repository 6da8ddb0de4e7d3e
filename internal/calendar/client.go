// Package calendar talks to the Google Calendar API: the one-time OAuth
// authorization of the user's primary calendar and the free/busy lookups
// that feed the slot finder.
package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/dmitrijs2005/coffeechat/internal/common"
	"github.com/dmitrijs2005/coffeechat/internal/logging"
	"github.com/dmitrijs2005/coffeechat/internal/secrets"
	"github.com/dmitrijs2005/coffeechat/internal/slots"
)

// primaryCalendarID is the alias Google resolves to the account's own calendar.
const primaryCalendarID = "primary"

// Credential is an opaque handle to an authorized account. It names the
// keychain item holding the OAuth token; the token itself never leaves
// this package.
type Credential struct {
	Service string
	Account string
}

// newService is swapped in tests to point the client at an httptest server.
var newService = func(ctx context.Context, ts oauth2.TokenSource) (*gcal.Service, error) {
	return gcal.NewService(ctx, option.WithTokenSource(ts))
}

// Client authorizes against Google and queries free/busy data.
// The OAuth token lives in the OS keyring, never on disk.
type Client struct {
	credentialsPath string
	store           secrets.Store
	logger          logging.Logger

	// openBrowser is a seam for tests; defaults to launching the system browser.
	openBrowser func(url string)
}

func New(credentialsPath string, store secrets.Store, logger logging.Logger) *Client {
	c := &Client{
		credentialsPath: credentialsPath,
		store:           store,
		logger:          logger,
	}
	c.openBrowser = func(url string) { launchBrowser(url, logger) }
	return c
}

func (c *Client) config() (*oauth2.Config, error) {
	data, err := os.ReadFile(c.credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", c.credentialsPath, err)
	}
	cfg, err := google.ConfigFromJSON(data, gcal.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return cfg, nil
}

// Authorize runs the installed-app OAuth flow: it listens on a loopback
// port, opens the consent page in the browser and exchanges the returned
// code for a token, which is persisted in the keyring. The returned
// Credential is the handle later fetches present.
func (c *Client) Authorize(ctx context.Context) (Credential, error) {
	cfg, err := c.config()
	if err != nil {
		return Credential{}, err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return Credential{}, fmt.Errorf("loopback listener: %w", err)
	}
	defer ln.Close()

	cfg.RedirectURL = fmt.Sprintf("http://%s/", ln.Addr().String())
	state := uuid.NewString()

	codeCh := make(chan string, 1)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorization received. You can close this window.")
		select {
		case codeCh <- code:
		default:
		}
	})}
	go srv.Serve(ln) //nolint:errcheck
	defer srv.Shutdown(context.Background())

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.logger.Info(ctx, "waiting for OAuth consent", "redirect", cfg.RedirectURL)
	c.openBrowser(authURL)

	var code string
	select {
	case code = <-codeCh:
	case <-ctx.Done():
		return Credential{}, fmt.Errorf("authorization: %w", ctx.Err())
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return Credential{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	if err := c.saveToken(tok); err != nil {
		return Credential{}, err
	}
	return Credential{Service: secrets.ServiceName, Account: secrets.KeyOAuthToken}, nil
}

// Stored returns the credential handle for a previously authorized account,
// if one exists in the keychain.
func (c *Client) Stored() (Credential, bool) {
	if _, err := c.loadToken(); err != nil {
		return Credential{}, false
	}
	return Credential{Service: secrets.ServiceName, Account: secrets.KeyOAuthToken}, true
}

func (c *Client) saveToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := c.store.Set(secrets.KeyOAuthToken, data); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (c *Client) loadToken() (*oauth2.Token, error) {
	data, err := c.store.Get(secrets.KeyOAuthToken)
	if err != nil {
		if errors.Is(err, common.ErrSecretNotFound) {
			return nil, common.ErrNotConnected
		}
		return nil, fmt.Errorf("load token: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &tok, nil
}

// Disconnect removes the stored token.
func (c *Client) Disconnect() error {
	if err := c.store.Delete(secrets.KeyOAuthToken); err != nil &&
		!errors.Is(err, common.ErrSecretNotFound) {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// BusyIntervals queries the free/busy API for the primary calendar over rng.
// Periods the API returns without a start or an end are skipped.
func (c *Client) BusyIntervals(ctx context.Context, cred Credential, rng slots.Interval) ([]slots.Interval, error) {
	if cred.Account == "" {
		return nil, common.ErrNotConnected
	}
	tok, err := c.loadToken()
	if err != nil {
		return nil, err
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	ts := cfg.TokenSource(ctx, tok)
	svc, err := newService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	resp, err := svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: rng.Start.Format(time.RFC3339),
		TimeMax: rng.End.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: primaryCalendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	// Refresh tokens rotate; persist the current one so the next run
	// does not repeat the consent flow.
	if fresh, err := ts.Token(); err == nil && fresh.AccessToken != tok.AccessToken {
		if err := c.saveToken(fresh); err != nil {
			c.logger.Warn(ctx, "could not persist refreshed token", "error", err)
		}
	}

	cal, ok := resp.Calendars[primaryCalendarID]
	if !ok {
		return nil, nil
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("freebusy: %s", cal.Errors[0].Reason)
	}

	busy := make([]slots.Interval, 0, len(cal.Busy))
	for _, p := range cal.Busy {
		if p.Start == "" || p.End == "" {
			c.logger.Debug(ctx, "skipping busy period without start or end")
			continue
		}
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			c.logger.Debug(ctx, "skipping unparsable busy start", "value", p.Start)
			continue
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			c.logger.Debug(ctx, "skipping unparsable busy end", "value", p.End)
			continue
		}
		busy = append(busy, slots.Interval{Start: start, End: end})
	}
	return busy, nil
}
