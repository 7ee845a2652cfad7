package eams

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"freeroom/lib/htmlutil"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// the login page hashes the password client side with a per-session salt:
// CryptoJS.SHA1('<salt>-' + form['password'].value)
var saltRegex = regexp.MustCompile(`CryptoJS\.SHA1\('([^']+)-' \+ form\['password'\]\.value\)`)

// HashPassword reproduces the login page's client side hashing.
func HashPassword(salt, password string) string {
	sum := sha1.Sum([]byte(salt + "-" + password))
	return hex.EncodeToString(sum[:])
}

func (c *Client) getSalt(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "getSalt")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/loginExt.action")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login page")
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse login page")
		return "", err
	}

	salt, ok := htmlutil.FindInScripts(doc, saltRegex)
	if !ok {
		span.SetStatus(codes.Error, ErrSaltNotFound.Error())
		return "", ErrSaltNotFound
	}
	return salt, nil
}

// Login authenticates the session, a wrong username or password yields
// ErrLoginFailed.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	salt, err := c.getSalt(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get salt")
		return err
	}
	err = sleep(ctx, c.loginDelay)
	if err != nil {
		return err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": username,
			"password": HashPassword(salt, password),
		}).
		Post("/loginExt.action")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	// a successful login redirects to the home page
	final := res.RawResponse.Request.URL
	if !strings.Contains(final.Path, "homeExt.action") {
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		return ErrLoginFailed
	}
	return nil
}
