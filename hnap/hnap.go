// Package hnap implements the Arris S33's HNAP control protocol: the
// challenge-response login, per-request HMAC-MD5 signing, and the typed
// decoding of the composite status actions.
package hnap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	config "github.com/insightfinder/arris-agent/configs"
	"github.com/sirupsen/logrus"
)

func NewService(cfg config.ModemConfig) *Service {
	// Consumer modems ship self-signed certificates, so verification is
	// an operator toggle.
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifySSL,
		},
	}

	client := &http.Client{
		Transport: tr,
		Timeout:   30 * time.Second,
	}

	endpoint := fmt.Sprintf("%s://%s:%d/HNAP1/", cfg.Scheme, cfg.Host, cfg.Port)

	return &Service{
		Config:     cfg,
		HttpClient: client,
		Endpoint:   endpoint,
		privateKey: defaultPrivateKey,
	}
}

// Login performs the two-phase HNAP login. Phase one requests a
// challenge and public key; phase two proves possession of the password
// by answering with HMAC-MD5 digests derived from them. Any failure is
// terminal for the session; no retry or re-login path exists.
func (s *Service) Login(ctx context.Context, username, password string) error {
	params := map[string]string{
		"Action":   "request",
		"Username": username,
	}

	challenge, err := sendAction[LoginResponse](ctx, s, "Login", params)
	if err != nil {
		return fmt.Errorf("challenge request failed: %w", err)
	}
	if challenge.Challenge == "" || challenge.PublicKey == "" {
		return fmt.Errorf("challenge reply missing challenge or public key")
	}

	return s.loginWithChallenge(ctx, username, password, challenge)
}

func (s *Service) loginWithChallenge(ctx context.Context, username, password string, challenge LoginResponse) error {
	// The session key is HMAC(public key + password, challenge); it
	// signs everything from here on, including the phase-two login.
	s.cookie = challenge.Cookie
	s.privateKey = hexHmacMD5([]byte(challenge.PublicKey+password), []byte(challenge.Challenge))

	loginPassword := hexHmacMD5([]byte(s.privateKey), []byte(challenge.Challenge))

	params := map[string]string{
		"Action":        "login",
		"Username":      username,
		"LoginPassword": loginPassword,
		"Captcha":       "",
		"PrivateLogin":  "LoginPassword",
	}

	login, err := sendAction[LoginWithChallengeResponse](ctx, s, "Login", params)
	if err != nil {
		return fmt.Errorf("credentialed login failed: %w", err)
	}

	switch login.Result() {
	case resultOK:
		s.authenticated = true
		logrus.Debug("Authenticated with modem, session key negotiated")
		return nil
	case resultFailed:
		return fmt.Errorf("login rejected: bad username or password")
	case resultLockup:
		return fmt.Errorf("login rejected: maximum attempts reached, modem is rate limiting")
	case resultReboot:
		return fmt.Errorf("login rejected: account locked, modem reboot required")
	case resultOKChanged:
		return fmt.Errorf("login rejected: modem requests a login settings reset")
	default:
		return fmt.Errorf("login rejected: unrecognized result %q", login.Result())
	}
}

// Authenticated reports whether the two-phase login has completed.
func (s *Service) Authenticated() bool {
	return s.authenticated
}
