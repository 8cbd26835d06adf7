package hnap

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	soapDomain = "http://purenetworks.com/HNAP1/"

	// Private key used to sign requests before a session key has been
	// negotiated. The firmware expects this exact literal.
	defaultPrivateKey = "withoutloginkey"
)

const (
	resultOK        = "OK"
	resultError     = "ERROR"
	resultFailed    = "FAILED"
	resultLockup    = "LOCKUP"
	resultReboot    = "REBOOT"
	resultOKChanged = "OK_CHANGED"
)

// ErrApplicationError is returned when the modem answers HTTP 200 but
// reports ERROR in the action's result field.
var ErrApplicationError = errors.New("modem reported ERROR result")

// hexHmacMD5 returns the uppercase hex HMAC-MD5 of message under key,
// the only digest the HNAP auth scheme uses.
func hexHmacMD5(key, message []byte) string {
	mac := hmac.New(md5.New, key)
	mac.Write(message)
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// sendAction signs and issues one HNAP action and decodes its typed
// reply. The signature covers the current epoch millis and the SOAP
// action URI under the session private key.
func sendAction[T response](ctx context.Context, s *Service, action string, params map[string]string) (T, error) {
	var zero T

	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	auth := hexHmacMD5([]byte(s.privateKey), []byte(millis+soapDomain+action)) + " " + millis

	// The firmware requires the parameter map nested one level under
	// the action name; a flat body is rejected.
	body, err := json.Marshal(map[string]map[string]string{action: params})
	if err != nil {
		return zero, fmt.Errorf("failed to marshal %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return zero, fmt.Errorf("failed to create %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("SOAPAction", soapDomain+action)
	req.Header.Set("HNAP_AUTH", auth)
	req.Header.Set("Cookie", fmt.Sprintf("Secure; uid=%s; PrivateKey=%s", s.cookie, s.privateKey))

	logrus.Debugf("Sending %s to %s", action, s.Endpoint)

	resp, err := s.HttpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return zero, fmt.Errorf("%s returned status %d: %s", action, resp.StatusCode, string(snippet))
	}

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return zero, fmt.Errorf("failed to decode %s reply: %w", action, err)
	}

	raw, ok := envelope[action+"Response"]
	if !ok {
		return zero, fmt.Errorf("%s reply missing %sResponse envelope", action, action)
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("failed to decode %sResponse: %w", action, err)
	}

	if out.Result() == resultError {
		return zero, fmt.Errorf("%s: %w", action, ErrApplicationError)
	}
	return out, nil
}
