package identity

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The government service exposes a single SOAP 1.1 operation validating a
// (national id, first name, last name, birth year) tuple. It matches names
// case-sensitively against its own records, which are stored uppercase in
// the registry's locale.
const (
	serviceNamespace = "http://tckimlik.nvi.gov.tr/WS"
	soapAction       = serviceNamespace + "/TCKimlikNoDogrula"
)

// Request carries the identity attributes as submitted by the user
type Request struct {
	NationalID string
	FirstName  string
	LastName   string
	BirthYear  int
}

// Verifier validates an identity tuple against the government registry
type Verifier interface {
	Verify(ctx context.Context, req Request) (bool, error)
}

// Config holds identity client settings
type Config struct {
	// Endpoint is the SOAP service URL
	Endpoint string

	// Locale selects the casing rules for name normalization (BCP 47 tag)
	Locale string

	// Timeout bounds a single verification call
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for the identity client
func DefaultConfig() Config {
	return Config{
		Locale:  "tr",
		Timeout: 10 * time.Second,
	}
}

// Client calls the remote verification service
type Client struct {
	endpoint string
	lang     language.Tag
	http     *http.Client
	logger   *slog.Logger
}

// Ensure Client implements Verifier
var _ Verifier = (*Client)(nil)

// New creates an identity client. An unparseable locale falls back to Turkish,
// the registry's own language.
func New(cfg Config, logger *slog.Logger) *Client {
	lang, err := language.Parse(cfg.Locale)
	if err != nil {
		lang = language.Turkish
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultConfig().Timeout
	}

	return &Client{
		endpoint: cfg.Endpoint,
		lang:     lang,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type soapEnvelope struct {
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    soapBody `xml:"Body"`
}

type soapBody struct {
	Verify *verifyRequest `xml:"TCKimlikNoDogrula,omitempty"`
}

type verifyRequest struct {
	XMLName    xml.Name `xml:"http://tckimlik.nvi.gov.tr/WS TCKimlikNoDogrula"`
	NationalID string   `xml:"TCKimlikNo"`
	FirstName  string   `xml:"Ad"`
	LastName   string   `xml:"Soyad"`
	BirthYear  int      `xml:"DogumYili"`
}

type soapResponseEnvelope struct {
	XMLName xml.Name         `xml:"Envelope"`
	Body    soapResponseBody `xml:"Body"`
}

type soapResponseBody struct {
	Response verifyResponse `xml:"TCKimlikNoDogrulaResponse"`
}

type verifyResponse struct {
	Result bool `xml:"TCKimlikNoDogrulaResult"`
}

// Verify submits the tuple to the registry and returns its validity signal.
// Name fields are uppercased with the configured locale's rules before
// submission; the service compares them verbatim.
func (c *Client) Verify(ctx context.Context, req Request) (bool, error) {
	upper := cases.Upper(c.lang)

	envelope := soapEnvelope{
		Body: soapBody{
			Verify: &verifyRequest{
				NationalID: req.NationalID,
				FirstName:  upper.String(req.FirstName),
				LastName:   upper.String(req.LastName),
				BirthYear:  req.BirthYear,
			},
		},
	}

	payload, err := xml.Marshal(envelope)
	if err != nil {
		return false, fmt.Errorf("encoding verification request: %w", err)
	}

	body := append([]byte(xml.Header), payload...)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("building verification request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("SOAPAction", soapAction)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("calling identity service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("reading identity response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	var respEnvelope soapResponseEnvelope
	if err := xml.Unmarshal(respBody, &respEnvelope); err != nil {
		return false, fmt.Errorf("decoding identity response: %w", err)
	}

	result := respEnvelope.Body.Response.Result
	c.logger.Info("identity verification completed", slog.Bool("valid", result))
	return result, nil
}
