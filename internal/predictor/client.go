// Package predictor talks to the external rent and sale prediction services.
package predictor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/unionprice/union-price-api/internal/model"
)

const maxResponseBytes = 10 << 20

var (
	ErrUnexpectedStatus = errors.New("predictor: unexpected status")
	ErrResponseTooLarge = errors.New("predictor: response too large")
)

// Reply is the prediction service's response, kept verbatim.
type Reply struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

type Client struct {
	url    string
	client *http.Client
}

// NewClient returns a client posting to url. A nil hc means http.DefaultClient.
func NewClient(url string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		url:    url,
		client: hc,
	}
}

func (c *Client) URL() string {
	return c.url
}

// Predict posts the request as multipart form data using the field names the
// prediction services expect and returns their reply.
func (c *Client) Predict(ctx context.Context, req model.PriceRequest) (*Reply, error) {
	body, contentType, err := encodeForm(req)
	if err != nil {
		return nil, fmt.Errorf("to encode form body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("to get a response from predictor: %w", err)
	}
	defer res.Body.Close()

	// one extra byte tells a full body from a cut one
	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("to read predictor response: %w", err)
	}
	if len(data) > maxResponseBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, maxResponseBytes)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, res.StatusCode, http.StatusText(res.StatusCode))
	}

	return &Reply{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

func encodeForm(req model.PriceRequest) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct{ key, val string }{
		{"house-type", req.HouseType},
		{"locations", req.Location},
		{"bedroom", strconv.Itoa(req.Bedrooms)},
		{"bathroom", strconv.Itoa(req.Bathrooms)},
		{"toilet", strconv.Itoa(req.Toilets)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.val); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
