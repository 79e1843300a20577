package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trekbooking/pkg/config"
)

// Client talks to the hosted object storage (Supabase Storage REST API).
// Objects live in a single public bucket; reads go straight to the public URL,
// writes and deletes are authenticated with the service key.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	ServiceKey string
	Bucket     string
}

func New(cfg config.StorageConfig) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(cfg.URL, "/"),
		ServiceKey: cfg.ServiceKey,
		Bucket:     cfg.Bucket,
	}
}

func (c *Client) do(ctx context.Context, method, objectPath string, contentType string, body io.Reader) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.BaseURL == "" || c.ServiceKey == "" {
		return fmt.Errorf("missing storage url or service key")
	}

	u := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.BaseURL, c.Bucket, strings.TrimLeft(objectPath, "/"))
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		if len(b) > 0 {
			return fmt.Errorf("storage api error: status=%d body=%s", resp.StatusCode, string(b))
		}
		return fmt.Errorf("storage api error: status=%d", resp.StatusCode)
	}
	return nil
}

// Upload stores an object and returns its public URL.
func (c *Client) Upload(ctx context.Context, objectPath, contentType string, body io.Reader) (string, error) {
	if err := c.do(ctx, http.MethodPost, objectPath, contentType, body); err != nil {
		return "", err
	}
	return c.PublicURL(objectPath), nil
}

func (c *Client) Delete(ctx context.Context, objectPath string) error {
	return c.do(ctx, http.MethodDelete, objectPath, "", nil)
}

func (c *Client) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.BaseURL, c.Bucket, strings.TrimLeft(objectPath, "/"))
}

// ObjectPath extracts the bucket-relative path from a public URL previously
// returned by Upload. Returns false for URLs outside this bucket, e.g. catalog
// rows seeded with external stock images.
func (c *Client) ObjectPath(publicURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", c.BaseURL, c.Bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	p := strings.TrimPrefix(publicURL, prefix)
	if p == "" {
		return "", false
	}
	return p, true
}
