package storage

import "testing"

func TestObjectPathRoundTrip(t *testing.T) {
	c := &Client{BaseURL: "https://demo.supabase.co", Bucket: "catalog-images"}

	url := c.PublicURL("packages/abc.jpg")
	if url != "https://demo.supabase.co/storage/v1/object/public/catalog-images/packages/abc.jpg" {
		t.Fatalf("unexpected public url: %s", url)
	}

	p, ok := c.ObjectPath(url)
	if !ok || p != "packages/abc.jpg" {
		t.Fatalf("expected packages/abc.jpg, got %q ok=%v", p, ok)
	}
}

func TestObjectPathRejectsForeignURL(t *testing.T) {
	c := &Client{BaseURL: "https://demo.supabase.co", Bucket: "catalog-images"}

	if _, ok := c.ObjectPath("https://images.example.com/stock/trek.jpg"); ok {
		t.Fatalf("expected foreign url to be rejected")
	}
}
