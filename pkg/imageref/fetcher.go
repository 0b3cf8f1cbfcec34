package imageref

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"xeriscape-be/pkg/upstream"

	"github.com/patrickmn/go-cache"
)

// MaxFetchBytes bounds a single remote image download.
const MaxFetchBytes = 20 << 20

// ErrPrivateHost is returned for URLs whose host is loopback, link-local, private or unspecified.
var ErrPrivateHost = errors.New("image host is not publicly routable")

// Fetcher downloads remote images and keeps them briefly so a design exported to PDF
// right after a breakdown does not download the same result twice.
type Fetcher struct {
	client       *http.Client
	cache        *cache.Cache
	maxBytes     int64
	allowPrivate bool
	lookup       func(ctx context.Context, host string) ([]net.IPAddr, error)
}

func NewFetcher(client *http.Client, ttl time.Duration) *Fetcher {
	if client == nil {
		client = upstream.NewHTTPClient(60 * time.Second)
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Fetcher{
		client:   client,
		cache:    cache.New(ttl, 2*ttl),
		maxBytes: MaxFetchBytes,
		lookup:   net.DefaultResolver.LookupIPAddr,
	}
}

// AllowPrivateHosts lets the fetcher download from loopback and private networks.
func (f *Fetcher) AllowPrivateHosts() *Fetcher {
	f.allowPrivate = true
	return f
}

func (f *Fetcher) checkHost(ctx context.Context, rawURL string) error {
	if f.allowPrivate {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}

	host := u.Hostname()
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = append(ips, ip)
	} else {
		addrs, err := f.lookup(ctx, host)
		if err != nil {
			return fmt.Errorf("failed to resolve image host %s: %w", host, err)
		}
		for _, a := range addrs {
			ips = append(ips, a.IP)
		}
	}

	for _, ip := range ips {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
			ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return fmt.Errorf("%w: %s", ErrPrivateHost, host)
		}
	}
	return nil
}

// Fetch downloads url and returns it as an Image.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Image, error) {
	if x, found := f.cache.Get(url); found {
		return x.(*Image), nil
	}

	if err := f.checkHost(ctx, url); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}

	body, err := upstream.DoLimited(f.client, "image host", req, f.maxBytes)
	if err != nil {
		return nil, err
	}

	img, err := FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", upstream.Truncate(url, 80), err)
	}

	f.cache.Set(url, img, cache.DefaultExpiration)
	return img, nil
}

// Resolve turns any accepted reference form (data URL, bare base64, http(s) URL) into an Image.
func (f *Fetcher) Resolve(ctx context.Context, ref string) (*Image, error) {
	if IsRemote(ref) {
		return f.Fetch(ctx, ref)
	}
	return Decode(ref)
}
