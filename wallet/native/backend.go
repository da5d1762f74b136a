package native

import (
	"context"
	"net/url"

	"github.com/gxchain/gxwallet/prototype"
	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"
)

const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"

	// iOS hosts older than this url-encode the wallets payload
	legacyEncodingBelow = "2.2.4"
)

// Host executes a call on the embedding app, the way a webview plugin bridge does.
type Host interface {
	Exec(ctx context.Context, plugin, action string, args ...string) (string, error)
}

// Backend is the credential store of the embedding host.
type Backend interface {
	Platform() string
	IsNative() bool
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// GetWallets reads a wallet list payload and undoes any host specific encoding
	GetWallets(ctx context.Context, key string) (string, error)
}

// Select picks the backend for platform once at startup.
func Select(platform string, host Host, hostVersion string) (Backend, error) {
	switch platform {
	case "", PlatformWeb:
		return webBackend{}, nil
	case PlatformIOS:
		if host == nil {
			return nil, errors.Wrap(prototype.ErrNativeBridge, "ios backend needs a host")
		}
		legacy, err := isLegacyHost(hostVersion)
		if err != nil {
			return nil, err
		}
		return &iosBackend{bridge: bridge{host: host, plugin: "KV"}, legacy: legacy}, nil
	case PlatformAndroid:
		if host == nil {
			return nil, errors.Wrap(prototype.ErrNativeBridge, "android backend needs a host")
		}
		return &bridge{host: host, plugin: "AppConfig", platform: PlatformAndroid}, nil
	}
	return nil, errors.Errorf("unknown platform %q", platform)
}

func isLegacyHost(hostVersion string) (bool, error) {
	if hostVersion == "" {
		return false, nil
	}
	v, err := version.NewVersion(hostVersion)
	if err != nil {
		return false, errors.Wrapf(err, "bad host version %q", hostVersion)
	}
	return v.LessThan(version.Must(version.NewVersion(legacyEncodingBelow))), nil
}

type bridge struct {
	host     Host
	plugin   string
	platform string
}

func (b *bridge) Platform() string {
	return b.platform
}

func (b *bridge) IsNative() bool {
	return true
}

func (b *bridge) Get(ctx context.Context, key string) (string, error) {
	v, err := b.host.Exec(ctx, b.plugin, "get", key)
	if err != nil {
		return "", errors.Wrapf(prototype.ErrNativeBridge, "%s get %s: %v", b.plugin, key, err)
	}
	return v, nil
}

func (b *bridge) Set(ctx context.Context, key, value string) error {
	if _, err := b.host.Exec(ctx, b.plugin, "set", key, value); err != nil {
		return errors.Wrapf(prototype.ErrNativeBridge, "%s set %s: %v", b.plugin, key, err)
	}
	return nil
}

func (b *bridge) GetWallets(ctx context.Context, key string) (string, error) {
	v, err := b.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "[]", nil
	}
	return v, nil
}

type iosBackend struct {
	bridge
	legacy bool
}

func (b *iosBackend) Platform() string {
	return PlatformIOS
}

func (b *iosBackend) GetWallets(ctx context.Context, key string) (string, error) {
	v, err := b.bridge.GetWallets(ctx, key)
	if err != nil || !b.legacy {
		return v, err
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", errors.Wrapf(prototype.ErrNativeBridge, "decode legacy payload: %v", err)
	}
	return decoded, nil
}

// webBackend has no native store behind it
type webBackend struct{}

func (webBackend) Platform() string { return PlatformWeb }

func (webBackend) IsNative() bool { return false }

func (webBackend) Get(context.Context, string) (string, error) { return "", nil }

func (webBackend) Set(context.Context, string, string) error { return nil }

func (webBackend) GetWallets(context.Context, string) (string, error) { return "[]", nil }
