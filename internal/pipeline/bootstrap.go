package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// FetchError reports that the bootstrap source could not be retrieved. It is
// never fatal: the application starts with an empty collection instead.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// BootstrapConfig names the well-known default source loaded on first start.
type BootstrapConfig struct {
	// URL fetches the source over HTTP when set; otherwise Path is read
	// from local disk.
	URL  string
	Path string
	// Delimiter of the bootstrap file. The stock base-items.csv is
	// semicolon-delimited.
	Delimiter rune
}

// Bootstrap loads the default source into an empty store. It is skipped when
// persisted state was restored. Fetch and parse failures leave the store
// empty and are reported so the caller can log the degraded start; they do
// not stop the process.
func (p *Pipeline) Bootstrap(ctx context.Context, cfg BootstrapConfig) error {
	data, source, err := fetchBootstrap(ctx, cfg)
	if err != nil {
		return err
	}

	fileName := filepath.Base(source)
	batch, err := p.Upload(ctx, fileName, data, cfg.Delimiter)
	if err != nil {
		return fmt.Errorf("bootstrap %s: %w", fileName, err)
	}

	slog.Info("bootstrap source loaded", "file", fileName, "records", batch.RecordCount)
	return nil
}

func fetchBootstrap(ctx context.Context, cfg BootstrapConfig) (data []byte, source string, err error) {
	if cfg.URL != "" {
		data, err = fetchURL(ctx, cfg.URL)
		return data, cfg.URL, err
	}

	data, err = os.ReadFile(cfg.Path)
	if err != nil {
		return nil, cfg.Path, &FetchError{Source: cfg.Path, Err: err}
	}
	return data, cfg.Path, nil
}

func fetchURL(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Source: url, Err: err}
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, &FetchError{Source: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: url, Err: err}
	}
	return data, nil
}
