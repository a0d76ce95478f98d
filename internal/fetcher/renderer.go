package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"html-tag-names/internal/config"
	"html-tag-names/internal/observability"
)

// Renderer получает HTML страницы после выполнения скриптов в headless Chrome.
// Браузер запускается лениво при первом запросе и общий для всех источников.
type Renderer struct {
	cfg      *config.Config
	logger   *observability.Logger
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func NewRenderer(cfg *config.Config, logger *observability.Logger) *Renderer {
	return &Renderer{
		cfg:    cfg,
		logger: logger,
	}
}

func (r *Renderer) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	if err := checkURL(urlStr); err != nil {
		return nil, err
	}

	browser, err := r.connect()
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: err}
	}

	r.logger.Debug("Rendering source", "url", urlStr)

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: urlStr})
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("failed to open page: %w", err)}
	}
	defer func() {
		if err := page.Close(); err != nil {
			r.logger.Warn("Failed to close page", "url", urlStr, "error", err.Error())
		}
	}()

	// таймаут только на загрузку, Close выполняется с исходным контекстом
	loadCtx := ctx
	if timeout := r.cfg.GetRodPageTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	loading := page.Context(loadCtx)

	if err := loading.WaitLoad(); err != nil {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("failed to wait for load: %w", err)}
	}

	html, err := loading.HTML()
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("failed to read page HTML: %w", err)}
	}

	r.logger.Debug("Source rendered", "url", urlStr, "bytes", len(html))

	return &FetchResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(html),
		URL:        urlStr,
	}, nil
}

func (r *Renderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().Headless(r.cfg.Rod.Headless)
	if r.cfg.Rod.ChromePath != "" {
		l = l.Bin(r.cfg.Rod.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	r.launcher = l
	r.browser = browser
	return browser, nil
}

// Close закрывает браузер, если он был запущен
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	r.launcher.Kill()
	r.browser = nil
	r.launcher = nil
	return err
}
