// Package probe checks a site for well-known AI-discovery files and
// classifies what came back.
package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/llmscore/llmscore/internal/model"
)

const userAgent = "LLMScore/1.0 (AI Optimization Checker)"

// DefaultPaths are the well-known AI-discovery files probed on every scan.
var DefaultPaths = []string{
	"/agents.txt",
	"/agent.txt",
	"/llm.txt",
	"/llms.txt",
	"/ai.txt",
}

// Prober issues one GET per candidate path. No retries; a failed probe is a
// result, not an error.
type Prober struct {
	hc    *http.Client
	paths []string
}

func New(timeout time.Duration, paths ...string) *Prober {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	return &Prober{
		hc:    &http.Client{Timeout: timeout},
		paths: paths,
	}
}

// CheckFiles probes every candidate path on the origin and returns one
// FileCheck per path, in input order.
func (p *Prober) CheckFiles(ctx context.Context, origin string) []model.FileCheck {
	checks := make([]model.FileCheck, 0, len(p.paths))
	for _, path := range p.paths {
		checks = append(checks, p.checkFile(ctx, origin, path))
	}
	return checks
}

func (p *Prober) checkFile(ctx context.Context, origin, path string) model.FileCheck {
	check := model.FileCheck{Path: path}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+path, nil)
	if err != nil {
		check.Error = "Network error"
		return check
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/plain, text/*, */*")

	resp, err := p.hc.Do(req)
	if err != nil {
		slog.Debug("file probe failed", "origin", origin, "path", path, "error", err)
		check.Error = "Network error"
		return check
	}
	defer resp.Body.Close()

	check.StatusCode = resp.StatusCode
	check.ContentType = resp.Header.Get("Content-Type")

	// One byte past the limit is enough to fail the size check.
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFileSize+1))
	content := string(body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err != nil {
			check.Error = "Could not read content"
			return check
		}
		if IsLegitimateTextFile(content, check.ContentType) {
			check.Exists = true
			check.Content = content
		} else {
			check.Error = "File appears to be a generated error page or invalid content"
		}

	case resp.StatusCode == http.StatusNotFound:
		if err != nil || IsLegitimate404(content, check.ContentType) {
			check.Error = "File not found (404)"
		} else if IsProbablyErrorPage(content) {
			check.Error = "File not found - website error page"
		} else {
			check.Error = "File not found (unexpected 404 response)"
		}

	case resp.StatusCode >= 400:
		check.Error = fmt.Sprintf("Server error (%d)", resp.StatusCode)

	default:
		check.Error = fmt.Sprintf("Unexpected response (%d)", resp.StatusCode)
	}

	return check
}
