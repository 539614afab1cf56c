// Package youtube resolves YouTube URLs into transcript text for
// classification and quiz generation.
package youtube

import (
	"context"
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
)

// ErrInvalidURL marks a URL that is not a recognized YouTube video link.
var ErrInvalidURL = errors.New("유효하지 않은 YouTube URL입니다")

// ErrTranscriptUnavailable marks a video with no fetchable captions.
var ErrTranscriptUnavailable = errors.New("자막을 가져올 수 없습니다")

const timedTextURL = "https://video.google.com/timedtext"

// ExtractVideoID pulls the video id out of a youtube.com/watch or
// youtu.be URL.
func ExtractVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", ErrInvalidURL
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if parsed.Path != "/watch" {
			return "", ErrInvalidURL
		}
		id := parsed.Query().Get("v")
		if id == "" {
			return "", ErrInvalidURL
		}
		return id, nil
	case "youtu.be":
		id := strings.Trim(parsed.Path, "/")
		if id == "" || strings.Contains(id, "/") {
			return "", ErrInvalidURL
		}
		return id, nil
	default:
		return "", ErrInvalidURL
	}
}

// Hash fingerprints classification text. 32 hex characters; used for run
// dedup tracking and the quiz cache key.
func Hash(text string) string {
	sum := md5.Sum([]byte(text)) //nolint:gosec // content fingerprint, not a security boundary
	return hex.EncodeToString(sum[:])
}

// Client fetches caption transcripts over HTTP.
type Client struct {
	httpClient *http.Client
	language   string
	logger     logger.Logger
}

// NewClient creates a transcript client.
func NewClient(timeout time.Duration, language string, log logger.Logger) *Client {
	if language == "" {
		language = "ko"
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		language:   language,
		logger:     log,
	}
}

type timedText struct {
	Texts []struct {
		Body string `xml:",chardata"`
	} `xml:"text"`
}

// Transcript fetches the caption track for a video and flattens it into
// plain text. Falls back to the default track when the configured
// language has none.
func (c *Client) Transcript(ctx context.Context, videoID string) (string, error) {
	text, err := c.fetchTrack(ctx, videoID, c.language)
	if err == nil && text != "" {
		return text, nil
	}
	if c.language != "" {
		text, err = c.fetchTrack(ctx, videoID, "")
		if err == nil && text != "" {
			return text, nil
		}
	}
	if err != nil {
		c.logger.Warn("transcript fetch failed",
			logger.String("video_id", videoID),
			logger.Error(err))
	}
	return "", ErrTranscriptUnavailable
}

func (c *Client) fetchTrack(ctx context.Context, videoID, language string) (string, error) {
	query := url.Values{"v": {videoID}}
	if language != "" {
		query.Set("lang", language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, timedTextURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch transcript: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcript body: %w", err)
	}

	var track timedText
	if err := xml.Unmarshal(body, &track); err != nil {
		return "", fmt.Errorf("parse transcript: %w", err)
	}

	lines := make([]string, 0, len(track.Texts))
	for _, t := range track.Texts {
		line := strings.TrimSpace(html.UnescapeString(t.Body))
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, " "), nil
}
