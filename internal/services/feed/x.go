package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/mentio/internal/domain"
	"go.uber.org/zap"
)

const (
	apiBaseURL  = "https://api.twitter.com/2"
	restTimeout = 15 * time.Second
	eventBuffer = 16

	// filtered-stream lines can carry full post payloads with expansions
	maxStreamLineBytes = 1 << 20

	ruleTag = "mentio-tracked-account"
)

// XFeed streams the tracked account's posts from the X API v2 filtered stream.
type XFeed struct {
	http     *resty.Client
	username string
	userID   string
	l        *zap.Logger
}

// NewXFeed builds a feed for the given account username. The bearer token
// must have filtered-stream access.
func NewXFeed(bearerToken, username string, logger *zap.Logger) *XFeed {
	// no client-wide timeout: the stream response intentionally never ends
	client := resty.New().
		SetBaseURL(apiBaseURL).
		SetAuthToken(bearerToken)

	return &XFeed{
		http:     client,
		username: username,
		l:        logger,
	}
}

// UserID returns the resolved account ID, valid after Start.
func (f *XFeed) UserID() string {
	return f.userID
}

// Start resolves the tracked account, installs the stream rule, opens the
// filtered stream, and returns the event channel. The channel is closed when
// the stream ends; the feed does not reconnect.
func (f *XFeed) Start(ctx context.Context) (<-chan domain.PostEvent, error) {
	if err := f.resolveUserID(ctx); err != nil {
		return nil, err
	}
	if err := f.replaceStreamRules(ctx); err != nil {
		return nil, err
	}

	resp, err := f.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetQueryParam("tweet.fields", "author_id,referenced_tweets").
		Get("/tweets/search/stream")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open filtered stream")
	}
	if resp.IsError() {
		resp.RawBody().Close()
		return nil, fmt.Errorf("filtered stream returned %s", resp.Status())
	}

	body := resp.RawBody()

	// unblock the reader when the caller shuts down
	go func() {
		<-ctx.Done()
		body.Close()
	}()

	events := make(chan domain.PostEvent, eventBuffer)
	go func() {
		defer close(events)
		defer body.Close()

		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLineBytes)

		for scanner.Scan() {
			event, ok := parseStreamLine(scanner.Bytes())
			if !ok {
				continue
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			f.l.Error("filtered stream read failed", zap.Error(err))
		}
	}()

	f.l.Info("filtered stream connected",
		zap.String("account", f.username),
		zap.String("user_id", f.userID))

	return events, nil
}

type userLookupResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

func (f *XFeed) resolveUserID(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, restTimeout)
	defer cancel()

	var out userLookupResponse
	resp, err := f.http.R().
		SetContext(reqCtx).
		SetResult(&out).
		Get("/users/by/username/" + f.username)
	if err != nil {
		return errors.Wrapf(err, "failed to look up account %s", f.username)
	}
	if resp.IsError() {
		return fmt.Errorf("account lookup for %s returned %s", f.username, resp.Status())
	}
	if out.Data.ID == "" {
		return fmt.Errorf("account %s not found", f.username)
	}

	f.userID = out.Data.ID
	return nil
}

type streamRulesResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"data"`
}

// replaceStreamRules drops whatever rules the token currently carries and
// installs a single from:<account> rule.
func (f *XFeed) replaceStreamRules(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, restTimeout)
	defer cancel()

	var current streamRulesResponse
	resp, err := f.http.R().
		SetContext(reqCtx).
		SetResult(&current).
		Get("/tweets/search/stream/rules")
	if err != nil {
		return errors.Wrap(err, "failed to fetch stream rules")
	}
	if resp.IsError() {
		return fmt.Errorf("stream rule fetch returned %s", resp.Status())
	}

	if len(current.Data) > 0 {
		ids := make([]string, 0, len(current.Data))
		for _, rule := range current.Data {
			ids = append(ids, rule.ID)
		}

		resp, err = f.http.R().
			SetContext(reqCtx).
			SetBody(map[string]any{"delete": map[string]any{"ids": ids}}).
			Post("/tweets/search/stream/rules")
		if err != nil {
			return errors.Wrap(err, "failed to delete stale stream rules")
		}
		if resp.IsError() {
			return fmt.Errorf("stream rule delete returned %s", resp.Status())
		}
	}

	resp, err = f.http.R().
		SetContext(reqCtx).
		SetBody(map[string]any{"add": []map[string]string{
			{"value": "from:" + f.username, "tag": ruleTag},
		}}).
		Post("/tweets/search/stream/rules")
	if err != nil {
		return errors.Wrap(err, "failed to install stream rule")
	}
	if resp.IsError() {
		return fmt.Errorf("stream rule install returned %s", resp.Status())
	}

	return nil
}

type streamPost struct {
	Data struct {
		ID               string `json:"id"`
		AuthorID         string `json:"author_id"`
		Text             string `json:"text"`
		ReferencedTweets []struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"referenced_tweets"`
	} `json:"data"`
}

// parseStreamLine decodes one stream line into a post event. Blank keep-alive
// lines and undecodable payloads are skipped.
func parseStreamLine(line []byte) (domain.PostEvent, bool) {
	if len(line) == 0 {
		return domain.PostEvent{}, false
	}

	var post streamPost
	if err := json.Unmarshal(line, &post); err != nil || post.Data.ID == "" {
		return domain.PostEvent{}, false
	}

	isReply := false
	for _, ref := range post.Data.ReferencedTweets {
		if ref.Type == "replied_to" {
			isReply = true
			break
		}
	}

	return domain.PostEvent{
		ID:       post.Data.ID,
		AuthorID: post.Data.AuthorID,
		Text:     post.Data.Text,
		IsReply:  isReply,
	}, true
}
