// Copyright (C) 2024 Vyra Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package airewrite implements spec.md §4.6's optional AI-rewrite front
// end: a pure text-to-text pass that runs before the sentence splitter
// and turns free-form input into canonical Vyra sentences. It is never
// required to run the interpreter; the core pipeline works with this
// stage entirely absent.
//
// The client wiring follows Tangerg-lynx's Api wrapper around
// openai-go: a small config struct, option.RequestOption for the base
// URL and API key, one method per call shape.
package airewrite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/poojapathak0/vyra/config"
	"github.com/poojapathak0/vyra/vyraerr"
)

// Config holds the five settings spec.md §4.6 names. Provider is
// currently required to be "openai_compatible"; every other value is
// rejected by LoadConfig.
type Config struct {
	Endpoint string
	Model    string
	APIKey   string
	Provider string
	Timeout  time.Duration
}

const defaultTimeoutSeconds = 30

// Error wraps any rewrite-stage failure (network, auth, timeout,
// missing configuration) as spec.md §7's AIRewriteError.
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("airewrite: %s: %v", e.Msg, e.Err)
	}
	return "airewrite: " + e.Msg
}
func (e *Error) Unwrap() error          { return e.Err }
func (e *Error) ErrKind() vyraerr.Kind { return vyraerr.KindAIRewriteError }

// LoadConfig resolves the five rewrite settings from environment
// variables, with cfgPath (typically "vyra.yaml") overriding any
// variable it sets explicitly.
func LoadConfig(cfgPath string) (Config, error) {
	c := Config{
		Endpoint: os.Getenv("VYRA_AI_ENDPOINT"),
		Model:    os.Getenv("VYRA_AI_MODEL"),
		APIKey:   os.Getenv("VYRA_AI_API_KEY"),
		Provider: os.Getenv("VYRA_AI_PROVIDER"),
		Timeout:  defaultTimeoutSeconds * time.Second,
	}
	if s := os.Getenv("VYRA_AI_TIMEOUT_SECONDS"); s != "" {
		secs, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, &Error{Msg: fmt.Sprintf("invalid VYRA_AI_TIMEOUT_SECONDS %q", s), Err: err}
		}
		c.Timeout = time.Duration(secs) * time.Second
	}

	if cfgPath != "" {
		fc, err := config.Load(cfgPath)
		if err != nil {
			return Config{}, &Error{Msg: "loading " + cfgPath, Err: err}
		}
		if fc.AI.Endpoint != "" {
			c.Endpoint = fc.AI.Endpoint
		}
		if fc.AI.Model != "" {
			c.Model = fc.AI.Model
		}
		if fc.AI.APIKey != "" {
			c.APIKey = fc.AI.APIKey
		}
		if fc.AI.Provider != "" {
			c.Provider = fc.AI.Provider
		}
		if fc.AI.TimeoutSeconds != 0 {
			c.Timeout = time.Duration(fc.AI.TimeoutSeconds) * time.Second
		}
	}

	if c.Provider == "" {
		c.Provider = "openai_compatible"
	}
	if c.Endpoint == "" || c.Model == "" {
		return Config{}, &Error{Msg: "missing endpoint or model configuration"}
	}
	if c.Provider != "openai_compatible" {
		return Config{}, &Error{Msg: fmt.Sprintf("unsupported provider %q", c.Provider)}
	}
	return c, nil
}

// Rewriter calls an OpenAI-compatible chat completion endpoint to turn
// arbitrary input text into canonical Vyra sentences.
type Rewriter struct {
	cfg    Config
	client openai.Client
}

// New constructs a Rewriter from cfg.
func New(cfg Config) (*Rewriter, error) {
	if cfg.Endpoint == "" {
		return nil, &Error{Msg: "endpoint is required"}
	}
	opts := []option.RequestOption{option.WithBaseURL(cfg.Endpoint)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &Rewriter{cfg: cfg, client: openai.NewClient(opts...)}, nil
}

const systemPrompt = `Rewrite the user's text into a sequence of Vyra sentences.
Each statement must be a complete English sentence ending in '.' or ':'.
Do not explain anything; output only the rewritten program text.`

// Rewrite sends text to the configured endpoint and returns the
// rewritten program text, or an Error wrapping whatever went wrong.
func (r *Rewriter) Rewrite(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: r.cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", &Error{Msg: "chat completion request failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Msg: "rewrite endpoint returned no choices", Err: errors.New("empty response")}
	}
	out := resp.Choices[0].Message.Content
	if out == "" {
		return "", &Error{Msg: "rewrite endpoint returned empty content"}
	}
	return out, nil
}
