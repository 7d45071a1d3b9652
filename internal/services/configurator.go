package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"chatshell/internal/models"
)

// DefaultServerURLSeed pre-fills the first-run prompt.
const DefaultServerURLSeed = "https://hipchat.workplace.com"

// ErrServerURLRequired means first-run configuration ended without a URL.
var ErrServerURLRequired = errors.New("HipChat Server URL can not be empty")

type ConfiguratorState int

const (
	StateNoURLConfigured ConfiguratorState = iota
	StatePrompting
	StateURLSet
	StateAborted
)

func (s ConfiguratorState) String() string {
	switch s {
	case StateNoURLConfigured:
		return "NO_URL_CONFIGURED"
	case StatePrompting:
		return "PROMPTING"
	case StateURLSet:
		return "URL_SET"
	case StateAborted:
		return "ABORTED"
	default:
		return fmt.Sprintf("ConfiguratorState(%d)", int(s))
	}
}

// NormalizeServerURL trims input and makes it end in the chat path. The
// second result is false for blank input. Already normalized URLs are
// returned unchanged.
func NormalizeServerURL(input string) (string, bool) {
	url := strings.TrimSpace(input)
	if url == "" {
		return "", false
	}
	if strings.HasSuffix(url, models.ChatPathSuffix) {
		return url, true
	}
	if strings.HasSuffix(url, "/") {
		return url + strings.TrimPrefix(models.ChatPathSuffix, "/"), true
	}
	return url + models.ChatPathSuffix, true
}

// FirstRunConfigurator makes sure a server URL is configured before the
// window is created, prompting for one when needed.
type FirstRunConfigurator struct {
	prefs    *PreferenceService
	prompter Prompter
	log      logger.Logger
	seed     string
	state    ConfiguratorState
}

func NewFirstRunConfigurator(prefs *PreferenceService, prompter Prompter, log logger.Logger, seed string) *FirstRunConfigurator {
	if strings.TrimSpace(seed) == "" {
		seed = DefaultServerURLSeed
	}
	return &FirstRunConfigurator{
		prefs:    prefs,
		prompter: prompter,
		log:      log,
		seed:     seed,
	}
}

func (c *FirstRunConfigurator) State() ConfiguratorState {
	return c.state
}

// NeedsConfiguration reports whether Run would prompt.
func (c *FirstRunConfigurator) NeedsConfiguration(forceLogout bool) bool {
	return forceLogout || !c.prefs.Current().HasServerURL()
}

// Run returns the configured server URL, prompting when none is stored or
// forceLogout is set. A blank or cancelled prompt yields
// ErrServerURLRequired; the process is expected to exit.
func (c *FirstRunConfigurator) Run(ctx context.Context, forceLogout bool) (string, error) {
	if !c.NeedsConfiguration(forceLogout) {
		c.state = StateURLSet
		return c.prefs.Current().ServerURL, nil
	}

	c.state = StateNoURLConfigured
	c.prefs.Commit(func(p *models.Preferences) {
		p.ServerURL = ""
	}, SaveOptions{ExitOnFail: true})

	c.state = StatePrompting
	input, err := c.prompter.PromptServerURL(ctx, c.seed)
	if err != nil && !errors.Is(err, ErrPromptCancelled) {
		c.state = StateAborted
		return "", fmt.Errorf("prompt for server url: %w", err)
	}

	url, ok := NormalizeServerURL(input)
	if err != nil || !ok {
		c.state = StateAborted
		c.log.Warning(ErrServerURLRequired.Error())
		return "", ErrServerURLRequired
	}

	c.prefs.Commit(func(p *models.Preferences) {
		p.ServerURL = url
	}, SaveOptions{ExitOnFail: true})

	c.state = StateURLSet
	c.log.Info(fmt.Sprintf("Configured HipChat server %s", url))
	return url, nil
}
