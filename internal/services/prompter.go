package services

import (
	"context"
	"errors"

	"github.com/ncruces/zenity"
)

// ErrPromptCancelled is returned when the user dismisses the prompt.
var ErrPromptCancelled = errors.New("prompt cancelled")

// Prompter asks the user for the chat server address.
type Prompter interface {
	PromptServerURL(ctx context.Context, seed string) (string, error)
}

// DialogPrompter shows a native modal text entry.
type DialogPrompter struct {
	Title string
	Label string
}

func NewDialogPrompter() *DialogPrompter {
	return &DialogPrompter{
		Title: "Enter HipChat Server Address",
		Label: "URL:",
	}
}

func (p *DialogPrompter) PromptServerURL(ctx context.Context, seed string) (string, error) {
	input, err := zenity.Entry(p.Label,
		zenity.Title(p.Title),
		zenity.EntryText(seed),
		zenity.Context(ctx),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", ErrPromptCancelled
	}
	if err != nil {
		return "", err
	}
	return input, nil
}
