package cli

import (
	"context"
	"errors"
	"io"
)

const chatWelcome = "Hi there! I'm your mental wellness companion. How are you feeling today?"

// chat prints the conversation so far and then relays messages until the
// user enters an empty line.
func (a *App) chat(ctx context.Context) error {
	history, err := a.client.ChatHistory(ctx)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		a.printf("ai: %s\n", chatWelcome)
	}
	for _, m := range history {
		a.printf("%s: %s\n", m.Sender, m.Message)
	}

	a.println("(empty line to leave the chat)")
	for {
		text, err := a.prompt("you")
		if errors.Is(err, io.EOF) || (err == nil && text == "") {
			return nil
		}
		if err != nil {
			return err
		}
		reply, err := a.client.SendMessage(ctx, text)
		if err != nil {
			return err
		}
		a.printf("ai: %s\n", reply.Message)
	}
}

func (a *App) resetChat(ctx context.Context) error {
	ok, err := a.confirm("Clear the whole conversation?")
	if err != nil || !ok {
		return err
	}
	msg, err := a.client.ResetChat(ctx)
	if err != nil {
		return err
	}
	a.println(orDefault(msg.Message, "Chat history reset"))
	return nil
}
