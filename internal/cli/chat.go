/*
Package cli implements the terminal commands of the LearnHub client.

This file holds the chat command: an interactive loop over a course's live
chat session. Lines typed on stdin are sent; events from the stream are
printed as they arrive. "/quit" or EOF leaves the room.
*/
package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"learnhub/internal/app/chat"
)

func (a *App) chatCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	courseID := fs.Int64("course", 0, "course ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	session := chat.NewSession(a.Client, a.Tokens, *courseID)
	if err := session.Open(ctx); err != nil {
		return err
	}
	defer session.Close()

	fmt.Fprintf(a.Stdout, "Joined chat for course %d. Type a message and press enter, /quit to leave.\n", *courseID)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(a.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			session.Close()
			return nil

		case line, ok := <-lines:
			if !ok {
				lines = nil
				session.Close()
				continue
			}
			if strings.TrimSpace(line) == "/quit" {
				session.Close()
				continue
			}
			session.Send(line)

		case event := <-session.Events():
			switch event.Type {
			case chat.EventOpened:
				fmt.Fprintln(a.Stdout, "-- connected --")
			case chat.EventHistoryLoaded:
				fmt.Fprintf(a.Stdout, "-- %d earlier messages --\n", len(event.History))
				for _, msg := range event.History {
					a.printChatMessage(msg)
				}
			case chat.EventMessage:
				a.printChatMessage(event.Message)
			case chat.EventClosed:
				fmt.Fprintln(a.Stdout, "-- left the room --")
				return nil
			}
		}
	}
}

func (a *App) printChatMessage(msg chat.Message) {
	name := msg.Sender.Name
	if name == "" {
		name = "unknown"
	}
	fmt.Fprintf(a.Stdout, "[%s] %s: %s\n", msg.Timestamp, name, msg.Text)
}
