/*
Package cli implements the terminal commands of the LearnHub client.

This file holds the feedback commands (per-course ratings and comments) and
the status-feed commands.
*/
package cli

import (
	"context"
	"flag"
	"fmt"

	"learnhub/internal/api"
	"learnhub/internal/app/feedback"
)

func (a *App) feedbacksCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("feedbacks", flag.ContinueOnError)
	courseID := fs.Int64("course", 0, "course ID")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 25, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 {
		fs.Usage()
		return ErrHelp
	}

	opts := api.ListOptions{Limit: *limit, Offset: (*page - 1) * *limit}
	listed, err := a.Feedback.List(ctx, *courseID, opts)
	if err != nil {
		return err
	}

	if len(listed.Results) == 0 {
		fmt.Fprintln(a.Stdout, "No feedback yet.")
		return nil
	}

	table := a.newTable()
	fmt.Fprintln(table, "ID\tRATING\tSTUDENT\tCOMMENT\tPOSTED")
	for _, f := range listed.Results {
		fmt.Fprintf(table, "%d\t%d\t%s\t%s\t%s\n", f.ID, f.Rating, f.Student.Name, f.Comment, f.CreatedAt)
	}
	table.Flush()

	fmt.Fprintf(a.Stdout, "%d of %d feedbacks (page %d)\n", len(listed.Results), listed.Count, *page)
	return nil
}

func (a *App) postFeedbackCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post-feedback", flag.ContinueOnError)
	courseID := fs.Int64("course", 0, "course ID")
	rating := fs.Int("rating", 0, "star rating, 1 to 5")
	comment := fs.String("comment", "", "review text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 || *rating == 0 {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	created, err := a.Feedback.Create(ctx, feedback.FeedbackInput{
		Course:  *courseID,
		Rating:  *rating,
		Comment: *comment,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Feedback %d posted on course %d.\n", created.ID, created.Course)
	return nil
}

func (a *App) editFeedbackCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit-feedback", flag.ContinueOnError)
	id := fs.Int64("id", 0, "feedback ID")
	courseID := fs.Int64("course", 0, "course ID")
	rating := fs.Int("rating", 0, "star rating, 1 to 5")
	comment := fs.String("comment", "", "review text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *courseID == 0 || *rating == 0 {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	updated, err := a.Feedback.Update(ctx, *id, feedback.FeedbackInput{
		Course:  *courseID,
		Rating:  *rating,
		Comment: *comment,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Feedback %d updated.\n", updated.ID)
	return nil
}

func (a *App) deleteFeedbackCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-feedback", flag.ContinueOnError)
	id := fs.Int64("id", 0, "feedback ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.Feedback.Delete(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Feedback %d deleted.\n", *id)
	return nil
}

func (a *App) statusesCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("statuses", flag.ContinueOnError)
	mine := fs.Bool("mine", false, "only my posts")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var userID int64
	if *mine {
		if err := a.requireAuth(); err != nil {
			return err
		}
		userID = a.Session.CurrentUser().ID
	}

	listed, err := a.Feedback.ListStatus(ctx, userID, api.ListOptions{Page: *page})
	if err != nil {
		return err
	}

	if len(listed.Results) == 0 {
		fmt.Fprintln(a.Stdout, "The feed is empty.")
		return nil
	}

	for _, s := range listed.Results {
		fmt.Fprintf(a.Stdout, "[%d] %s (%s)\n", s.ID, s.User.Name, s.CreatedAt)
		fmt.Fprintf(a.Stdout, "    %s\n", s.Content)
	}

	fmt.Fprintf(a.Stdout, "%d of %d posts (page %d)\n", len(listed.Results), listed.Count, *page)
	return nil
}

func (a *App) postStatusCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post-status", flag.ContinueOnError)
	content := fs.String("content", "", "post text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *content == "" {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	created, err := a.Feedback.CreateStatus(ctx, feedback.StatusInput{Content: *content})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Status %d posted.\n", created.ID)
	return nil
}

func (a *App) editStatusCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit-status", flag.ContinueOnError)
	id := fs.Int64("id", 0, "status update ID")
	content := fs.String("content", "", "post text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *content == "" {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	updated, err := a.Feedback.UpdateStatus(ctx, *id, feedback.StatusInput{Content: *content})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Status %d updated.\n", updated.ID)
	return nil
}

func (a *App) deleteStatusCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-status", flag.ContinueOnError)
	id := fs.Int64("id", 0, "status update ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.Feedback.DeleteStatus(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Status %d deleted.\n", *id)
	return nil
}
