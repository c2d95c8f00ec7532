/*
Package cli implements the terminal commands of the LearnHub client.

This file holds the course commands: browsing and searching, course and module
authoring, content items, enrollment, and roster management.
*/
package cli

import (
	"context"
	"flag"
	"fmt"

	"learnhub/internal/api"
	"learnhub/internal/app/course"
)

func (a *App) coursesCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("courses", flag.ContinueOnError)
	search := fs.String("search", "", "keyword search over titles and descriptions")
	mine := fs.Bool("mine", false, "only courses I teach")
	enrolled := fs.Bool("enrolled", false, "only courses I'm enrolled in")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 25, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := course.ListFilter{Search: *search}
	if *mine || *enrolled {
		if err := a.requireAuth(); err != nil {
			return err
		}
		current := a.Session.CurrentUser()
		if *mine {
			filter.Instructor = current.ID
		}
		if *enrolled {
			filter.Student = current.ID
		}
	}

	opts := api.ListOptions{Limit: *limit, Offset: (*page - 1) * *limit}
	listed, err := a.Courses.List(ctx, filter, opts)
	if err != nil {
		return err
	}

	if len(listed.Results) == 0 {
		fmt.Fprintln(a.Stdout, "No courses found.")
		return nil
	}

	table := a.newTable()
	fmt.Fprintln(table, "ID\tTITLE\tINSTRUCTOR\tRATING\tENROLLED")
	for _, c := range listed.Results {
		enrolledMark := ""
		if c.HasEnrolled {
			enrolledMark = "yes"
		}
		fmt.Fprintf(table, "%d\t%s\t%s\t%.1f\t%s\n", c.ID, c.Title, c.Instructor.Name, c.Rating, enrolledMark)
	}
	table.Flush()

	fmt.Fprintf(a.Stdout, "%d of %d courses (page %d)\n", len(listed.Results), listed.Count, *page)
	return nil
}

func (a *App) courseCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("course", flag.ContinueOnError)
	id := fs.Int64("id", 0, "course ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()
		return ErrHelp
	}

	fetched, err := a.Courses.Get(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "#%d %s by %s (rating %.1f)\n", fetched.ID, fetched.Title, fetched.Instructor.Name, fetched.Rating)
	fmt.Fprintln(a.Stdout, fetched.Description)
	if fetched.IsBlocked {
		fmt.Fprintln(a.Stdout, "Your enrollment in this course is blocked.")
	}

	modules, err := a.Courses.ListModules(ctx, *id, api.ListOptions{})
	if err != nil {
		return err
	}

	if len(modules.Results) == 0 {
		fmt.Fprintln(a.Stdout, "No modules yet.")
		return nil
	}

	for _, m := range modules.Results {
		fmt.Fprintf(a.Stdout, "\n[%d] module %d: %s\n", m.Order, m.ID, m.Title)
		for _, item := range m.ModuleContents {
			fmt.Fprintf(a.Stdout, "  (%d) content %d [%s] %s\n", item.Order, item.ID, item.ContentType, contentSummary(item))
		}
	}
	return nil
}

// contentSummary renders the populated payload field of a content item.
func contentSummary(item course.Content) string {
	switch item.ContentType {
	case course.ContentTypeText:
		return item.Text
	case course.ContentTypeFile:
		return item.File
	case course.ContentTypeVideo:
		return item.VideoURL
	case course.ContentTypeImage:
		return item.Image
	default:
		return ""
	}
}

func (a *App) createCourseCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-course", flag.ContinueOnError)
	title := fs.String("title", "", "course title")
	description := fs.String("description", "", "course description")
	banner := fs.String("banner", "", "banner URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	created, err := a.Courses.Create(ctx, course.CourseInput{
		Title:       *title,
		Description: *description,
		Banner:      *banner,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Course %d created: %s\n", created.ID, created.Title)
	return nil
}

func (a *App) editCourseCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit-course", flag.ContinueOnError)
	id := fs.Int64("id", 0, "course ID")
	title := fs.String("title", "", "course title")
	description := fs.String("description", "", "course description")
	banner := fs.String("banner", "", "banner URL")
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

	updated, err := a.Courses.Update(ctx, *id, course.CourseInput{
		Title:       *title,
		Description: *description,
		Banner:      *banner,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Course %d updated.\n", updated.ID)
	return nil
}

func (a *App) deleteCourseCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-course", flag.ContinueOnError)
	id := fs.Int64("id", 0, "course ID")
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

	if err := a.Courses.Delete(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Course %d deleted.\n", *id)
	return nil
}

func (a *App) enrollCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enroll", flag.ContinueOnError)
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

	enrollmentID, err := a.Courses.Enroll(ctx, *courseID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Enrolled in course %d (enrollment %d).\n", *courseID, enrollmentID)
	return nil
}

func (a *App) addModuleCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-module", flag.ContinueOnError)
	courseID := fs.Int64("course", 0, "course ID")
	title := fs.String("title", "", "module title")
	order := fs.Int("order", 1, "position inside the course")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 || *title == "" {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	created, err := a.Courses.CreateModule(ctx, course.ModuleInput{
		Title:  *title,
		Course: *courseID,
		Order:  *order,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Module %d added to course %d.\n", created.ID, *courseID)
	return nil
}

func (a *App) editModuleCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit-module", flag.ContinueOnError)
	id := fs.Int64("id", 0, "module ID")
	courseID := fs.Int64("course", 0, "course ID (required by the platform)")
	title := fs.String("title", "", "module title")
	order := fs.Int("order", 1, "position inside the course")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *courseID == 0 {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	updated, err := a.Courses.UpdateModule(ctx, *id, course.ModuleInput{
		Title:  *title,
		Course: *courseID,
		Order:  *order,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Module %d updated.\n", updated.ID)
	return nil
}

func (a *App) deleteModuleCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-module", flag.ContinueOnError)
	id := fs.Int64("id", 0, "module ID")
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

	if err := a.Courses.DeleteModule(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Module %d deleted.\n", *id)
	return nil
}

func (a *App) addContentCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-content", flag.ContinueOnError)
	module := fs.Int64("module", 0, "module ID")
	contentType := fs.String("type", "", "content type: text, file, video, image")
	text := fs.String("text", "", "text payload")
	file := fs.String("file", "", "file URL payload")
	video := fs.String("video", "", "video URL payload")
	image := fs.String("image", "", "image URL payload")
	order := fs.Int("order", 1, "position inside the module")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *module == 0 || *contentType == "" {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	created, err := a.Courses.CreateContent(ctx, course.ContentInput{
		Module:      *module,
		ContentType: *contentType,
		Text:        *text,
		File:        *file,
		VideoURL:    *video,
		Image:       *image,
		Order:       *order,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Content %d added to module %d.\n", created.ID, *module)
	return nil
}

func (a *App) editContentCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit-content", flag.ContinueOnError)
	id := fs.Int64("id", 0, "content ID")
	module := fs.Int64("module", 0, "module ID (required by the platform)")
	contentType := fs.String("type", "", "content type: text, file, video, image")
	text := fs.String("text", "", "text payload")
	file := fs.String("file", "", "file URL payload")
	video := fs.String("video", "", "video URL payload")
	image := fs.String("image", "", "image URL payload")
	order := fs.Int("order", 1, "position inside the module")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *module == 0 || *contentType == "" {
		fs.Usage()
		return ErrHelp
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	updated, err := a.Courses.UpdateContent(ctx, *id, course.ContentInput{
		Module:      *module,
		ContentType: *contentType,
		Text:        *text,
		File:        *file,
		VideoURL:    *video,
		Image:       *image,
		Order:       *order,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Content %d updated.\n", updated.ID)
	return nil
}

func (a *App) deleteContentCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-content", flag.ContinueOnError)
	id := fs.Int64("id", 0, "content ID")
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

	if err := a.Courses.DeleteContent(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Content %d deleted.\n", *id)
	return nil
}

func (a *App) studentsCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("students", flag.ContinueOnError)
	courseID := fs.Int64("course", 0, "course ID")
	search := fs.String("search", "", "match student name or email")
	blocked := fs.Bool("blocked", false, "only blocked enrollments")
	unblocked := fs.Bool("unblocked", false, "only active enrollments")
	page := fs.Int("page", 1, "page number")
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

	filter := course.RosterFilter{CourseID: *courseID, Search: *search}
	if *blocked {
		value := true
		filter.Blocked = &value
	} else if *unblocked {
		value := false
		filter.Blocked = &value
	}

	roster, err := a.Courses.EnrolledStudents(ctx, filter, api.ListOptions{Page: *page})
	if err != nil {
		return err
	}

	if len(roster.Results) == 0 {
		fmt.Fprintln(a.Stdout, "No enrolled students found.")
		return nil
	}

	table := a.newTable()
	fmt.Fprintln(table, "ENROLLMENT\tSTUDENT\tEMAIL\tSINCE\tBLOCKED")
	for _, e := range roster.Results {
		blockedMark := ""
		if e.IsBlocked {
			blockedMark = "yes"
		}
		fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Student.Name, e.Student.Email, e.CreatedAt, blockedMark)
	}
	table.Flush()

	fmt.Fprintf(a.Stdout, "%d of %d students (page %d)\n", len(roster.Results), roster.Count, *page)
	return nil
}

func (a *App) setBlockedCmd(ctx context.Context, args []string, blocked bool) error {
	name := "unblock"
	if blocked {
		name = "block"
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.Int64("id", 0, "enrollment ID")
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

	updated, err := a.Courses.SetBlocked(ctx, *id, blocked)
	if err != nil {
		return err
	}

	state := "unblocked"
	if updated.IsBlocked {
		state = "blocked"
	}
	fmt.Fprintf(a.Stdout, "Enrollment %d is now %s.\n", updated.ID, state)
	return nil
}
