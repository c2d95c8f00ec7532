/*
Package cli implements the terminal commands of the LearnHub client.

Each command is the terminal rendition of one platform view: browsing and
authoring courses, enrollment and roster management, feedback and the status
feed, account management, and the per-course live chat.
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"learnhub/internal/api"
	"learnhub/internal/app/course"
	"learnhub/internal/app/feedback"
	"learnhub/internal/app/user"
	"learnhub/internal/auth"
	"learnhub/internal/configs"
	"learnhub/internal/pkg/errs"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	// ErrHelp reports that usage was printed instead of running a command.
	ErrHelp = errors.New("help provided")
)

// App bundles the wired client pieces the commands operate on.
type App struct {
	Config   *configs.AppConfig
	Client   *api.Client
	Tokens   auth.TokenStore
	Session  *auth.Session
	Users    *user.Service
	Courses  *course.Service
	Feedback *feedback.Service

	Stdout io.Writer
	Stdin  io.Reader
}

func (a *App) printUsage() {
	fmt.Fprintln(a.Stdout, "Usage: learnhub COMMAND [flags]")
	fmt.Fprintln(a.Stdout, "")
	fmt.Fprintln(a.Stdout, "Account:")
	fmt.Fprintln(a.Stdout, "  register -name NAME -email EMAIL      create an account (password prompted)")
	fmt.Fprintln(a.Stdout, "  login -email EMAIL                    sign in (password prompted)")
	fmt.Fprintln(a.Stdout, "  logout                                sign out locally")
	fmt.Fprintln(a.Stdout, "  whoami                                show the signed-in profile")
	fmt.Fprintln(a.Stdout, "  update-profile -name NAME [-bio BIO]  update the profile")
	fmt.Fprintln(a.Stdout, "  passwd                                change the password (prompted)")
	fmt.Fprintln(a.Stdout, "  users [-page N]                       list platform users")
	fmt.Fprintln(a.Stdout, "  forgot-password -email EMAIL          request a password-reset email")
	fmt.Fprintln(a.Stdout, "  reset-password -uid UID -token TOKEN  complete an emailed password reset")
	fmt.Fprintln(a.Stdout, "")
	fmt.Fprintln(a.Stdout, "Courses:")
	fmt.Fprintln(a.Stdout, "  courses [-search Q] [-mine] [-enrolled] [-page N] [-limit N]")
	fmt.Fprintln(a.Stdout, "  course -id ID                         show a course with modules and contents")
	fmt.Fprintln(a.Stdout, "  create-course -title T -description D")
	fmt.Fprintln(a.Stdout, "  edit-course -id ID [-title T] [-description D]")
	fmt.Fprintln(a.Stdout, "  delete-course -id ID")
	fmt.Fprintln(a.Stdout, "  enroll -course ID")
	fmt.Fprintln(a.Stdout, "  add-module -course ID -title T [-order N]")
	fmt.Fprintln(a.Stdout, "  edit-module -id ID -course ID [-title T] [-order N]")
	fmt.Fprintln(a.Stdout, "  delete-module -id ID")
	fmt.Fprintln(a.Stdout, "  add-content -module ID -type TYPE [-text S|-file URL|-video URL|-image URL] [-order N]")
	fmt.Fprintln(a.Stdout, "  edit-content -id ID -module ID -type TYPE [...]")
	fmt.Fprintln(a.Stdout, "  delete-content -id ID")
	fmt.Fprintln(a.Stdout, "  students -course ID [-search Q] [-blocked|-unblocked] [-page N]")
	fmt.Fprintln(a.Stdout, "  block -id ENROLLMENT / unblock -id ENROLLMENT")
	fmt.Fprintln(a.Stdout, "")
	fmt.Fprintln(a.Stdout, "Feedback and status feed:")
	fmt.Fprintln(a.Stdout, "  feedbacks -course ID [-page N] [-limit N]")
	fmt.Fprintln(a.Stdout, "  post-feedback -course ID -rating N [-comment S]")
	fmt.Fprintln(a.Stdout, "  edit-feedback -id ID -course ID -rating N [-comment S]")
	fmt.Fprintln(a.Stdout, "  delete-feedback -id ID")
	fmt.Fprintln(a.Stdout, "  statuses [-mine] [-page N]")
	fmt.Fprintln(a.Stdout, "  post-status -content S")
	fmt.Fprintln(a.Stdout, "  edit-status -id ID -content S")
	fmt.Fprintln(a.Stdout, "  delete-status -id ID")
	fmt.Fprintln(a.Stdout, "")
	fmt.Fprintln(a.Stdout, "Chat:")
	fmt.Fprintln(a.Stdout, "  chat -course ID                       join the course's live chat")
}

// Run dispatches one command. It returns ErrHelp when usage was printed,
// or the command's error.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.printUsage()
		return ErrHelp
	}

	switch args[1] {
	// Account
	case "register":
		return a.registerCmd(ctx, args[2:])
	case "login":
		return a.loginCmd(ctx, args[2:])
	case "logout":
		return a.logoutCmd()
	case "whoami":
		return a.whoamiCmd()
	case "update-profile":
		return a.updateProfileCmd(ctx, args[2:])
	case "passwd":
		return a.passwdCmd(ctx, args[2:])
	case "users":
		return a.usersCmd(ctx, args[2:])
	case "forgot-password":
		return a.forgotPasswordCmd(ctx, args[2:])
	case "reset-password":
		return a.resetPasswordCmd(ctx, args[2:])

	// Courses
	case "courses":
		return a.coursesCmd(ctx, args[2:])
	case "course":
		return a.courseCmd(ctx, args[2:])
	case "create-course":
		return a.createCourseCmd(ctx, args[2:])
	case "edit-course":
		return a.editCourseCmd(ctx, args[2:])
	case "delete-course":
		return a.deleteCourseCmd(ctx, args[2:])
	case "enroll":
		return a.enrollCmd(ctx, args[2:])
	case "add-module":
		return a.addModuleCmd(ctx, args[2:])
	case "edit-module":
		return a.editModuleCmd(ctx, args[2:])
	case "delete-module":
		return a.deleteModuleCmd(ctx, args[2:])
	case "add-content":
		return a.addContentCmd(ctx, args[2:])
	case "edit-content":
		return a.editContentCmd(ctx, args[2:])
	case "delete-content":
		return a.deleteContentCmd(ctx, args[2:])
	case "students":
		return a.studentsCmd(ctx, args[2:])
	case "block":
		return a.setBlockedCmd(ctx, args[2:], true)
	case "unblock":
		return a.setBlockedCmd(ctx, args[2:], false)

	// Feedback and status feed
	case "feedbacks":
		return a.feedbacksCmd(ctx, args[2:])
	case "post-feedback":
		return a.postFeedbackCmd(ctx, args[2:])
	case "edit-feedback":
		return a.editFeedbackCmd(ctx, args[2:])
	case "delete-feedback":
		return a.deleteFeedbackCmd(ctx, args[2:])
	case "statuses":
		return a.statusesCmd(ctx, args[2:])
	case "post-status":
		return a.postStatusCmd(ctx, args[2:])
	case "edit-status":
		return a.editStatusCmd(ctx, args[2:])
	case "delete-status":
		return a.deleteStatusCmd(ctx, args[2:])

	// Chat
	case "chat":
		return a.chatCmd(ctx, args[2:])

	default:
		a.printUsage()
		return ErrHelp
	}
}

// requireAuth gates commands that only make sense with an established session.
func (a *App) requireAuth() error {
	if !a.Session.IsAuthenticated() {
		return errs.NewError(errs.ErrNotLoggedIn)
	}
	return nil
}

// promptPassword reads a password without echoing it.
func (a *App) promptPassword(label string) (string, error) {
	fmt.Fprintf(a.Stdout, "%s: ", label)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(a.Stdout)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// newTable returns a tabwriter for aligned list output.
func (a *App) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(a.Stdout, 0, 4, 2, ' ', 0)
}

// PrintError renders a command error for the user, expanding validation
// field detail when the platform provided it.
func (a *App) PrintError(err error) {
	var customErr *errs.CustomError
	if !errors.As(err, &customErr) {
		fmt.Fprintf(a.Stdout, "error: %v\n", err)
		return
	}

	fmt.Fprintf(a.Stdout, "error: %s\n", customErr.Message)
	for field, messages := range customErr.Fields {
		for _, msg := range messages {
			fmt.Fprintf(a.Stdout, "  %s: %s\n", field, msg)
		}
	}
}
