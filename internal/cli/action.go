package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"autogit.dev/autogit/internal/cli/helpers"
	"autogit.dev/autogit/internal/credentials"
	autogiterrors "autogit.dev/autogit/internal/errors"
	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/runtime"
	"autogit.dev/autogit/internal/workflow"
)

// errForceNotConfirmed is returned when a force publish is declined or cannot be confirmed
var errForceNotConfirmed = errors.New("force push not confirmed; pass --yes to skip the confirmation")

// actionOptions holds the flags shared by workflow commands
type actionOptions struct {
	Dir      string
	URL      string
	Message  string
	UseToken bool
	Force    bool
	Yes      bool
}

// newPrompter is replaced in tests
var newPrompter = func() helpers.Prompter { return helpers.SurveyPrompter{} }

var actionExamples = map[string]string{
	workflow.ActionPublish: "  autogit publish ./project --url https://github.com/me/project.git\n  autogit publish ./project --url https://github.com/me/project.git --token",
	workflow.ActionPush:    "  autogit push ./project\n  autogit push ./project --url git@github.com:me/project.git",
	workflow.ActionClone:   "  autogit clone ~/src --url https://github.com/me/project.git",
	workflow.ActionCommit:  "  autogit commit ./project -m \"Update docs\"",
}

// newActionCmd creates the command for a registered workflow action
func newActionCmd(action workflow.Action) *cobra.Command {
	opts := actionOptions{}

	cmd := &cobra.Command{
		Use:     action.Name + " [dir]",
		Short:   action.Description,
		Example: actionExamples[action.Name],
		GroupID: "workflows",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = helpers.FlagString(cmd, "dir")
			if len(args) == 1 {
				opts.Dir = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return runAction(ctx, action, opts, helpers.IsInteractive(), newPrompter())
			})
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "Remote repository URL")
	cmd.Flags().BoolVar(&opts.UseToken, "token", false, "Embed a personal access token in the https URL (read from AUTOGIT_TOKEN, GITHUB_TOKEN or a masked prompt)")
	switch action.Name {
	case workflow.ActionCommit:
		cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "Commit message")
	case workflow.ActionPublish:
		cmd.Flags().BoolVar(&opts.Force, "force", false, "Publish with git push --force, overwriting the remote branch")
		cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Do not ask for confirmation before a force push")
	}
	return cmd
}

// runAction resolves the session, then dispatches the action with console reporting
func runAction(ctx *runtime.Context, action workflow.Action, opts actionOptions, interactive bool, prompter helpers.Prompter) error {
	session, err := resolveSession(ctx, action, opts, interactive, prompter)
	if err != nil {
		return err
	}

	reporter := output.NewConsoleReporter(ctx.Splog)
	outcome, err := ctx.Dispatch(action.Name, session, reporter)
	if err != nil {
		if autogiterrors.IsInputError(err) {
			return output.NewFailure(err.Error(), err)
		}
		return output.NewFailure(fmt.Sprintf("%s failed", action.Name), err)
	}
	ctx.Splog.Debug("%s finished after %d step(s)", action.Name, len(outcome.Results))
	return nil
}

// resolveSession merges flags, configuration and, when interactive, prompts
func resolveSession(ctx *runtime.Context, action workflow.Action, opts actionOptions, interactive bool, prompter helpers.Prompter) (workflow.Session, error) {
	session, err := ctx.Session()
	if err != nil {
		return session, err
	}
	session.Dir = opts.Dir
	session.RemoteURL = opts.URL
	session.Message = opts.Message

	if session.Dir == "" && interactive {
		label := "📁 Project directory:"
		if action.Name == workflow.ActionClone {
			label = "📁 Directory to clone into:"
		}
		if session.Dir, err = prompter.Input(label, "", "."); err != nil {
			return session, err
		}
	}
	if session.RemoteURL == "" && action.NeedsURL && interactive {
		if session.RemoteURL, err = prompter.Input("🌐 Repository HTTPS/SSH URL:", "", ""); err != nil {
			return session, err
		}
	}
	if session.Message == "" && action.Name == workflow.ActionCommit && interactive {
		if session.Message, err = prompter.Input("Commit message:", "", ""); err != nil {
			return session, err
		}
	}

	if opts.Force {
		session.PublishMode = workflow.PublishForce
	}
	if action.Name == workflow.ActionPublish && session.PublishMode == workflow.PublishForce {
		if err := confirmForce(ctx, session, opts.Yes, interactive, prompter); err != nil {
			return session, err
		}
	}

	if opts.UseToken && !action.UsesURL {
		ctx.Splog.Warn("%s does not use the repository URL; ignoring --token", action.Name)
	}
	if opts.UseToken && action.UsesURL {
		if err := credentials.CheckScheme(session.RemoteURL); err != nil {
			return session, err
		}
		token, err := credentials.ResolveToken("", interactive, prompter)
		if err != nil {
			return session, err
		}
		session.UseToken = true
		session.Token = token
	}
	return session, nil
}

func confirmForce(ctx *runtime.Context, session workflow.Session, yes, interactive bool, prompter helpers.Prompter) error {
	ctx.Splog.Warn("Force push overwrites %s/%s and can discard commits that exist only on the remote.", session.Remote, session.Branch)
	if yes {
		return nil
	}
	if !interactive {
		return errForceNotConfirmed
	}
	ok, err := prompter.Confirm(fmt.Sprintf("Force push to %s/%s?", session.Remote, session.Branch), false)
	if err != nil {
		return err
	}
	if !ok {
		return errForceNotConfirmed
	}
	return nil
}
