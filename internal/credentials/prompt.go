package credentials

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	autogiterrors "autogit.dev/autogit/internal/errors"
)

// Prompter reads a secret from the user without echoing it.
type Prompter interface {
	PromptToken(message string) (string, error)
}

// SurveyPrompter asks for the token with a masked survey prompt.
type SurveyPrompter struct{}

// PromptToken implements Prompter
func (SurveyPrompter) PromptToken(message string) (string, error) {
	var token string
	prompt := &survey.Password{
		Message: message,
		Help:    "The token is only embedded in the remote URL for this run and is never saved.",
	}
	if err := survey.AskOne(prompt, &token); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return strings.TrimSpace(token), nil
}

// ResolveToken returns the token to use for an opted-in run: the explicit
// value when given, then the environment, then an interactive prompt when
// allowed. An empty result is an input error.
func ResolveToken(explicit string, interactive bool, prompter Prompter) (string, error) {
	if token := strings.TrimSpace(explicit); token != "" {
		return token, nil
	}
	if token, ok := TokenFromEnv(); ok {
		return token, nil
	}
	if interactive && prompter != nil {
		token, err := prompter.PromptToken("Personal Access Token:")
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
	}
	return "", autogiterrors.NewInputError("token", "", autogiterrors.ErrEmptyToken)
}
