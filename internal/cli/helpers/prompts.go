package helpers

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"autogit.dev/autogit/internal/credentials"
)

// Prompter asks the user for missing input
type Prompter interface {
	credentials.Prompter
	Input(message, help, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter prompts on the terminal with survey
type SurveyPrompter struct {
	credentials.SurveyPrompter
}

// Input implements Prompter
func (SurveyPrompter) Input(message, help, defaultValue string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Help:    help,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return strings.TrimSpace(answer), nil
}

// Confirm implements Prompter
func (SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, fmt.Errorf("canceled")
	}
	return confirmed, nil
}
