// Package chatflow drives the chat-style registration: a linear sequence of
// question steps, each validating the answer before advancing, ending in a
// registered attendee and a ticket ID. The step is an explicit variant, not
// a bare counter, so transitions stay testable.
package chatflow

import (
	"context"
	"errors"
	"strings"

	"novaition/internal/model"
	"novaition/internal/validate"
)

// Step identifies the question currently awaiting an answer.
type Step int

const (
	StepName Step = iota
	StepEmail
	StepPhone
	StepUniversity
	StepNIC
	StepDone
)

// The bot's question per step, word-for-word from the site.
var questions = map[Step]string{
	StepName:       "Hey there! What's your name?",
	StepEmail:      "Nice to meet you! What's the best email address for us to reach you at?",
	StepPhone:      "Enter your Whatapp Number",
	StepUniversity: "What is your university?",
	StepNIC:        "Tell me your NIC too",
}

// Checker answers the server-side duplicate lookups the flow performs before
// advancing past the email and NIC steps.
type Checker interface {
	EmailRegistered(ctx context.Context, email string) (bool, error)
	NICRegistered(ctx context.Context, nic string) (bool, error)
}

// Registrar submits the assembled record. A rejection whose error carries a
// UserMessage() string is shown verbatim to the user.
type Registrar interface {
	Register(ctx context.Context, a model.Attendee) (string, error)
}

// Reply is what the bot says in response to one answer.
type Reply struct {
	Messages []string
	Done     bool
	UserID   string
}

// Flow is one in-progress registration conversation. Abandoning it loses all
// collected answers; nothing is persisted before the final step.
type Flow struct {
	step      Step
	data      model.Attendee
	userID    string
	checker   Checker
	registrar Registrar
}

// New starts a conversation at the name step.
func New(checker Checker, registrar Registrar) *Flow {
	return &Flow{step: StepName, checker: checker, registrar: registrar}
}

// Step returns the current step.
func (f *Flow) Step() Step { return f.step }

// Data returns the answers collected so far.
func (f *Flow) Data() model.Attendee { return f.data }

// Greeting is the opening question.
func (f *Flow) Greeting() string { return questions[StepName] }

// Next consumes one user answer. Invalid or duplicate input re-prompts
// without advancing; a successful final step registers the attendee and
// returns the ticket ID.
func (f *Flow) Next(ctx context.Context, input string) Reply {
	input = strings.TrimSpace(input)
	if input == "" {
		return Reply{}
	}

	switch f.step {
	case StepName:
		if len(input) <= 1 {
			return reply("Please enter a valid name.")
		}
		f.data.Name = input
		return f.advance(StepEmail)

	case StepEmail:
		if validate.Email(input) != nil {
			return reply("That doesn't look like a valid email. Please try again.")
		}
		exists, err := f.checker.EmailRegistered(ctx, input)
		if err != nil {
			return reply("Sorry, I couldn't verify that email. Please try again.")
		}
		if exists {
			return reply("This email is already registered. Please use a different email.")
		}
		f.data.Email = input
		return f.advance(StepPhone)

	case StepPhone:
		if validate.Phone(input) != nil {
			return reply("Please enter a valid Mobile number.")
		}
		f.data.Phone = input
		return f.advance(StepUniversity)

	case StepUniversity:
		if len(input) <= 2 {
			return reply("Please enter a valid university name.")
		}
		f.data.University = input
		return f.advance(StepNIC)

	case StepNIC:
		return f.finish(ctx, input)

	case StepDone:
		return Reply{Done: true, UserID: f.userID}
	}
	return Reply{}
}

// finish runs the NIC duplicate check, then submits the record. On rejection
// the flow stays at the NIC step so the user can retry without starting over.
func (f *Flow) finish(ctx context.Context, nic string) Reply {
	if validate.NIC(nic) != nil {
		return reply("Please enter a valid NIC.")
	}

	exists, err := f.checker.NICRegistered(ctx, nic)
	if err != nil {
		return reply("Error verifying NIC. Please try again.")
	}
	if exists {
		return reply("This NIC is already registered. Please use a different one.")
	}

	f.data.NIC = nic
	f.data.Attend = "0"

	userID, err := f.registrar.Register(ctx, f.data)
	if err != nil {
		var um interface{ UserMessage() string }
		if errors.As(err, &um) {
			return reply("Error: " + um.UserMessage())
		}
		return reply("Sorry, something went wrong. Please try again.")
	}

	f.step = StepDone
	f.userID = userID
	return Reply{Messages: []string{"Great! Email is processing..."}, Done: true, UserID: userID}
}

func (f *Flow) advance(next Step) Reply {
	f.step = next
	return reply(questions[next])
}

func reply(msgs ...string) Reply { return Reply{Messages: msgs} }
