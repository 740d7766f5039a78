// Package wizard drives a post through the welcome, form, links and success steps.
package wizard

import "github.com/debemdeboas/chronicler/internal/model"

// State is one of Welcome, Form, Links or Success.
type State interface {
	Step() Step
}

type Step string

const (
	StepWelcome Step = "welcome"
	StepForm    Step = "form"
	StepLinks   Step = "links"
	StepSuccess Step = "success"
)

type Welcome struct{}

type Form struct{}

// Links holds the form data while the user collects published links.
type Links struct {
	Data model.PostFormData
}

// Success names the folder the post was archived into.
type Success struct {
	Folder string
}

func (Welcome) Step() Step { return StepWelcome }
func (Form) Step() Step    { return StepForm }
func (Links) Step() Step   { return StepLinks }
func (Success) Step() Step { return StepSuccess }
