// Package intent models the subset of Android Intents needed to reach vendor
// settings screens, and renders them as arguments for the am and
// cmd package shell tools.
package intent

import (
	"fmt"

	"github.com/Guliveer/autostarter/internal/manufacturer"
)

const (
	// ActionApplicationDetailsSettings is Settings.ACTION_APPLICATION_DETAILS_SETTINGS.
	ActionApplicationDetailsSettings = "android.settings.APPLICATION_DETAILS_SETTINGS"

	// CategoryDefault is Intent.CATEGORY_DEFAULT.
	CategoryDefault = "android.intent.category.DEFAULT"
)

// Flags is the Intent flag bit set.
type Flags uint32

// FlagActivityNewTask is Intent.FLAG_ACTIVITY_NEW_TASK.
const FlagActivityNewTask Flags = 0x10000000

// Intent describes an activity launch request.
type Intent struct {
	Component  *manufacturer.Component
	Action     string
	Data       string
	Categories []string
	Flags      Flags
}

// ForComponent builds an explicit intent for a component.
func ForComponent(c manufacturer.Component, newTask bool) Intent {
	in := Intent{Component: &c}
	if newTask {
		in.Flags |= FlagActivityNewTask
	}
	return in
}

// ForAction builds an implicit intent for an action.
func ForAction(action string, newTask bool) Intent {
	in := Intent{Action: action}
	if newTask {
		in.Flags |= FlagActivityNewTask
	}
	return in
}

// AppDetails builds the intent for the "App info" screen of pkg.
func AppDetails(pkg string, newTask bool) Intent {
	in := ForAction(ActionApplicationDetailsSettings, newTask)
	in.Categories = []string{CategoryDefault}
	in.Data = "package:" + pkg
	return in
}

// Args renders the intent in the argument syntax shared by am start and
// cmd package resolve-activity.
func (in Intent) Args() []string {
	var args []string
	if in.Action != "" {
		args = append(args, "-a", in.Action)
	}
	for _, c := range in.Categories {
		args = append(args, "-c", c)
	}
	if in.Data != "" {
		args = append(args, "-d", in.Data)
	}
	if in.Component != nil {
		args = append(args, "-n", in.Component.String())
	}
	if in.Flags != 0 {
		args = append(args, "-f", fmt.Sprintf("0x%08x", uint32(in.Flags)))
	}
	return args
}

// String is a short human-readable form used in logs.
func (in Intent) String() string {
	if in.Component != nil {
		return in.Component.String()
	}
	if in.Data != "" {
		return in.Action + " " + in.Data
	}
	return in.Action
}
